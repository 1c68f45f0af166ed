package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

type createSessionRequest struct {
	Variant string `json:"variant"`
	Demo    bool   `json:"demo"`
}

// handleCreateSession starts a new wizard session. The body is optional.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	sess := wizard.New(s.sessionOptions(req.Variant, req.Demo))
	s.sessions.Add(sess)
	s.logger.Info("Session created",
		zap.String("session_id", sess.ID()),
		zap.String("variant", string(sess.Variant())))

	view, err := newSessionView(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSONStatus(w, s.logger, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return newSessionView(sess)
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "sessionID")) {
		s.respondError(w, r, ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleValidation reports the errors of every step
func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return services.ValidateSession(sess)
	})
}

func (s *Server) handleStepErrors(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return sess.Errors(wizard.StepID(chi.URLParam(r, "stepID")))
	})
}

// blocked attaches the current step's errors to a refused move
func blocked(sess *wizard.Session, err error) error {
	if !errors.Is(err, wizard.ErrStepBlocked) {
		return err
	}
	errs, evalErr := sess.Errors(sess.Current().ID)
	if evalErr != nil {
		return err
	}
	return &blockedError{err: err, errors: errs}
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.Next(); err != nil {
			return nil, blocked(sess, err)
		}
		return newSessionView(sess)
	})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.Prev()
		return newSessionView(sess)
	})
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.GoTo(wizard.StepID(chi.URLParam(r, "stepID"))); err != nil {
			return nil, blocked(sess, err)
		}
		return newSessionView(sess)
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return services.BuildSummary(r.Context(), sess, s.calendar, s.logger)
	})
}

// handleExport downloads the payload. ?format=xlsx returns a workbook;
// ?strict=true refuses sessions with outstanding errors.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, badRequest("REQ004", "formato de exportación no soportado"))
		return
	}
	strict := r.URL.Query().Get("strict") == "true"

	err = s.sessions.With(chi.URLParam(r, "sessionID"), func(sess *wizard.Session) error {
		if strict {
			if step, ok := sess.FirstBlocked(); ok {
				errs, _ := sess.Errors(step.ID)
				return &blockedError{err: fmt.Errorf("%w: paso %s", services.ErrPayloadInvalid, step.Label), errors: errs}
			}
		}

		name := export.FileNameFor(s.cfg.Export.FileName, format)
		contentType := "application/json"
		if format == export.FormatXLSX {
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

		if err := export.Write(w, sess.Payload(), format); err != nil {
			// Headers are sent; the client sees a truncated body
			s.logger.Error("Failed to write export", zap.String("session_id", sess.ID()), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
	}
}
