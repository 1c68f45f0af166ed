package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// sessionView is the full state of a session as returned to clients
type sessionView struct {
	ID        string              `json:"id"`
	Variant   wizard.Variant      `json:"variant"`
	Steps     []wizard.Step       `json:"steps"`
	Current   wizard.StepID       `json:"current"`
	CanNext   bool                `json:"canNext"`
	Errors    validation.ErrorSet `json:"errors"`
	Selection []int               `json:"seleccion"`
	Payload   model.Payload       `json:"payload"`
}

func newSessionView(sess *wizard.Session) (sessionView, error) {
	errs, err := sess.Errors(sess.Current().ID)
	if err != nil {
		return sessionView{}, err
	}
	selection := sess.Selection()
	if selection == nil {
		selection = []int{}
	}
	return sessionView{
		ID:        sess.ID(),
		Variant:   sess.Variant(),
		Steps:     sess.Steps(),
		Current:   sess.Current().ID,
		CanNext:   sess.CanNext(),
		Errors:    errs,
		Selection: selection,
		Payload:   sess.Payload(),
	}, nil
}

// withSession runs fn under the session lock and writes its result as JSON
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*wizard.Session) (any, error)) {
	s.withSessionStatus(w, r, http.StatusOK, fn)
}

func (s *Server) withSessionStatus(w http.ResponseWriter, r *http.Request, status int, fn func(*wizard.Session) (any, error)) {
	var out any
	err := s.sessions.With(chi.URLParam(r, "sessionID"), func(sess *wizard.Session) error {
		var err error
		out, err = fn(sess)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSONStatus(w, s.logger, status, out)
}

// decodeJSON reads a JSON request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("REQ001", "el cuerpo de la solicitud no es JSON válido")
	}
	return nil
}

// dayParam reads the {day} URL parameter in any accepted spelling
func dayParam(r *http.Request) (model.Weekday, error) {
	d, ok := model.ParseWeekday(chi.URLParam(r, "day"))
	if !ok {
		return 0, badRequest("REQ002", "día de la semana no reconocido")
	}
	return d, nil
}

// workerParam resolves the {workerID} URL parameter to a roster position
func workerParam(r *http.Request, sess *wizard.Session) (int, error) {
	idx := sess.WorkerIndex(chi.URLParam(r, "workerID"))
	if idx < 0 {
		return 0, wizard.ErrWorkerNotFound
	}
	return idx, nil
}

func indexParam(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, badRequest("REQ003", "la posición debe ser un número")
	}
	return idx, nil
}
