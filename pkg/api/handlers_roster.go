package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

func (s *Server) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	var admin model.Admin
	if err := decodeJSON(r, &admin); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.SetAdmin(admin)
		return sess.Errors(wizard.StepAdmin)
	})
}

func (s *Server) handleSetCompany(w http.ResponseWriter, r *http.Request) {
	var company model.Company
	if err := decodeJSON(r, &company); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.SetCompany(company)
		return sess.Errors(wizard.StepCompanyGroups)
	})
}

type groupRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return nonNil(sess.Groups()), nil
	})
}

// handleAddGroup returns the existing group when the name is already taken
func (s *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return sess.AddGroup(req.Name, req.Description)
	})
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.RenameGroup(chi.URLParam(r, "groupID"), req.Name); err != nil {
			return nil, err
		}
		return nonNil(sess.Groups()), nil
	})
}

func (s *Server) handleRemoveGroup(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.RemoveGroup(chi.URLParam(r, "groupID")); err != nil {
			return nil, err
		}
		return nonNil(sess.Groups()), nil
	})
}

// handleListWorkers returns the roster, optionally filtered by ?grupo=
func (s *Server) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return nonNil(schedule.WorkersInGroup(sess.Workers(), r.URL.Query().Get("grupo"))), nil
	})
}

func (s *Server) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	var worker model.Worker
	if err := decodeJSON(r, &worker); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSessionStatus(w, r, http.StatusCreated, func(sess *wizard.Session) (any, error) {
		return sess.AddWorker(worker), nil
	})
}

func (s *Server) handleUpdateWorker(w http.ResponseWriter, r *http.Request) {
	var worker model.Worker
	if err := decodeJSON(r, &worker); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return sess.UpdateWorker(chi.URLParam(r, "workerID"), worker)
	})
}

func (s *Server) handleRemoveWorker(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		idx, err := workerParam(r, sess)
		if err != nil {
			return nil, err
		}
		if err := sess.RemoveWorker(idx); err != nil {
			return nil, err
		}
		return newSessionView(sess)
	})
}

type pasteRequest struct {
	Text string `json:"texto"`
	Mode string `json:"modo"`
}

// handlePasteWorkers parses clipboard text into the roster
func (s *Server) handlePasteWorkers(w http.ResponseWriter, r *http.Request) {
	var req pasteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return services.ImportWorkers(r.Context(), sess, s.logger, "paste", strings.NewReader(req.Text), paste.ParseMode(req.Mode))
	})
}

// handleImportWorkers reads an uploaded roster. The multipart form carries
// the file in "file" and the merge mode in "modo".
func (s *Server) handleImportWorkers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respondError(w, r, badRequest("REQ005", "archivo demasiado grande o formulario inválido"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, badRequest("REQ006", "no se recibió ningún archivo"))
		return
	}
	defer file.Close()

	mode := paste.ParseMode(r.FormValue("modo"))
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		res, err := services.ImportWorkers(r.Context(), sess, s.logger, header.Filename, file, mode)
		if err != nil {
			return nil, badRequest("REQ007", "no se pudo leer el archivo: "+err.Error())
		}
		return res, nil
	})
}

// nonNil keeps empty collections encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
