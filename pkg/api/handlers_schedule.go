package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// dayRequest sets one day either from explicit times or from a base shift.
// An empty baseShiftId clears the day.
type dayRequest struct {
	Entrada     string  `json:"entrada"`
	Colacion    string  `json:"colacion"`
	Salida      string  `json:"salida"`
	BaseShiftID *string `json:"baseShiftId"`
}

func (d dayRequest) triple() model.ShiftTriple {
	return model.ShiftTriple{Entrada: d.Entrada, Colacion: d.Colacion, Salida: d.Salida}
}

type workerDayResponse struct {
	Worker      model.Worker `json:"trabajador"`
	BaseShiftID string       `json:"baseShiftId"`
}

func (s *Server) handleSetWorkerDay(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req dayRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		idx, err := workerParam(r, sess)
		if err != nil {
			return nil, err
		}
		if req.BaseShiftID != nil {
			err = sess.SelectWorkerBaseShift(idx, day, *req.BaseShiftID)
		} else {
			err = sess.SetWorkerDay(idx, day, req.triple())
		}
		if err != nil {
			return nil, err
		}
		return workerDayResponse{
			Worker:      sess.Workers()[idx],
			BaseShiftID: sess.WorkerDayBaseShift(idx, day),
		}, nil
	})
}

// workerOp runs a per-worker bulk edit and returns the resulting roster
func (s *Server) workerOp(w http.ResponseWriter, r *http.Request, op func(*wizard.Session, int) error) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		idx, err := workerParam(r, sess)
		if err != nil {
			return nil, err
		}
		if err := op(sess, idx); err != nil {
			return nil, err
		}
		return nonNil(sess.Workers()), nil
	})
}

func (s *Server) handleCopyFromPrevious(w http.ResponseWriter, r *http.Request) {
	s.workerOp(w, r, (*wizard.Session).CopyFromPrevious)
}

func (s *Server) handleCopyMonday(w http.ResponseWriter, r *http.Request) {
	s.workerOp(w, r, (*wizard.Session).CopyMondayToWeek)
}

func (s *Server) handleCopyToSelected(w http.ResponseWriter, r *http.Request) {
	s.workerOp(w, r, (*wizard.Session).CopyToSelected)
}

func (s *Server) handleSetGeneralDay(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req dayRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if req.BaseShiftID != nil {
			if err := sess.SelectGeneralBaseShift(day, *req.BaseShiftID); err != nil {
				return nil, err
			}
		} else {
			sess.SetGeneralDay(day, req.triple())
		}
		return sess.General(), nil
	})
}

// handleApplyGeneral overwrites the selected workers' weeks with the general template
func (s *Server) handleApplyGeneral(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.ApplyGeneralToSelected(); err != nil {
			return nil, err
		}
		return nonNil(sess.Workers()), nil
	})
}

type selectionRequest struct {
	Indices []int `json:"indices"`
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return nonNil(sess.Selection()), nil
	})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.SetSelection(req.Indices)
		return nonNil(sess.Selection()), nil
	})
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.SelectAll()
		return nonNil(sess.Selection()), nil
	})
}

func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.ToggleSelection(idx); err != nil {
			return nil, err
		}
		return nonNil(sess.Selection()), nil
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		sess.ClearSelection()
		return []int{}, nil
	})
}

func (s *Server) handleListBaseShifts(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return nonNil(sess.BaseShifts()), nil
	})
}

func (s *Server) handleAddBaseShift(w http.ResponseWriter, r *http.Request) {
	var req model.BaseShift
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSessionStatus(w, r, http.StatusCreated, func(sess *wizard.Session) (any, error) {
		return sess.AddBaseShift(req.Name, req.Entrada, req.Colacion, req.Salida)
	})
}

func (s *Server) handleRemoveBaseShift(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.RemoveBaseShift(chi.URLParam(r, "shiftID")); err != nil {
			return nil, err
		}
		return nonNil(sess.BaseShifts()), nil
	})
}

type templateRequest struct {
	Name string `json:"nombre"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return nonNil(sess.Templates()), nil
	})
}

func (s *Server) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSessionStatus(w, r, http.StatusCreated, func(sess *wizard.Session) (any, error) {
		return sess.AddTemplate(req.Name)
	})
}

func (s *Server) handleSetTemplateDay(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req dayRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	shiftID := ""
	if req.BaseShiftID != nil {
		shiftID = *req.BaseShiftID
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.SetTemplateDay(chi.URLParam(r, "templateID"), day, shiftID); err != nil {
			return nil, err
		}
		return nonNil(sess.Templates()), nil
	})
}

func (s *Server) handleRemoveTemplate(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.RemoveTemplate(chi.URLParam(r, "templateID")); err != nil {
			return nil, err
		}
		return nonNil(sess.Templates()), nil
	})
}

type assignmentsResponse struct {
	Assignments []model.Assignment `json:"asignaciones"`
	Unassigned  []model.Worker     `json:"sinPlanificacion"`
}

func assignmentsView(sess *wizard.Session) assignmentsResponse {
	return assignmentsResponse{
		Assignments: nonNil(sess.Assignments()),
		Unassigned:  nonNil(schedule.Unassigned(sess.Workers(), sess.Assignments())),
	}
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		return assignmentsView(sess), nil
	})
}

// assignRequest targets workerIds when given, the selected workers otherwise.
// A group narrows the targets to that group's workers.
type assignRequest struct {
	TemplateID string   `json:"planificacionId"`
	From       string   `json:"desde"`
	To         string   `json:"hasta"`
	WorkerIDs  []string `json:"trabajadorIds"`
	Group      string   `json:"grupo"`
}

func (s *Server) handleAssignTemplate(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.AssignTemplate(req.TemplateID, req.From, req.To, assignTargets(sess, req)); err != nil {
			return nil, err
		}
		return assignmentsView(sess), nil
	})
}

func assignTargets(sess *wizard.Session, req assignRequest) []string {
	workers := sess.Workers()
	var candidates []model.Worker
	if len(req.WorkerIDs) > 0 {
		byID := make(map[string]model.Worker, len(workers))
		for _, wk := range workers {
			byID[wk.ID] = wk
		}
		for _, id := range req.WorkerIDs {
			wk, ok := byID[id]
			if !ok {
				// Unknown ids are passed through so the session reports them
				wk = model.Worker{ID: id, Group: req.Group}
			}
			candidates = append(candidates, wk)
		}
	} else {
		for _, idx := range sess.Selection() {
			if idx < len(workers) {
				candidates = append(candidates, workers[idx])
			}
		}
	}

	var ids []string
	for _, wk := range schedule.WorkersInGroup(candidates, req.Group) {
		ids = append(ids, wk.ID)
	}
	return ids
}

func (s *Server) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) (any, error) {
		if err := sess.RemoveAssignment(chi.URLParam(r, "assignmentID")); err != nil {
			return nil, err
		}
		return assignmentsView(sess), nil
	})
}
