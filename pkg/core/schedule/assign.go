package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

var (
	// ErrMissingTemplate is returned when a bulk assignment names no template
	ErrMissingTemplate = errors.New("selecciona una planificación para asignar")
	// ErrMissingPeriod is returned when a bulk assignment lacks from or to
	ErrMissingPeriod = errors.New("debes indicar el periodo desde y hasta")
	// ErrNoWorkers is returned when a bulk assignment targets nobody
	ErrNoWorkers = errors.New("selecciona al menos un trabajador")
	// ErrInvalidPeriod is returned when the period dates are malformed or reversed
	ErrInvalidPeriod = errors.New("el periodo desde y hasta no es válido")
)

const dateLayout = "2006-01-02"

// AssignTemplate appends one assignment per worker id for the given
// template and period. Existing assignments are kept.
func AssignTemplate(assignments []model.Assignment, templateID, from, to string, workerIDs []string) ([]model.Assignment, error) {
	templateID = strings.TrimSpace(templateID)
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if templateID == "" {
		return assignments, ErrMissingTemplate
	}
	if from == "" || to == "" {
		return assignments, ErrMissingPeriod
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return assignments, ErrInvalidPeriod
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil || end.Before(start) {
		return assignments, ErrInvalidPeriod
	}
	if len(workerIDs) == 0 {
		return assignments, ErrNoWorkers
	}

	out := make([]model.Assignment, 0, len(assignments)+len(workerIDs))
	out = append(out, assignments...)
	for _, id := range workerIDs {
		out = append(out, model.Assignment{
			ID:         model.NewID(),
			WorkerID:   id,
			TemplateID: templateID,
			From:       from,
			To:         to,
		})
	}
	return out, nil
}

// AssignmentsFor returns the assignments held by a worker
func AssignmentsFor(workerID string, assignments []model.Assignment) []model.Assignment {
	var out []model.Assignment
	for _, a := range assignments {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out
}

// Unassigned returns workers with no complete assignment
func Unassigned(workers []model.Worker, assignments []model.Assignment) []model.Worker {
	done := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if a.IsComplete() {
			done[a.WorkerID] = true
		}
	}
	var out []model.Worker
	for _, w := range workers {
		if !done[w.ID] {
			out = append(out, w)
		}
	}
	return out
}

// PruneAssignments drops assignments whose worker or template no longer exists
func PruneAssignments(assignments []model.Assignment, workers []model.Worker, templates []model.ScheduleTemplate) []model.Assignment {
	workerIDs := make(map[string]bool, len(workers))
	for _, w := range workers {
		workerIDs[w.ID] = true
	}
	templateIDs := make(map[string]bool, len(templates))
	for _, t := range templates {
		templateIDs[t.ID] = true
	}

	out := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if workerIDs[a.WorkerID] && templateIDs[a.TemplateID] {
			out = append(out, a)
		}
	}
	return out
}

// TemplateWeekSchedule expands a template's base shift references into a week
func TemplateWeekSchedule(t model.ScheduleTemplate, shifts []model.BaseShift) model.WeekSchedule {
	var week model.WeekSchedule
	for _, d := range model.Weekdays {
		if triple, err := BaseShiftTriple(t.Week[d], shifts); err == nil {
			week.Set(d, triple)
		}
	}
	return week
}

// WorkersInGroup filters a roster by group name, ignoring case and
// surrounding spaces. An empty name keeps everyone.
func WorkersInGroup(workers []model.Worker, group string) []model.Worker {
	key := strings.ToLower(strings.TrimSpace(group))
	if key == "" {
		return workers
	}
	var out []model.Worker
	for _, w := range workers {
		if strings.ToLower(strings.TrimSpace(w.Group)) == key {
			out = append(out, w)
		}
	}
	return out
}
