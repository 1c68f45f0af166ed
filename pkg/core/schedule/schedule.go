// Package schedule implements the bulk shift-editing operations of the wizard.
// Every operation returns a new roster; the input slice is never modified.
package schedule

import (
	"errors"
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

var (
	// ErrEmptySelection is returned when a bulk apply has no target workers
	ErrEmptySelection = errors.New("selecciona al menos un trabajador para aplicar la planificación general")
	// ErrNoDestinations is returned when copy-to-selected has nothing but the source selected
	ErrNoDestinations = errors.New("selecciona al menos un trabajador de destino")
	// ErrIndexOutOfRange is returned for a worker position outside the roster
	ErrIndexOutOfRange = errors.New("posición de trabajador fuera de rango")
	// ErrIncompleteBaseShift is returned when a base shift lacks name, entry or exit
	ErrIncompleteBaseShift = errors.New("para crear un turno base debes completar nombre, entrada y salida")
	// ErrBaseShiftNotFound is returned for an unknown base shift id
	ErrBaseShiftNotFound = errors.New("turno base no encontrado")
)

func cloneWorkers(workers []model.Worker) []model.Worker {
	out := make([]model.Worker, len(workers))
	for i, w := range workers {
		w.Schedule = w.Schedule.Clone()
		out[i] = w
	}
	return out
}

// CopyFromPrevious replaces the week at idx with a copy of the week at idx-1.
// The first worker has no predecessor, so idx 0 is a no-op.
func CopyFromPrevious(workers []model.Worker, idx int) ([]model.Worker, error) {
	if idx < 0 || idx >= len(workers) {
		return workers, ErrIndexOutOfRange
	}
	out := cloneWorkers(workers)
	if idx == 0 {
		return out, nil
	}
	out[idx].Schedule = out[idx-1].Schedule.Clone()
	return out, nil
}

// CopyMondayToWeek copies Monday's triple to every other day of the worker at idx
func CopyMondayToWeek(workers []model.Worker, idx int) ([]model.Worker, error) {
	if idx < 0 || idx >= len(workers) {
		return workers, ErrIndexOutOfRange
	}
	out := cloneWorkers(workers)
	monday := out[idx].Schedule.Day(model.Monday)
	for _, d := range model.Weekdays {
		out[idx].Schedule.Set(d, monday)
	}
	return out, nil
}

// CopyToSelected copies the source worker's week to every selected worker
// other than the source.
func CopyToSelected(workers []model.Worker, src int, sel Selection) ([]model.Worker, error) {
	if src < 0 || src >= len(workers) {
		return workers, ErrIndexOutOfRange
	}
	dest := sel.Within(len(workers))
	delete(dest, src)
	if len(dest) == 0 {
		return workers, ErrNoDestinations
	}

	out := cloneWorkers(workers)
	week := out[src].Schedule
	for i := range dest {
		out[i].Schedule = week.Clone()
	}
	return out, nil
}

// ApplyTemplateToSelected overwrites the week of every selected worker with the template
func ApplyTemplateToSelected(workers []model.Worker, template model.WeekSchedule, sel Selection) ([]model.Worker, error) {
	dest := sel.Within(len(workers))
	if len(dest) == 0 {
		return workers, ErrEmptySelection
	}

	out := cloneWorkers(workers)
	for i := range dest {
		out[i].Schedule = template.Clone()
	}
	return out, nil
}

// SetDay replaces one day of one worker
func SetDay(workers []model.Worker, idx int, d model.Weekday, t model.ShiftTriple) ([]model.Worker, error) {
	if idx < 0 || idx >= len(workers) {
		return workers, ErrIndexOutOfRange
	}
	out := cloneWorkers(workers)
	out[idx].Schedule.Set(d, t)
	return out, nil
}

// NewBaseShift builds a base shift; name, entry and exit are required
func NewBaseShift(name, entrada, colacion, salida string) (model.BaseShift, error) {
	b := model.BaseShift{
		Name:     strings.TrimSpace(name),
		Entrada:  strings.TrimSpace(entrada),
		Colacion: strings.TrimSpace(colacion),
		Salida:   strings.TrimSpace(salida),
	}
	if b.Name == "" || b.Entrada == "" || b.Salida == "" {
		return model.BaseShift{}, ErrIncompleteBaseShift
	}
	b.ID = model.NewID()
	return b, nil
}

// MatchBaseShift returns the id of the first base shift whose triple equals t,
// or "" when the day holds a custom shift.
func MatchBaseShift(t model.ShiftTriple, shifts []model.BaseShift) string {
	for _, b := range shifts {
		if b.Triple() == t {
			return b.ID
		}
	}
	return ""
}

// BaseShiftTriple resolves a base shift selection. The empty id clears the day.
func BaseShiftTriple(id string, shifts []model.BaseShift) (model.ShiftTriple, error) {
	if id == "" {
		return model.ShiftTriple{}, nil
	}
	for _, b := range shifts {
		if b.ID == id {
			return b.Triple(), nil
		}
	}
	return model.ShiftTriple{}, ErrBaseShiftNotFound
}
