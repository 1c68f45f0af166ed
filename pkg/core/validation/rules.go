package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/rut"
)

// Record ids used for the single-record steps
const (
	AdminID   = "admin"
	CompanyID = "empresa"
)

// DateLayout is the format of planning window dates
const DateLayout = "2006-01-02"

var adminMessages = map[string]string{
	"nombre.required":   "El nombre del administrador es obligatorio.",
	"rut.required":      "El RUT del administrador es obligatorio.",
	"rut.rut":           "El RUT del administrador no es válido.",
	"correo.required":   "El correo del administrador es obligatorio.",
	"correo.looseemail": "El correo del administrador no es válido.",
}

var companyMessages = map[string]string{
	"razonSocial.required":        "La razón social es obligatoria.",
	"rut.required":                "El RUT de la empresa es obligatorio.",
	"emailFacturacion.required":   "El correo de facturación es obligatorio.",
	"emailFacturacion.looseemail": "El correo de facturación no es válido.",
	"sistema.required":            "Debes indicar el sistema.",
}

var workerMessages = map[string]string{
	"rut.required":       "El RUT es obligatorio.",
	"rut.rut":            "El RUT no es válido.",
	"correo.required":    "El correo es obligatorio.",
	"correo.looseemail":  "El correo no es válido.",
	"nombres.required":   "Los nombres son obligatorios.",
	"apellidos.required": "Los apellidos son obligatorios.",
	"grupo.required":     "Debes seleccionar un grupo.",
}

const (
	msgNoGroups          = "Debes definir al menos un grupo."
	msgNoWorkers         = "Debes agregar al menos un trabajador."
	msgNameRequired      = "El nombre es obligatorio."
	msgDuplicateEmail    = "Este correo está duplicado en la carga."
	msgDuplicateRUT      = "Este RUT está duplicado en la carga."
	msgHalfFilled        = "Si completas entrada o salida, debes completar ambas."
	msgBadStart          = "La fecha de inicio de planificación no es válida."
	msgBadEnd            = "La fecha de fin de planificación no es válida."
	msgEndBeforeStart    = "La fecha de fin de planificación es anterior a la de inicio."
	msgNoTemplates       = "Debes crear al menos una planificación antes de asignar."
	msgUnassignedPattern = "Aún hay %d trabajador(es) sin planificación asignada."
	msgUnassigned        = "Sin planificación asignada."
)

// Admin checks the administrator record
func Admin(a model.Admin) ErrorSet {
	return singleRecord(AdminID, a, adminMessages)
}

// Company checks the company record
func Company(c model.Company) ErrorSet {
	return singleRecord(CompanyID, c, companyMessages)
}

func singleRecord(id string, v any, catalog map[string]string) ErrorSet {
	var out ErrorSet
	for _, f := range checkStruct(v) {
		msg := messageFor(catalog, f)
		out.addGlobal(msg)
		out.addField(id, f.Field, msg)
	}
	return out
}

func messageFor(catalog map[string]string, f fieldFailure) string {
	if msg, ok := catalog[f.Field+"."+f.Tag]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s no es válido.", f.Field)
}

// Groups requires at least one non-blank group name
func Groups(groups []model.Group) ErrorSet {
	var out ErrorSet
	for _, g := range groups {
		if strings.TrimSpace(g.Name) != "" {
			return out
		}
	}
	out.addGlobal(msgNoGroups)
	return out
}

// WorkerKey is the ByID key for a worker: its id, or "#n" when it has none
func WorkerKey(w model.Worker, idx int) string {
	if w.ID != "" {
		return w.ID
	}
	return fmt.Sprintf("#%d", idx+1)
}

// Workers checks roster data: required fields, RUT and email formats,
// and duplicate emails or RUTs within the batch. The first occurrence of a
// duplicate is canonical; later ones are flagged.
func Workers(workers []model.Worker) ErrorSet {
	return checkWorkers(workers, false)
}

// WorkersCombinedName is Workers for rosters that carry a single name
// column: only the full name must be non-empty.
func WorkersCombinedName(workers []model.Worker) ErrorSet {
	return checkWorkers(workers, true)
}

func checkWorkers(workers []model.Worker, combinedName bool) ErrorSet {
	var out ErrorSet
	if len(workers) == 0 {
		out.addGlobal(msgNoWorkers)
		return out
	}

	seenEmails := make(map[string]bool, len(workers))
	seenRUTs := make(map[string]bool, len(workers))

	for i, w := range workers {
		key := WorkerKey(w, i)
		for _, f := range checkStruct(w) {
			msg := messageFor(workerMessages, f)
			if combinedName && (f.Field == "nombres" || f.Field == "apellidos") {
				if f.Field == "apellidos" || w.FullName() != "" {
					continue
				}
				msg = msgNameRequired
			}
			out.addGlobal(workerPrefix(i) + lowerFirst(msg))
			out.addField(key, f.Field, msg)
		}

		if email := strings.TrimSpace(w.Email); email != "" {
			norm := strings.ToLower(email)
			if seenEmails[norm] {
				out.addGlobal(fmt.Sprintf("%scorreo duplicado (%s).", workerPrefix(i), email))
				out.addField(key, "correo", msgDuplicateEmail)
			}
			seenEmails[norm] = true
		}

		if rut.IsValid(w.TaxID) {
			norm := rut.Normalize(w.TaxID)
			if seenRUTs[norm] {
				out.addGlobal(fmt.Sprintf("%sRUT duplicado (%s).", workerPrefix(i), rut.Format(w.TaxID)))
				out.addField(key, "rut", msgDuplicateRUT)
			}
			seenRUTs[norm] = true
		}
	}
	return out
}

// Schedules checks each worker's week and planning window. A day with only
// one of entry or exit set yields exactly one message naming worker and day.
func Schedules(workers []model.Worker) ErrorSet {
	var out ErrorSet
	if len(workers) == 0 {
		out.addGlobal(msgNoWorkers)
		return out
	}

	for i, w := range workers {
		key := WorkerKey(w, i)
		for _, d := range model.Weekdays {
			t := w.Schedule.Day(d)
			field := "turnos." + d.Key()
			if t.HalfFilled() {
				out.addGlobal(dayPrefix(i, d) + lowerFirst(msgHalfFilled))
				out.addField(key, field, msgHalfFilled)
			}
		}

		start, startOK := parseWindowDate(w.PlanStart)
		end, endOK := parseWindowDate(w.PlanEnd)
		if !startOK {
			out.addGlobal(workerPrefix(i) + lowerFirst(msgBadStart))
			out.addField(key, "planInicio", msgBadStart)
		}
		if !endOK {
			out.addGlobal(workerPrefix(i) + lowerFirst(msgBadEnd))
			out.addField(key, "planFin", msgBadEnd)
		}
		if startOK && endOK && !start.IsZero() && !end.IsZero() && end.Before(start) {
			out.addGlobal(workerPrefix(i) + lowerFirst(msgEndBeforeStart))
			out.addField(key, "planFin", msgEndBeforeStart)
		}
	}
	return out
}

// Assignments requires at least one template and that every worker holds a
// complete assignment.
func Assignments(templates []model.ScheduleTemplate, assignments []model.Assignment, workers []model.Worker) ErrorSet {
	var out ErrorSet
	if len(templates) == 0 {
		out.addGlobal(msgNoTemplates)
		return out
	}

	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if a.IsComplete() {
			assigned[a.WorkerID] = true
		}
	}

	missing := 0
	for i, w := range workers {
		if assigned[w.ID] {
			continue
		}
		missing++
		out.addField(WorkerKey(w, i), "planificacion", msgUnassigned)
	}
	if missing > 0 {
		out.Global = append([]string{fmt.Sprintf(msgUnassignedPattern, missing)}, out.Global...)
	}
	return out
}

// parseWindowDate accepts "" (unset) or a YYYY-MM-DD date
func parseWindowDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func workerPrefix(idx int) string {
	return fmt.Sprintf("Trabajador #%d: ", idx+1)
}

func dayPrefix(idx int, d model.Weekday) string {
	return fmt.Sprintf("Trabajador #%d (%s): ", idx+1, d.Label())
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
