// Package wizard holds the state of one onboarding session and its step navigation.
package wizard

import (
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
)

// Variant selects the step sequence
type Variant string

const (
	// VariantWeekly edits a week per worker, seeded from a general template
	VariantWeekly Variant = "weekly"
	// VariantAssignments assigns named templates to workers for dated periods
	VariantAssignments Variant = "assignments"
)

// StepID identifies a wizard step
type StepID string

const (
	StepAdmin         StepID = "admin"
	StepCompanyGroups StepID = "empresa"
	StepWorkers       StepID = "trabajadores"
	StepShifts        StepID = "turnos"
	StepSchedules     StepID = "planificacion"
	StepTemplates     StepID = "planificaciones"
	StepAssignments   StepID = "asignacion"
	StepSummary       StepID = "resumen"
)

// Step describes one page of the wizard
type Step struct {
	ID          StepID `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	// Rules are evaluated to decide whether the user may move past the step.
	// A step with no rules can always be passed.
	Rules []ruleName `json:"-"`
}

var weeklySteps = []Step{
	{ID: StepAdmin, Label: "Administrador", Description: "Datos del administrador de la cuenta", Rules: []ruleName{ruleAdmin}},
	{ID: StepCompanyGroups, Label: "Empresa y grupos", Description: "Datos de facturación y grupos de trabajadores", Rules: []ruleName{ruleCompany, ruleGroups}},
	{ID: StepWorkers, Label: "Trabajadores", Description: "Carga y revisión de la nómina", Rules: []ruleName{ruleWorkers}},
	{ID: StepShifts, Label: "Turnos", Description: "Turnos base y planificación general"},
	{ID: StepSchedules, Label: "Planificación", Description: "Turnos semanales por trabajador", Rules: []ruleName{ruleSchedules}},
	{ID: StepSummary, Label: "Resumen", Description: "Revisión final y exportación"},
}

var assignmentSteps = []Step{
	{ID: StepAdmin, Label: "Administrador", Description: "Datos del administrador de la cuenta", Rules: []ruleName{ruleAdmin}},
	{ID: StepCompanyGroups, Label: "Empresa y grupos", Description: "Datos de facturación y grupos de trabajadores", Rules: []ruleName{ruleCompany, ruleGroups}},
	{ID: StepWorkers, Label: "Trabajadores", Description: "Carga y revisión de la nómina", Rules: []ruleName{ruleWorkers}},
	{ID: StepShifts, Label: "Turnos", Description: "Turnos base reutilizables"},
	{ID: StepTemplates, Label: "Planificaciones", Description: "Planificaciones semanales con nombre"},
	{ID: StepAssignments, Label: "Asignación", Description: "Asignación de planificaciones por periodo", Rules: []ruleName{ruleAssignments}},
	{ID: StepSummary, Label: "Resumen", Description: "Revisión final y exportación"},
}

// Steps returns the ordered steps of a variant
func Steps(v Variant) []Step {
	src := weeklySteps
	if v == VariantAssignments {
		src = assignmentSteps
	}
	out := make([]Step, len(src))
	copy(out, src)
	return out
}

// ParseVariant maps user input to a Variant, defaulting to weekly
func ParseVariant(s string) Variant {
	if Variant(s) == VariantAssignments {
		return VariantAssignments
	}
	return VariantWeekly
}

// collection is one independently versioned part of the session
type collection int

const (
	colAdmin collection = iota
	colCompany
	colGroups
	colWorkers
	colBaseShifts
	colGeneral
	colTemplates
	colAssignments
	numCollections
)

type ruleName string

const (
	ruleAdmin       ruleName = "admin"
	ruleCompany     ruleName = "empresa"
	ruleGroups      ruleName = "grupos"
	ruleWorkers     ruleName = "trabajadores"
	ruleSchedules   ruleName = "turnos"
	ruleAssignments ruleName = "asignaciones"
)

type rule struct {
	deps []collection
	eval func(s *Session) validation.ErrorSet
}

var rules = map[ruleName]rule{
	ruleAdmin: {
		deps: []collection{colAdmin},
		eval: func(s *Session) validation.ErrorSet { return validation.Admin(s.admin) },
	},
	ruleCompany: {
		deps: []collection{colCompany},
		eval: func(s *Session) validation.ErrorSet { return validation.Company(s.company) },
	},
	ruleGroups: {
		deps: []collection{colGroups},
		eval: func(s *Session) validation.ErrorSet { return validation.Groups(s.groups) },
	},
	ruleWorkers: {
		deps: []collection{colWorkers},
		eval: func(s *Session) validation.ErrorSet {
			if s.variant == VariantAssignments {
				return validation.WorkersCombinedName(s.workers)
			}
			return validation.Workers(s.workers)
		},
	},
	ruleSchedules: {
		deps: []collection{colWorkers},
		eval: func(s *Session) validation.ErrorSet { return validation.Schedules(s.workers) },
	},
	ruleAssignments: {
		deps: []collection{colWorkers, colTemplates, colAssignments},
		eval: func(s *Session) validation.ErrorSet {
			return validation.Assignments(s.templates, s.assignments, s.workers)
		},
	},
}
