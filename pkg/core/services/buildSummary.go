package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/calendar"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/groups"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// GroupCount is the number of workers in one group
type GroupCount struct {
	Group   string `json:"grupo"`
	Workers int    `json:"trabajadores"`
}

// Summary is the final review of a session
type Summary struct {
	Company             string              `json:"empresa"`
	Admin               string              `json:"admin"`
	Groups              int                 `json:"grupos"`
	Workers             int                 `json:"trabajadores"`
	BaseShifts          int                 `json:"turnosBase"`
	WorkersPerGroup     []GroupCount        `json:"trabajadoresPorGrupo"`
	WorkersWithSchedule int                 `json:"trabajadoresConTurnos"`
	WeeklyShifts        int                 `json:"turnosSemanales"`
	PlannedShifts       int                 `json:"turnosPlanificados"`
	Templates           int                 `json:"planificaciones"`
	Assignments         int                 `json:"asignaciones"`
	Unassigned          int                 `json:"sinPlanificacion"`
	Errors              validation.ErrorSet `json:"errores"`
	Ready               bool                `json:"listo"`
}

// BuildSummary counts what the session will export. Dated shifts are
// expanded over each worker's planning window, skipping holidays.
func BuildSummary(ctx context.Context, session *wizard.Session, cal *calendar.Calendar, logger *zap.Logger) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workers := session.Workers()
	sum := &Summary{
		Company:     session.Company().LegalName,
		Admin:       session.Admin().Name,
		Groups:      len(session.Groups()),
		Workers:     len(workers),
		BaseShifts:  len(session.BaseShifts()),
		Templates:   len(session.Templates()),
		Assignments: len(session.Assignments()),
	}

	// Step 1: Workers per group, in catalog order
	perGroup := make(map[string]int)
	for _, w := range workers {
		perGroup[groups.Key(w.Group)]++
	}
	for _, g := range session.Groups() {
		sum.WorkersPerGroup = append(sum.WorkersPerGroup, GroupCount{Group: g.Name, Workers: perGroup[groups.Key(g.Name)]})
	}

	// Step 2: Weekly and dated shifts
	for _, w := range workers {
		days := w.Schedule.WorkingDays()
		if days > 0 {
			sum.WorkersWithSchedule++
		}
		sum.WeeklyShifts += days

		if cal == nil {
			continue
		}
		planned, err := cal.Expand(w)
		if err != nil {
			logger.Debug("Skipping planning window", zap.String("worker_id", w.ID), zap.Error(err))
			continue
		}
		sum.PlannedShifts += len(planned)
	}

	if session.Variant() == wizard.VariantAssignments {
		sum.Unassigned = len(schedule.Unassigned(workers, session.Assignments()))
	}

	// Step 3: Outstanding errors
	sum.Errors = session.AllErrors()
	sum.Ready = sum.Errors.Empty()

	logger.Debug("Summary built",
		zap.Int("workers", sum.Workers),
		zap.Int("planned_shifts", sum.PlannedShifts),
		zap.Bool("ready", sum.Ready))
	return sum, nil
}

// SummarizePayload loads a payload document and summarizes it
func SummarizePayload(ctx context.Context, store PayloadStore, cal *calendar.Calendar, logger *zap.Logger, name string, opts wizard.Options) (*Summary, error) {
	p, err := store.LoadPayload(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load payload: %w", err)
	}
	return BuildSummary(ctx, wizard.FromPayload(p, opts), cal, logger)
}
