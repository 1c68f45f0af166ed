package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

// ErrPayloadInvalid is returned when an operation requires a payload that passes every step
var ErrPayloadInvalid = errors.New("payload has validation errors")

// PayloadStore loads and saves payload documents
type PayloadStore interface {
	LoadPayload(ctx context.Context, name string) (model.Payload, error)
	SavePayload(ctx context.Context, name string, p model.Payload, format export.Format) error
}

// StepReport holds the errors of one wizard step
type StepReport struct {
	Step   wizard.Step         `json:"step"`
	Errors validation.ErrorSet `json:"errors"`
}

// ValidationReport is the per-step outcome of checking a session
type ValidationReport struct {
	Variant      wizard.Variant `json:"variant"`
	Steps        []StepReport   `json:"steps"`
	FirstBlocked *wizard.Step   `json:"firstBlocked,omitempty"`
	Valid        bool           `json:"valid"`
}

// ValidateSession checks every step of a session
func ValidateSession(session *wizard.Session) (*ValidationReport, error) {
	report := &ValidationReport{Variant: session.Variant(), Valid: true}
	for _, step := range session.Steps() {
		errs, err := session.Errors(step.ID)
		if err != nil {
			return nil, err
		}
		report.Steps = append(report.Steps, StepReport{Step: step, Errors: errs})
		if !errs.Empty() && report.FirstBlocked == nil {
			blocked := step
			report.FirstBlocked = &blocked
			report.Valid = false
		}
	}
	return report, nil
}

// ValidatePayload loads a payload document and checks it step by step
func ValidatePayload(ctx context.Context, store PayloadStore, logger *zap.Logger, name string, opts wizard.Options) (*ValidationReport, *wizard.Session, error) {
	logger.Debug("Validating payload", zap.String("source", name), zap.String("variant", string(opts.Variant)))

	p, err := store.LoadPayload(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payload: %w", err)
	}

	session := wizard.FromPayload(p, opts)
	report, err := ValidateSession(session)
	if err != nil {
		return nil, nil, err
	}

	if report.Valid {
		logger.Info("Payload is valid", zap.String("source", name))
	} else {
		logger.Info("Payload has errors",
			zap.String("source", name),
			zap.String("first_blocked_step", string(report.FirstBlocked.ID)))
	}
	return report, session, nil
}

// ExportOptions controls ExportPayload
type ExportOptions struct {
	Session      wizard.Options
	Format       export.Format
	RequireValid bool
}

// ExportPayload loads a payload, normalizes it through a session (ids,
// group spellings) and saves it to dst in the requested format.
func ExportPayload(ctx context.Context, store PayloadStore, logger *zap.Logger, src, dst string, opts ExportOptions) (*ValidationReport, error) {
	// Step 1: Load and validate
	report, session, err := ValidatePayload(ctx, store, logger, src, opts.Session)
	if err != nil {
		return nil, err
	}
	if opts.RequireValid && !report.Valid {
		return report, fmt.Errorf("%w: step %s", ErrPayloadInvalid, report.FirstBlocked.Label)
	}

	// Step 2: Save
	logger.Debug("Saving payload", zap.String("destination", dst), zap.String("format", string(opts.Format)))
	if err := store.SavePayload(ctx, dst, session.Payload(), opts.Format); err != nil {
		return report, fmt.Errorf("failed to save payload: %w", err)
	}

	logger.Info("Payload exported", zap.String("destination", dst), zap.Int("workers", len(session.Workers())))
	return report, nil
}
