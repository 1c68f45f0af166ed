package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/internal/config"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/calendar"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/store"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Store    *store.FileStore
	Calendar *calendar.Calendar
	Logger   *zap.Logger
	Ctx      context.Context
}

// SessionOptions builds wizard options from config, letting a non-empty
// variant override the configured one
func (app *AppContext) SessionOptions(variant string) wizard.Options {
	if variant == "" {
		variant = app.Cfg.Session.Variant
	}
	return wizard.Options{
		Variant: wizard.ParseVariant(variant),
		Paste: paste.Options{
			ExtendedDelimiters: app.Cfg.Paste.ExtendedDelimiters,
			SkipHeaderRows:     app.Cfg.Paste.SkipHeaderRows,
		},
		SeedGroups: app.Cfg.SeedGroups,
		Demo:       app.Cfg.Session.Demo,
	}
}

// NewCalendar builds the planned-shift calendar from the configured holidays
func NewCalendar(cfg *config.Config) (*calendar.Calendar, error) {
	holidays := make([]calendar.Holiday, len(cfg.Holidays))
	for i, h := range cfg.Holidays {
		holidays[i] = calendar.Holiday{Name: h.Name, RRule: h.RRule}
	}
	return calendar.New(holidays)
}
