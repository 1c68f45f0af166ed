package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// ImportResult describes what a roster import changed
type ImportResult struct {
	Parsed        int                 `json:"procesados"`
	CreatedGroups []model.Group       `json:"gruposCreados"`
	Workers       []model.Worker      `json:"trabajadores"`
	Errors        validation.ErrorSet `json:"errores"`
}

// IsWorkbook reports whether a file name looks like an XLSX workbook
func IsWorkbook(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xlsm"
}

// ImportWorkers reads a roster from r into the session. Workbooks are read
// from their first sheet; anything else is treated as pasted text.
func ImportWorkers(ctx context.Context, session *wizard.Session, logger *zap.Logger, name string, r io.Reader, mode paste.Mode) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Importing workers", zap.String("source", name), zap.String("mode", string(mode)))

	// Step 1: Split the input into rows
	var rows [][]string
	if IsWorkbook(name) {
		var err error
		rows, err = paste.RowsFromXLSX(r, session.PasteOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook: %w", err)
		}
	} else {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		rows = paste.ParseRows(string(data), session.PasteOptions())
	}
	logger.Debug("Parsed input rows", zap.Int("rows", len(rows)))

	// Step 2: Apply them to the roster
	res := session.ImportRows(rows, mode)
	if len(res.Workers) == 0 {
		logger.Info("No workers found in input", zap.String("source", name))
	}
	for _, g := range res.CreatedGroups {
		logger.Info("Created group from import", zap.String("group", g.Name))
	}

	// Step 3: Report roster errors
	errs, err := session.Errors(wizard.StepWorkers)
	if err != nil {
		return nil, err
	}

	logger.Info("Workers imported",
		zap.Int("parsed", len(res.Workers)),
		zap.Int("roster", len(session.Workers())),
		zap.Int("errors", len(errs.Global)))

	return &ImportResult{
		Parsed:        len(res.Workers),
		CreatedGroups: res.CreatedGroups,
		Workers:       session.Workers(),
		Errors:        errs,
	}, nil
}
