// Package export writes the onboarding payload as a JSON document or an XLSX workbook.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

// DefaultFileName is the suggested name of the JSON download
const DefaultFileName = "ingreso_geovictoria.json"

// Format selects the export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps user input to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// FileNameFor swaps the extension of name to match format
func FileNameFor(name string, format Format) string {
	if name == "" {
		name = DefaultFileName
	}
	if format == FormatXLSX {
		return strings.TrimSuffix(name, ".json") + ".xlsx"
	}
	return name
}

// Write encodes p in the given format
func Write(w io.Writer, p model.Payload, format Format) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, p)
	default:
		return WriteJSON(w, p)
	}
}

// WriteJSON writes the payload pretty-printed with two-space indentation
func WriteJSON(w io.Writer, p model.Payload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// ReadJSON decodes a payload previously written by WriteJSON
func ReadJSON(r io.Reader) (model.Payload, error) {
	var p model.Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return model.Payload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return p, nil
}

// Sheet names of the workbook export
const (
	SheetCompany   = "Empresa"
	SheetAdmin     = "Administrador"
	SheetGroups    = "Grupos"
	SheetShifts    = "Turnos base"
	SheetGeneral   = "Planificación general"
	SheetWorkers   = "Trabajadores"
	SheetTemplates = "Planificaciones"
	SheetAssign    = "Asignaciones"
)

type sheet struct {
	name string
	rows [][]any
}

// WriteXLSX writes one sheet per payload section. The workers sheet uses
// the same column layout the paste importer reads.
func WriteXLSX(w io.Writer, p model.Payload) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCompany); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	c := p.Company
	sheets := []sheet{
		{SheetCompany, [][]any{
			{"Campo", "Valor"},
			{"Razón social", c.LegalName},
			{"Nombre de fantasía", c.TradeName},
			{"RUT", c.TaxID},
			{"Giro", c.LineOfBusiness},
			{"Dirección", c.Address},
			{"Comuna", c.Commune},
			{"Correo de facturación", c.BillingEmail},
			{"Teléfono de contacto", c.Phone},
			{"Rubro", c.Industry},
			{"Sistema", c.System},
		}},
		{SheetAdmin, [][]any{
			{"Campo", "Valor"},
			{"Nombre", p.Admin.Name},
			{"RUT", p.Admin.TaxID},
			{"Teléfono", p.Admin.Phone},
			{"Correo", p.Admin.Email},
		}},
		{SheetGroups, groupRows(p.Groups)},
		{SheetShifts, baseShiftRows(p.BaseShifts)},
		{SheetGeneral, generalRows(p.GeneralSchedule)},
		{SheetWorkers, WorkerRows(p.Workers, true)},
	}
	if len(p.Templates) > 0 || len(p.Assignments) > 0 {
		sheets = append(sheets,
			sheet{SheetTemplates, templateRows(p.Templates, p.BaseShifts)},
			sheet{SheetAssign, assignmentRows(p.Assignments, p.Templates, p.Workers)},
		)
	}

	for i, sh := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sh.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
			}
		}
		for r, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sh.name, r+1, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WorkerHeader lists the worker columns in paste order
func WorkerHeader() []any {
	header := []any{"RUT", "Correo", "Nombres", "Apellidos", "Grupo", "Inicio planificación", "Fin planificación"}
	for _, d := range model.Weekdays {
		header = append(header, d.Label()+" entrada", d.Label()+" colación", d.Label()+" salida")
	}
	return header
}

// WorkerRows renders workers in the column order the paste importer expects
func WorkerRows(workers []model.Worker, withHeader bool) [][]any {
	rows := make([][]any, 0, len(workers)+1)
	if withHeader {
		rows = append(rows, WorkerHeader())
	}
	for _, w := range workers {
		row := []any{w.TaxID, w.Email, w.FirstName, w.LastName, w.Group, w.PlanStart, w.PlanEnd}
		for _, d := range model.Weekdays {
			t := w.Schedule.Day(d)
			row = append(row, t.Entrada, t.Colacion, t.Salida)
		}
		rows = append(rows, row)
	}
	return rows
}

func groupRows(groups []model.Group) [][]any {
	rows := [][]any{{"Grupo", "Descripción"}}
	for _, g := range groups {
		rows = append(rows, []any{g.Name, g.Description})
	}
	return rows
}

func baseShiftRows(shifts []model.BaseShift) [][]any {
	rows := [][]any{{"Nombre", "Entrada", "Colación", "Salida"}}
	for _, b := range shifts {
		rows = append(rows, []any{b.Name, b.Entrada, b.Colacion, b.Salida})
	}
	return rows
}

func generalRows(week model.WeekSchedule) [][]any {
	rows := [][]any{{"Día", "Entrada", "Colación", "Salida"}}
	for _, d := range model.Weekdays {
		t := week.Day(d)
		rows = append(rows, []any{d.Label(), t.Entrada, t.Colacion, t.Salida})
	}
	return rows
}

func templateRows(templates []model.ScheduleTemplate, shifts []model.BaseShift) [][]any {
	names := make(map[string]string, len(shifts))
	for _, b := range shifts {
		names[b.ID] = b.Name
	}
	header := []any{"Planificación"}
	for _, d := range model.Weekdays {
		header = append(header, d.Label())
	}
	rows := [][]any{header}
	for _, t := range templates {
		row := []any{t.Name}
		for _, d := range model.Weekdays {
			row = append(row, names[t.Week[d]])
		}
		rows = append(rows, row)
	}
	return rows
}

func assignmentRows(assignments []model.Assignment, templates []model.ScheduleTemplate, workers []model.Worker) [][]any {
	templateNames := make(map[string]string, len(templates))
	for _, t := range templates {
		templateNames[t.ID] = t.Name
	}
	workerNames := make(map[string]model.Worker, len(workers))
	for _, w := range workers {
		workerNames[w.ID] = w
	}
	rows := [][]any{{"RUT", "Trabajador", "Planificación", "Desde", "Hasta"}}
	for _, a := range assignments {
		w := workerNames[a.WorkerID]
		rows = append(rows, []any{w.TaxID, w.FullName(), templateNames[a.TemplateID], a.From, a.To})
	}
	return rows
}
