package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

func samplePayload() model.Payload {
	w := model.Worker{
		ID:        "w1",
		TaxID:     "11.111.111-1",
		Email:     "ana@empresa.cl",
		FirstName: "Ana",
		LastName:  "Pérez",
		Group:     "GTS",
		GroupID:   "g1",
		PlanStart: "2025-01-01",
		PlanEnd:   "2025-12-31",
	}
	w.Schedule.Set(model.Monday, model.ShiftTriple{Entrada: "09:00", Colacion: "60", Salida: "18:00"})

	return model.Payload{
		Company:    model.Company{LegalName: "Empresa Demo SpA", TaxID: "11.111.111-1", BillingEmail: "f@e.cl", System: "GeoVictoria BOX"},
		Admin:      model.Admin{Name: "Admin", TaxID: "11.111.111-1", Email: "a@e.cl"},
		Groups:     []model.Group{{ID: "g1", Name: "GTS"}},
		BaseShifts: []model.BaseShift{{ID: "b1", Name: "Oficina", Entrada: "09:00", Colacion: "60", Salida: "18:00"}},
		Workers:    []model.Worker{w},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, samplePayload()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"empresa\": {\n    \"razonSocial\""))
	keys := []string{`"empresa"`, `"admin"`, `"grupos"`, `"turnosBase"`, `"planificacionGeneral"`, `"trabajadores"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(out, "\n  "+k)
		require.GreaterOrEqual(t, idx, 0, k)
		assert.Greater(t, idx, last, k)
		last = idx
	}
	assert.NotContains(t, out, "asignaciones")

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, samplePayload(), back)
}

func TestWriteXLSX(t *testing.T) {
	p := samplePayload()
	p.Templates = []model.ScheduleTemplate{{ID: "p1", Name: "Semana"}}
	p.Templates[0].Week[model.Monday] = "b1"
	p.Assignments = []model.Assignment{{ID: "a1", WorkerID: "w1", TemplateID: "p1", From: "2025-01-01", To: "2025-06-30"}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCompany, SheetAdmin, SheetGroups, SheetShifts, SheetGeneral, SheetWorkers, SheetTemplates, SheetAssign}, f.GetSheetList())

	rows, err := f.GetRows(SheetWorkers)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "RUT", rows[0][0])
	assert.Equal(t, []string{"11.111.111-1", "ana@empresa.cl", "Ana", "Pérez", "GTS", "2025-01-01", "2025-12-31", "09:00", "60", "18:00"}, rows[1])

	company, err := f.GetRows(SheetCompany)
	require.NoError(t, err)
	assert.Equal(t, []string{"Razón social", "Empresa Demo SpA"}, company[1])

	tmpl, err := f.GetRows(SheetTemplates)
	require.NoError(t, err)
	assert.Equal(t, []string{"Semana", "Oficina"}, tmpl[1])

	assign, err := f.GetRows(SheetAssign)
	require.NoError(t, err)
	assert.Equal(t, []string{"11.111.111-1", "Ana Pérez", "Semana", "2025-01-01", "2025-06-30"}, assign[1])
}

func TestWriteXLSX_WeeklyHasNoAssignmentSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, samplePayload()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 6)
}

func TestParseFormatAndFileName(t *testing.T) {
	f, err := ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "ingreso_geovictoria.json", FileNameFor("", FormatJSON))
	assert.Equal(t, "ingreso_geovictoria.xlsx", FileNameFor("", FormatXLSX))
}
