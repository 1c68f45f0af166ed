package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/groups"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
)

var office = model.ShiftTriple{Entrada: "09:00", Colacion: "60", Salida: "18:00"}

func groupNames(gs []model.Group) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Name
	}
	return out
}

func newWorker(email, rutValue, group string) model.Worker {
	return model.Worker{TaxID: rutValue, Email: email, FirstName: "Ana", LastName: "Pérez", Group: group}
}

func TestNew_Demo(t *testing.T) {
	s := New(Options{Demo: true, SeedGroups: []string{"gts", "Bodega"}})
	assert.Equal(t, DemoAdmin, s.Admin())
	assert.Equal(t, DemoCompany, s.Company())
	assert.Equal(t, []string{"GTS", "Soporte", "Comercial", "Bodega"}, groupNames(s.Groups()))
	assert.Equal(t, VariantWeekly, s.Variant())
	assert.Len(t, s.Steps(), 6)
}

func TestNavigation_WeeklyGuards(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, StepAdmin, s.Current().ID)
	assert.False(t, s.CanNext())
	assert.ErrorIs(t, s.Next(), ErrStepBlocked)

	s.SetAdmin(DemoAdmin)
	require.NoError(t, s.Next())
	assert.Equal(t, StepCompanyGroups, s.Current().ID)

	s.SetCompany(DemoCompany)
	assert.False(t, s.CanNext(), "no groups yet")
	_, err := s.AddGroup("GTS", "")
	require.NoError(t, err)
	require.NoError(t, s.Next())

	assert.Equal(t, StepWorkers, s.Current().ID)
	assert.False(t, s.CanNext(), "empty roster")
	s.AddWorker(newWorker("a@b.cl", "11.111.111-1", "GTS"))
	require.NoError(t, s.Next())

	assert.Equal(t, StepShifts, s.Current().ID)
	assert.True(t, s.CanNext())
	require.NoError(t, s.Next())

	assert.Equal(t, StepSchedules, s.Current().ID)
	require.NoError(t, s.SetWorkerDay(0, model.Monday, model.ShiftTriple{Entrada: "09:00"}))
	assert.False(t, s.CanNext())
	require.NoError(t, s.SetWorkerDay(0, model.Monday, office))
	require.NoError(t, s.Next())

	assert.Equal(t, StepSummary, s.Current().ID)
	assert.False(t, s.CanNext())
	assert.NoError(t, s.Next())
	assert.Equal(t, StepSummary, s.Current().ID)

	s.Prev()
	assert.Equal(t, StepSchedules, s.Current().ID)
}

func TestGoTo(t *testing.T) {
	s := New(Options{})
	err := s.GoTo(StepWorkers)
	assert.ErrorIs(t, err, ErrStepBlocked)
	assert.Equal(t, StepAdmin, s.Current().ID)

	s.SetAdmin(DemoAdmin)
	s.SetCompany(DemoCompany)
	_, err = s.AddGroup("GTS", "")
	require.NoError(t, err)
	require.NoError(t, s.GoTo(StepWorkers))
	assert.Equal(t, 2, s.CurrentIndex())

	require.NoError(t, s.GoTo(StepAdmin))
	assert.Equal(t, 0, s.CurrentIndex())

	assert.ErrorIs(t, s.GoTo(StepTemplates), ErrUnknownStep)
}

func TestErrors_Memoized(t *testing.T) {
	s := New(Options{})
	first, err := s.Errors(StepAdmin)
	require.NoError(t, err)
	assert.False(t, first.Empty())
	n := s.Evaluations()

	_, _ = s.Errors(StepAdmin)
	assert.Equal(t, n, s.Evaluations(), "unchanged inputs reuse the cached result")

	s.SetCompany(DemoCompany)
	_, _ = s.Errors(StepAdmin)
	assert.Equal(t, n, s.Evaluations(), "unrelated mutation keeps the cache")

	s.SetAdmin(DemoAdmin)
	after, _ := s.Errors(StepAdmin)
	assert.Equal(t, n+1, s.Evaluations())
	assert.True(t, after.Empty())

	_, err = s.Errors("nope")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestGroupMutationsCanonicalize(t *testing.T) {
	s := New(Options{SeedGroups: []string{"GTS", "Soporte"}})
	s.AddWorker(newWorker("a@b.cl", "11.111.111-1", "gts"))
	assert.Equal(t, "GTS", s.Workers()[0].Group)

	g, err := s.AddGroup(" soporte ", "")
	require.NoError(t, err)
	assert.Equal(t, "Soporte", g.Name)
	assert.Len(t, s.Groups(), 2)

	_, err = s.AddGroup("  ", "")
	assert.ErrorIs(t, err, groups.ErrBlankName)

	// renaming onto an existing spelling folds the two groups
	soporte := s.Groups()[1]
	require.NoError(t, s.RenameGroup(soporte.ID, "gts"))
	assert.Equal(t, []string{"GTS"}, groupNames(s.Groups()))

	gts := s.Groups()[0]
	assert.ErrorIs(t, s.RemoveGroup(gts.ID), groups.ErrGroupInUse)
	require.NoError(t, s.RemoveWorker(0))
	require.NoError(t, s.RemoveGroup(gts.ID))
	assert.Empty(t, s.Groups())
}

func TestUpdateWorker(t *testing.T) {
	s := New(Options{})
	w := s.AddWorker(newWorker("a@b.cl", "11.111.111-1", "Bodega"))
	assert.Equal(t, []string{"Bodega"}, groupNames(s.Groups()))

	changed := w
	changed.FirstName = "Luisa"
	changed.Group = "BODEGA"
	out, err := s.UpdateWorker(w.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Luisa", out.FirstName)
	assert.Equal(t, "Bodega", out.Group)
	assert.Equal(t, w.ID, out.ID)

	_, err = s.UpdateWorker("missing", changed)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestPasteWorkers(t *testing.T) {
	s := New(Options{SeedGroups: []string{"GTS"}})
	s.AddWorker(newWorker("old@b.cl", "11.111.111-1", "GTS"))
	s.SetSelection([]int{0})

	text := "22.222.222-2\ta@b.cl\tAna\tPérez\tgts\n12.345.678-5\tc@d.cl\tLuis\tSoto\tNuevo\n\t\t\n"
	res := s.PasteWorkers(text, paste.ModeReplace)
	require.Len(t, res.Workers, 2)
	require.Len(t, res.CreatedGroups, 1)

	workers := s.Workers()
	require.Len(t, workers, 2)
	assert.Equal(t, "GTS", workers[0].Group)
	assert.Equal(t, "Nuevo", workers[1].Group)
	assert.Equal(t, []string{"GTS", "Nuevo"}, groupNames(s.Groups()))
	assert.Empty(t, s.Selection())

	s.PasteWorkers("33.333.333-3\te@f.cl\tEva\tRoa\tNuevo", paste.ModeAppend)
	assert.Len(t, s.Workers(), 3)
	assert.Len(t, s.Groups(), 2)
}

func TestRemoveWorker_ShiftsSelection(t *testing.T) {
	s := New(Options{})
	for _, email := range []string{"a@x.cl", "b@x.cl", "c@x.cl", "d@x.cl"} {
		s.AddWorker(newWorker(email, "", ""))
	}
	s.SetSelection([]int{0, 2, 3, 9})
	assert.Equal(t, []int{0, 2, 3}, s.Selection())

	require.NoError(t, s.RemoveWorker(2))
	assert.Equal(t, []int{0, 2}, s.Selection())
	assert.Equal(t, "d@x.cl", s.Workers()[2].Email)

	assert.ErrorIs(t, s.RemoveWorker(7), ErrWorkerNotFound)
}

func TestBulkScheduleOperations(t *testing.T) {
	s := New(Options{})
	for _, email := range []string{"a@x.cl", "b@x.cl", "c@x.cl"} {
		s.AddWorker(newWorker(email, "", ""))
	}

	assert.ErrorIs(t, s.ApplyGeneralToSelected(), schedule.ErrEmptySelection)

	s.SetGeneralDay(model.Monday, office)
	s.SetSelection([]int{1, 2})
	require.NoError(t, s.ApplyGeneralToSelected())
	assert.Equal(t, office, s.Workers()[1].Schedule.Day(model.Monday))

	s.SetGeneralDay(model.Monday, model.ShiftTriple{})
	assert.Equal(t, office, s.Workers()[2].Schedule.Day(model.Monday), "template edits do not leak into copies")

	require.NoError(t, s.CopyMondayToWeek(1))
	assert.Equal(t, 7, s.Workers()[1].Schedule.WorkingDays())

	require.NoError(t, s.CopyFromPrevious(2))
	assert.Equal(t, s.Workers()[1].Schedule, s.Workers()[2].Schedule)

	s.SetSelection([]int{1})
	assert.ErrorIs(t, s.CopyToSelected(1), schedule.ErrNoDestinations)
	s.SelectAll()
	require.NoError(t, s.CopyToSelected(1))
	assert.Equal(t, 7, s.Workers()[0].Schedule.WorkingDays())

	require.NoError(t, s.ToggleSelection(0))
	assert.Equal(t, []int{1, 2}, s.Selection())
	s.ClearSelection()
	assert.Empty(t, s.Selection())
	assert.ErrorIs(t, s.ToggleSelection(3), ErrWorkerNotFound)
}

func TestBaseShiftSelectionRoundTrip(t *testing.T) {
	s := New(Options{})
	s.AddWorker(newWorker("a@x.cl", "", ""))

	_, err := s.AddBaseShift("Oficina", "09:00", "60", "")
	assert.ErrorIs(t, err, schedule.ErrIncompleteBaseShift)

	b, err := s.AddBaseShift("Oficina", "09:00", "60", "18:00")
	require.NoError(t, err)

	require.NoError(t, s.SelectWorkerBaseShift(0, model.Tuesday, b.ID))
	assert.Equal(t, b.ID, s.WorkerDayBaseShift(0, model.Tuesday))

	require.NoError(t, s.SelectWorkerBaseShift(0, model.Tuesday, ""))
	assert.True(t, s.Workers()[0].Schedule.Day(model.Tuesday).IsEmpty())
	assert.Equal(t, "", s.WorkerDayBaseShift(0, model.Tuesday))

	require.NoError(t, s.SelectGeneralBaseShift(model.Friday, b.ID))
	assert.Equal(t, office, s.General().Day(model.Friday))
	assert.Error(t, s.SelectGeneralBaseShift(model.Friday, "missing"))
}

func TestAssignmentVariant(t *testing.T) {
	s := New(Options{Variant: VariantAssignments, Demo: true})
	require.Len(t, s.Steps(), 7)

	a := s.AddWorker(newWorker("a@x.cl", "22.222.222-2", "GTS"))
	b := s.AddWorker(newWorker("b@x.cl", "12.345.678-5", "GTS"))

	errs, err := s.Errors(StepAssignments)
	require.NoError(t, err)
	assert.Equal(t, []string{"Debes crear al menos una planificación antes de asignar."}, errs.Global)

	shift, err := s.AddBaseShift("Oficina", "09:00", "60", "18:00")
	require.NoError(t, err)
	tmpl, err := s.AddTemplate("Semana oficina")
	require.NoError(t, err)
	require.NoError(t, s.SetTemplateDay(tmpl.ID, model.Monday, shift.ID))
	assert.Error(t, s.SetTemplateDay(tmpl.ID, model.Monday, "missing"))

	require.NoError(t, s.AssignTemplate(tmpl.ID, "2025-01-01", "2025-12-31", []string{a.ID}))
	errs, _ = s.Errors(StepAssignments)
	assert.Equal(t, []string{"Aún hay 1 trabajador(es) sin planificación asignada."}, errs.Global)

	assert.ErrorIs(t, s.AssignTemplate(tmpl.ID, "", "2025-12-31", []string{b.ID}), schedule.ErrMissingPeriod)
	assert.ErrorIs(t, s.AssignTemplate("missing", "2025-01-01", "2025-12-31", []string{b.ID}), ErrTemplateNotFound)
	require.NoError(t, s.AssignTemplate(tmpl.ID, "2025-01-01", "2025-12-31", []string{b.ID}))
	errs, _ = s.Errors(StepAssignments)
	assert.True(t, errs.Empty())

	// deleting a worker drops its assignment
	require.NoError(t, s.RemoveWorker(0))
	assert.Len(t, s.Assignments(), 1)

	require.NoError(t, s.RemoveBaseShift(shift.ID))
	assert.Equal(t, "", s.Templates()[0].Week[model.Monday])

	require.NoError(t, s.RemoveTemplate(tmpl.ID))
	assert.Empty(t, s.Assignments())

	p := s.Payload()
	assert.NotNil(t, p.Assignments)
	assert.Empty(t, p.Templates)
}

func TestFromPayload(t *testing.T) {
	p := model.Payload{
		Admin:   DemoAdmin,
		Company: DemoCompany,
		Groups:  []model.Group{{Name: "GTS"}, {Name: "gts"}},
		Workers: []model.Worker{
			{Email: "a@x.cl", Group: "GTS "},
			{Email: "b@x.cl", Group: "Bodega"},
		},
	}

	s := FromPayload(p, Options{})
	assert.Equal(t, []string{"GTS", "Bodega"}, groupNames(s.Groups()))
	workers := s.Workers()
	require.Len(t, workers, 2)
	assert.NotEmpty(t, workers[0].ID)
	assert.Equal(t, "GTS", workers[0].Group)
	assert.Equal(t, s.Groups()[0].ID, workers[0].GroupID)
	assert.Equal(t, s.Groups()[1].ID, workers[1].GroupID)

	out := s.Payload()
	assert.Nil(t, out.Templates)
	assert.NotNil(t, out.BaseShifts)
}

func TestAllErrorsAndFirstBlocked(t *testing.T) {
	s := New(Options{Demo: true})
	step, blocked := s.FirstBlocked()
	require.True(t, blocked)
	assert.Equal(t, StepWorkers, step.ID)

	all := s.AllErrors()
	assert.Contains(t, all.Global, "Debes agregar al menos un trabajador.")
}

func TestWorkerNames_PerVariant(t *testing.T) {
	row := "11.111.111-1\tjuan@empresa.cl\tJuan\t\tGTS"

	s := New(Options{Variant: VariantAssignments})
	s.PasteWorkers(row, paste.ModeReplace)
	errs, err := s.Errors(StepWorkers)
	require.NoError(t, err)
	assert.True(t, errs.Empty())

	s = New(Options{Variant: VariantWeekly})
	s.PasteWorkers(row, paste.ModeReplace)
	errs, err = s.Errors(StepWorkers)
	require.NoError(t, err)
	assert.Equal(t, "Los apellidos son obligatorios.", errs.Field(s.Workers()[0].ID, "apellidos"))
}
