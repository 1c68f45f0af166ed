package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

var (
	morning = model.ShiftTriple{Entrada: "08:00", Colacion: "30", Salida: "14:00"}
	office  = model.ShiftTriple{Entrada: "09:00", Colacion: "60", Salida: "18:00"}
)

func roster(n int) []model.Worker {
	out := make([]model.Worker, n)
	for i := range out {
		out[i] = model.Worker{ID: string(rune('a' + i))}
	}
	return out
}

func TestCopyFromPrevious(t *testing.T) {
	workers := roster(3)
	workers[0].Schedule.Set(model.Monday, office)

	out, err := CopyFromPrevious(workers, 1)
	require.NoError(t, err)
	assert.Equal(t, workers[0].Schedule, out[1].Schedule)
	assert.True(t, workers[1].Schedule.Day(model.Monday).IsEmpty(), "input must not change")

	out[1].Schedule.Set(model.Monday, morning)
	assert.Equal(t, office, out[0].Schedule.Day(model.Monday))
}

func TestCopyFromPrevious_FirstIsNoop(t *testing.T) {
	workers := roster(2)
	workers[0].Schedule.Set(model.Friday, office)

	out, err := CopyFromPrevious(workers, 0)
	require.NoError(t, err)
	assert.Equal(t, workers, out)

	_, err = CopyFromPrevious(workers, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCopyMondayToWeek(t *testing.T) {
	workers := roster(1)
	workers[0].Schedule.Set(model.Monday, office)
	workers[0].Schedule.Set(model.Sunday, morning)

	out, err := CopyMondayToWeek(workers, 0)
	require.NoError(t, err)
	for _, d := range model.Weekdays {
		assert.Equal(t, office, out[0].Schedule.Day(d), d.Label())
	}
	assert.Equal(t, morning, workers[0].Schedule.Day(model.Sunday))
}

func TestCopyToSelected(t *testing.T) {
	workers := roster(4)
	workers[0].Schedule.Set(model.Monday, office)

	out, err := CopyToSelected(workers, 0, NewSelection(0, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, office, out[2].Schedule.Day(model.Monday))
	assert.Equal(t, office, out[3].Schedule.Day(model.Monday))
	assert.True(t, out[1].Schedule.Day(model.Monday).IsEmpty())

	out[2].Schedule.Set(model.Monday, morning)
	assert.Equal(t, office, out[3].Schedule.Day(model.Monday))
	assert.Equal(t, office, out[0].Schedule.Day(model.Monday))
}

func TestCopyToSelected_OnlySource(t *testing.T) {
	workers := roster(2)
	_, err := CopyToSelected(workers, 0, NewSelection(0))
	assert.ErrorIs(t, err, ErrNoDestinations)

	_, err = CopyToSelected(workers, 0, NewSelection())
	assert.ErrorIs(t, err, ErrNoDestinations)

	_, err = CopyToSelected(workers, 0, NewSelection(9))
	assert.ErrorIs(t, err, ErrNoDestinations)
}

func TestApplyTemplateToSelected(t *testing.T) {
	var template model.WeekSchedule
	template.Set(model.Monday, office)
	template.Set(model.Tuesday, office)

	workers := roster(3)
	out, err := ApplyTemplateToSelected(workers, template, NewSelection(0, 2))
	require.NoError(t, err)
	assert.Equal(t, template, out[0].Schedule)
	assert.Equal(t, template, out[2].Schedule)
	assert.Equal(t, model.WeekSchedule{}, out[1].Schedule)

	out[0].Schedule.Set(model.Monday, morning)
	assert.Equal(t, office, out[2].Schedule.Day(model.Monday))
	assert.Equal(t, office, template.Day(model.Monday))
}

func TestApplyTemplateToSelected_Empty(t *testing.T) {
	out, err := ApplyTemplateToSelected(roster(2), model.WeekSchedule{}, NewSelection())
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Len(t, out, 2)
}

func TestSetDay(t *testing.T) {
	workers := roster(1)
	out, err := SetDay(workers, 0, model.Thursday, morning)
	require.NoError(t, err)
	assert.Equal(t, morning, out[0].Schedule.Day(model.Thursday))
	assert.True(t, workers[0].Schedule.Day(model.Thursday).IsEmpty())
}

func TestSelection_AfterRemoval(t *testing.T) {
	sel := NewSelection(0, 2, 5)
	assert.Equal(t, []int{0, 1, 4}, sel.AfterRemoval(1).Indices())
	assert.Equal(t, []int{0, 4}, sel.AfterRemoval(2).Indices())
	assert.Equal(t, []int{0, 2, 5}, sel.Indices())
}

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(3)
	assert.True(t, sel.Has(3))
	sel.Toggle(3)
	assert.False(t, sel.Has(3))
	assert.Equal(t, []int{1}, NewSelection(1, 7).Within(3).Indices())
}

func TestBaseShifts(t *testing.T) {
	_, err := NewBaseShift("Mañana", "08:00", "", "")
	assert.ErrorIs(t, err, ErrIncompleteBaseShift)

	b, err := NewBaseShift(" Oficina ", "09:00", "60", "18:00")
	require.NoError(t, err)
	assert.Equal(t, "Oficina", b.Name)
	assert.NotEmpty(t, b.ID)

	shifts := []model.BaseShift{b}
	assert.Equal(t, b.ID, MatchBaseShift(office, shifts))
	assert.Equal(t, "", MatchBaseShift(morning, shifts))

	triple, err := BaseShiftTriple(b.ID, shifts)
	require.NoError(t, err)
	assert.Equal(t, b.ID, MatchBaseShift(triple, shifts))

	cleared, err := BaseShiftTriple("", shifts)
	require.NoError(t, err)
	assert.True(t, cleared.IsEmpty())

	_, err = BaseShiftTriple("missing", shifts)
	assert.ErrorIs(t, err, ErrBaseShiftNotFound)
}

func TestAssignTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		from     string
		to       string
		ids      []string
		wantErr  error
	}{
		{"no template", "", "2025-01-01", "2025-01-31", []string{"a"}, ErrMissingTemplate},
		{"no period", "p1", "2025-01-01", "", []string{"a"}, ErrMissingPeriod},
		{"reversed", "p1", "2025-02-01", "2025-01-01", []string{"a"}, ErrInvalidPeriod},
		{"bad date", "p1", "01-01-2025", "2025-01-31", []string{"a"}, ErrInvalidPeriod},
		{"no workers", "p1", "2025-01-01", "2025-01-31", nil, ErrNoWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssignTemplate(nil, tt.template, tt.from, tt.to, tt.ids)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	existing := []model.Assignment{{ID: "x", WorkerID: "z", TemplateID: "p0", From: "2024-01-01", To: "2024-12-31"}}
	out, err := AssignTemplate(existing, "p1", "2025-01-01", "2025-12-31", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[1].WorkerID)
	assert.Equal(t, "p1", out[2].TemplateID)
	assert.Len(t, existing, 1)
}

func TestUnassignedAndPrune(t *testing.T) {
	workers := roster(3)
	templates := []model.ScheduleTemplate{{ID: "p1"}}
	assignments := []model.Assignment{
		{ID: "1", WorkerID: "a", TemplateID: "p1", From: "2025-01-01", To: "2025-01-31"},
		{ID: "2", WorkerID: "b", TemplateID: "gone", From: "2025-01-01", To: "2025-01-31"},
		{ID: "3", WorkerID: "zz", TemplateID: "p1", From: "2025-01-01", To: "2025-01-31"},
	}

	pruned := PruneAssignments(assignments, workers, templates)
	require.Len(t, pruned, 1)
	assert.Equal(t, "1", pruned[0].ID)

	missing := Unassigned(workers, pruned)
	require.Len(t, missing, 2)
	assert.Equal(t, "b", missing[0].ID)
	assert.Len(t, AssignmentsFor("a", assignments), 1)
}

func TestTemplateWeekSchedule(t *testing.T) {
	shifts := []model.BaseShift{{ID: "t1", Entrada: "09:00", Colacion: "60", Salida: "18:00"}}
	var tw model.TemplateWeek
	tw[model.Monday] = "t1"
	tw[model.Tuesday] = "unknown"

	week := TemplateWeekSchedule(model.ScheduleTemplate{ID: "p1", Week: tw}, shifts)
	assert.Equal(t, office, week.Day(model.Monday))
	assert.True(t, week.Day(model.Tuesday).IsEmpty())
}

func TestWorkersInGroup(t *testing.T) {
	workers := []model.Worker{
		{ID: "a", Group: "GTS"},
		{ID: "b", Group: "Soporte"},
		{ID: "c", Group: " gts "},
	}

	got := WorkersInGroup(workers, "Gts")
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[1].ID)
	assert.Len(t, WorkersInGroup(workers, ""), 3)
	assert.Empty(t, WorkersInGroup(workers, "Bodega"))
}
