package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

var office = model.ShiftTriple{Entrada: "09:00", Colacion: "60", Salida: "18:00"}

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExpand_WeekdaysInWindow(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	w := model.Worker{PlanStart: "2025-03-03", PlanEnd: "2025-03-16"}
	w.Schedule.Set(model.Monday, office)
	w.Schedule.Set(model.Wednesday, office)
	// half-filled days are not working days
	w.Schedule.Set(model.Friday, model.ShiftTriple{Entrada: "09:00"})

	shifts, err := c.Expand(w)
	require.NoError(t, err)
	require.Len(t, shifts, 4)
	assert.Equal(t, date("2025-03-03"), shifts[0].Date)
	assert.Equal(t, model.Monday, shifts[0].Day)
	assert.Equal(t, date("2025-03-05"), shifts[1].Date)
	assert.Equal(t, model.Wednesday, shifts[1].Day)
	assert.Equal(t, date("2025-03-12"), shifts[3].Date)
	assert.Equal(t, office, shifts[3].Shift)
}

func TestExpand_SkipsHolidays(t *testing.T) {
	c, err := New([]Holiday{{Name: "Fiestas Patrias", RRule: "FREQ=YEARLY;BYMONTH=9;BYMONTHDAY=18"}})
	require.NoError(t, err)

	w := model.Worker{PlanStart: "2025-09-15", PlanEnd: "2025-09-19"}
	for _, d := range []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday} {
		w.Schedule.Set(d, office)
	}

	shifts, err := c.Expand(w)
	require.NoError(t, err)
	require.Len(t, shifts, 4)
	for _, s := range shifts {
		assert.NotEqual(t, date("2025-09-18"), s.Date)
	}

	holidays, err := c.Holidays(date("2025-01-01"), date("2026-12-31"))
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}

func TestExpand_NoWindow(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	w := model.Worker{PlanStart: "2025-01-01"}
	w.Schedule.Set(model.Monday, office)

	shifts, err := c.Expand(w)
	assert.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestExpand_InvalidWindow(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	_, err = c.Expand(model.Worker{PlanStart: "2025-02-01", PlanEnd: "2025-01-01"})
	assert.Error(t, err)

	_, err = c.Expand(model.Worker{PlanStart: "hoy", PlanEnd: "2025-01-01"})
	assert.Error(t, err)
}

func TestNew_InvalidRule(t *testing.T) {
	_, err := New([]Holiday{{Name: "x", RRule: "FREQ=NEVER"}})
	assert.Error(t, err)
}
