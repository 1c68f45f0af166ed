// Package calendar expands weekly schedules into dated shifts over a planning window.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

const dateLayout = "2006-01-02"

var rruleDays = [model.DaysInWeek]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// Holiday is a named recurring non-working day
type Holiday struct {
	Name  string
	RRule string
}

// PlannedShift is one dated working day
type PlannedShift struct {
	Date  time.Time
	Day   model.Weekday
	Shift model.ShiftTriple
}

// Calendar expands worker weeks, skipping holidays
type Calendar struct {
	holidays []namedRule
}

type namedRule struct {
	name   string
	option rrule.ROption
}

// New parses holiday rules. Rules without DTSTART are anchored to the
// start of each window being expanded.
func New(holidays []Holiday) (*Calendar, error) {
	c := &Calendar{}
	for i, h := range holidays {
		opt, err := rrule.StrToROption(h.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule for holiday %d (%s): %w", i, h.Name, err)
		}
		c.holidays = append(c.holidays, namedRule{name: h.Name, option: *opt})
	}
	return c, nil
}

// Window parses a worker's planning window. ok is false when either end is unset.
func Window(w model.Worker) (start, end time.Time, ok bool, err error) {
	if strings.TrimSpace(w.PlanStart) == "" || strings.TrimSpace(w.PlanEnd) == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	start, err = time.Parse(dateLayout, strings.TrimSpace(w.PlanStart))
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse plan start: %w", err)
	}
	end, err = time.Parse(dateLayout, strings.TrimSpace(w.PlanEnd))
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse plan end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("plan end %s is before start %s", w.PlanEnd, w.PlanStart)
	}
	return start, end, true, nil
}

// Expand lists the dated shifts of one worker inside its planning window.
// Workers without a complete window yield no shifts.
func (c *Calendar) Expand(w model.Worker) ([]PlannedShift, error) {
	start, end, ok, err := Window(w)
	if err != nil || !ok {
		return nil, err
	}
	return c.ExpandWeek(w.Schedule, start, end)
}

// ExpandWeek lists the dated working days of week between start and end inclusive
func (c *Calendar) ExpandWeek(week model.WeekSchedule, start, end time.Time) ([]PlannedShift, error) {
	var days []rrule.Weekday
	for _, d := range model.Weekdays {
		if week.Day(d).IsWorking() {
			days = append(days, rruleDays[d])
		}
	}
	if len(days) == 0 {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Until:     end,
		Byweekday: days,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}

	set := rrule.Set{}
	set.RRule(rule)
	excluded, err := c.holidayDates(start, end)
	if err != nil {
		return nil, err
	}
	for _, d := range excluded {
		set.ExDate(d)
	}

	var out []PlannedShift
	for _, t := range set.All() {
		day := model.FromTimeWeekday(t.Weekday())
		out = append(out, PlannedShift{Date: t, Day: day, Shift: week.Day(day)})
	}
	return out, nil
}

// Holidays returns the holiday dates falling between start and end inclusive
func (c *Calendar) Holidays(start, end time.Time) ([]time.Time, error) {
	return c.holidayDates(start, end)
}

func (c *Calendar) holidayDates(start, end time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, h := range c.holidays {
		opt := h.option
		if opt.Dtstart.IsZero() {
			opt.Dtstart = time.Date(start.Year(), 1, 1, 0, 0, 0, 0, start.Location())
		}
		rule, err := rrule.NewRRule(opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build holiday rule %s: %w", h.name, err)
		}
		out = append(out, rule.Between(start, end, true)...)
	}
	return out, nil
}
