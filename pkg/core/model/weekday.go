package model

import (
	"strings"
	"time"
)

// Weekday indexes the seven days of a WeekSchedule, starting on Monday
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of slots in a WeekSchedule
const DaysInWeek = 7

// Weekdays lists every day in display order
var Weekdays = [DaysInWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var (
	weekdayKeys   = [DaysInWeek]string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}
	weekdayShort  = [DaysInWeek]string{"L", "M", "X", "J", "V", "S", "D"}
	weekdayLabels = [DaysInWeek]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}
	weekdayTime   = [DaysInWeek]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
)

// Valid reports whether d is one of the seven days
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Key returns the lowercase ASCII name used as a JSON key (e.g. "miercoles")
func (d Weekday) Key() string {
	if !d.Valid() {
		return ""
	}
	return weekdayKeys[d]
}

// Short returns the single-letter abbreviation (L, M, X, J, V, S, D)
func (d Weekday) Short() string {
	if !d.Valid() {
		return ""
	}
	return weekdayShort[d]
}

// Label returns the display name used in messages (e.g. "Miércoles")
func (d Weekday) Label() string {
	if !d.Valid() {
		return ""
	}
	return weekdayLabels[d]
}

func (d Weekday) String() string {
	return d.Label()
}

// TimeWeekday converts to the standard library weekday
func (d Weekday) TimeWeekday() time.Weekday {
	return weekdayTime[d]
}

// FromTimeWeekday converts a standard library weekday
func FromTimeWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd - 1)
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

// ParseWeekday accepts a day key, label or single-letter abbreviation,
// case-insensitive and with or without accents.
func ParseWeekday(s string) (Weekday, bool) {
	trimmed := strings.TrimSpace(s)
	for _, d := range Weekdays {
		if trimmed == weekdayShort[d] {
			return d, true
		}
	}
	norm := accentReplacer.Replace(strings.ToLower(trimmed))
	for _, d := range Weekdays {
		if norm == weekdayKeys[d] {
			return d, true
		}
	}
	return 0, false
}
