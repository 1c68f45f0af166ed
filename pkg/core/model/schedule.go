package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ShiftTriple is one day's shift: entry time, break and exit time
type ShiftTriple struct {
	Entrada  string `json:"entrada"`
	Colacion string `json:"colacion"`
	Salida   string `json:"salida"`
}

// IsEmpty reports whether every part of the triple is blank
func (t ShiftTriple) IsEmpty() bool {
	return strings.TrimSpace(t.Entrada) == "" &&
		strings.TrimSpace(t.Colacion) == "" &&
		strings.TrimSpace(t.Salida) == ""
}

// HalfFilled reports whether exactly one of entry or exit is set.
// The break value never counts.
func (t ShiftTriple) HalfFilled() bool {
	hasIn := strings.TrimSpace(t.Entrada) != ""
	hasOut := strings.TrimSpace(t.Salida) != ""
	return hasIn != hasOut
}

// IsWorking reports whether both entry and exit are set
func (t ShiftTriple) IsWorking() bool {
	return strings.TrimSpace(t.Entrada) != "" && strings.TrimSpace(t.Salida) != ""
}

// WeekSchedule holds one ShiftTriple per weekday, indexed by Weekday
type WeekSchedule [DaysInWeek]ShiftTriple

// Clone returns an independent copy of the week
func (w WeekSchedule) Clone() WeekSchedule {
	var out WeekSchedule
	copy(out[:], w[:])
	return out
}

// Day returns the triple for d
func (w WeekSchedule) Day(d Weekday) ShiftTriple {
	return w[d]
}

// Set replaces the triple for d
func (w *WeekSchedule) Set(d Weekday, t ShiftTriple) {
	w[d] = t
}

// WorkingDays counts days with both entry and exit set
func (w WeekSchedule) WorkingDays() int {
	n := 0
	for _, t := range w {
		if t.IsWorking() {
			n++
		}
	}
	return n
}

// MarshalJSON writes an object keyed by lowercase day name in Monday..Sunday order
func (w WeekSchedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range Weekdays {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := json.Marshal(w[d])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", d.Key())
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts day keys, labels or abbreviations. Missing days stay empty.
func (w *WeekSchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]ShiftTriple
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out WeekSchedule
	for key, triple := range raw {
		d, ok := ParseWeekday(key)
		if !ok {
			return fmt.Errorf("unknown day %q", key)
		}
		out[d] = triple
	}
	*w = out
	return nil
}

// TemplateWeek maps each weekday to a base shift id ("" means rest day)
type TemplateWeek [DaysInWeek]string

// MarshalJSON writes an object keyed by single-letter day abbreviation
func (w TemplateWeek) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range Weekdays {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%q", d.Short(), w[d])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any day spelling ParseWeekday understands
func (w *TemplateWeek) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out TemplateWeek
	for key, id := range raw {
		d, ok := ParseWeekday(key)
		if !ok {
			return fmt.Errorf("unknown day %q", key)
		}
		out[d] = id
	}
	*w = out
	return nil
}
