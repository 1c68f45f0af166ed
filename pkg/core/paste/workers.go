package paste

import (
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

// Mode says whether parsed workers replace the roster or are appended to it
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

// Column positions of a pasted worker row
const (
	colTaxID = iota
	colEmail
	colFirstName
	colLastName
	colGroup
	colPlanStart
	colPlanEnd
	colFirstDay
)

// GroupResolver finds a group by name case-insensitively, creating it when absent
type GroupResolver interface {
	EnsureByName(name string) (group model.Group, created bool)
}

// Result is the outcome of parsing a batch of rows
type Result struct {
	Workers       []model.Worker
	CreatedGroups []model.Group
}

// ParseWorkers maps rows to workers. Columns are tax id, email, first names,
// last names, group, plan start, plan end, then entry/break/exit for each day
// Monday..Sunday. Missing trailing cells stay empty. Group names are resolved
// once per batch so repeated spellings map to the same group.
func ParseWorkers(rows [][]string, resolver GroupResolver) Result {
	var res Result
	batch := make(map[string]model.Group)

	for _, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		cell := func(i int) string {
			if i < len(cells) {
				return strings.TrimSpace(cells[i])
			}
			return ""
		}

		w := model.Worker{
			ID:        model.NewID(),
			TaxID:     cell(colTaxID),
			Email:     cell(colEmail),
			FirstName: cell(colFirstName),
			LastName:  cell(colLastName),
			PlanStart: cell(colPlanStart),
			PlanEnd:   cell(colPlanEnd),
		}

		if name := cell(colGroup); name != "" {
			key := strings.ToLower(name)
			g, ok := batch[key]
			if !ok {
				var created bool
				g, created = resolver.EnsureByName(name)
				batch[key] = g
				if created {
					res.CreatedGroups = append(res.CreatedGroups, g)
				}
			}
			w.Group = g.Name
			w.GroupID = g.ID
		}

		for _, d := range model.Weekdays {
			base := colFirstDay + int(d)*3
			w.Schedule.Set(d, model.ShiftTriple{
				Entrada:  cell(base),
				Colacion: cell(base + 1),
				Salida:   cell(base + 2),
			})
		}

		res.Workers = append(res.Workers, w)
	}
	return res
}

// Merge applies parsed workers to an existing roster according to mode
func Merge(existing, parsed []model.Worker, mode Mode) []model.Worker {
	if mode == ModeAppend {
		out := make([]model.Worker, 0, len(existing)+len(parsed))
		out = append(out, existing...)
		return append(out, parsed...)
	}
	out := make([]model.Worker, len(parsed))
	copy(out, parsed)
	return out
}

// ParseMode maps user input to a Mode, defaulting to replace
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeAppend)) {
		return ModeAppend
	}
	return ModeReplace
}
