// Package groups keeps the worker group catalog consistent with the roster.
package groups

import (
	"errors"
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

var (
	// ErrGroupInUse is returned when removing a group that workers still reference
	ErrGroupInUse = errors.New("no puedes eliminar un grupo que ya está asignado a trabajadores")
	// ErrGroupNotFound is returned for an unknown group id
	ErrGroupNotFound = errors.New("grupo no encontrado")
	// ErrBlankName is returned when a group name is empty after trimming
	ErrBlankName = errors.New("el nombre del grupo es obligatorio")
)

// Key normalizes a group name for comparison
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Result is the outcome of Canonicalize
type Result struct {
	Groups         []model.Group
	Workers        []model.Worker
	GroupsChanged  bool
	WorkersChanged bool
}

// Canonicalize deduplicates groups by normalized name, keeping the first
// trimmed spelling, and rewrites worker group references to that spelling.
// Blank names are dropped. Inputs are never modified, and applying it to its
// own output changes nothing.
func Canonicalize(groups []model.Group, workers []model.Worker) Result {
	res := Result{Groups: groups, Workers: workers}

	canonical := make(map[string]model.Group, len(groups))
	byID := make(map[string]model.Group, len(groups))
	unique := make([]model.Group, 0, len(groups))

	for _, g := range groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			res.GroupsChanged = true
			continue
		}
		key := strings.ToLower(name)
		if first, seen := canonical[key]; seen {
			res.GroupsChanged = true
			if g.ID != "" {
				byID[g.ID] = first
			}
			continue
		}
		if name != g.Name {
			res.GroupsChanged = true
		}
		g.Name = name
		canonical[key] = g
		if g.ID != "" {
			byID[g.ID] = g
		}
		unique = append(unique, g)
	}
	if res.GroupsChanged {
		res.Groups = unique
	}

	var rewritten []model.Worker
	for i, w := range workers {
		target, ok := resolve(w, canonical, byID)
		if !ok || (target.Name == w.Group && target.ID == w.GroupID) {
			continue
		}
		if rewritten == nil {
			rewritten = make([]model.Worker, len(workers))
			copy(rewritten, workers)
		}
		rewritten[i].Group = target.Name
		rewritten[i].GroupID = target.ID
	}
	if rewritten != nil {
		res.Workers = rewritten
		res.WorkersChanged = true
	}
	return res
}

// resolve finds the canonical group for a worker, by name first and by id
// when the name is blank.
func resolve(w model.Worker, canonical, byID map[string]model.Group) (model.Group, bool) {
	if key := Key(w.Group); key != "" {
		g, ok := canonical[key]
		return g, ok
	}
	if w.GroupID != "" {
		g, ok := byID[w.GroupID]
		return g, ok
	}
	return model.Group{}, false
}

// InUse reports whether any worker references the group by id or name
func InUse(g model.Group, workers []model.Worker) bool {
	key := Key(g.Name)
	for _, w := range workers {
		if (g.ID != "" && w.GroupID == g.ID) || (key != "" && Key(w.Group) == key) {
			return true
		}
	}
	return false
}

// Remove deletes a group unless a worker still uses it
func Remove(groups []model.Group, workers []model.Worker, id string) ([]model.Group, error) {
	idx := indexOf(groups, id)
	if idx < 0 {
		return groups, ErrGroupNotFound
	}
	if InUse(groups[idx], workers) {
		return groups, ErrGroupInUse
	}
	out := make([]model.Group, 0, len(groups)-1)
	out = append(out, groups[:idx]...)
	return append(out, groups[idx+1:]...), nil
}

// Rename changes a group's name and moves its workers to the new name.
// Run Canonicalize afterwards to fold any resulting duplicate.
func Rename(groups []model.Group, workers []model.Worker, id, name string) ([]model.Group, []model.Worker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return groups, workers, ErrBlankName
	}
	idx := indexOf(groups, id)
	if idx < 0 {
		return groups, workers, ErrGroupNotFound
	}

	old := groups[idx]
	outGroups := make([]model.Group, len(groups))
	copy(outGroups, groups)
	outGroups[idx].Name = name

	outWorkers := make([]model.Worker, len(workers))
	copy(outWorkers, workers)
	for i, w := range outWorkers {
		if w.GroupID == old.ID || Key(w.Group) == Key(old.Name) {
			outWorkers[i].Group = name
			outWorkers[i].GroupID = old.ID
		}
	}
	return outGroups, outWorkers, nil
}

func indexOf(groups []model.Group, id string) int {
	for i, g := range groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}
