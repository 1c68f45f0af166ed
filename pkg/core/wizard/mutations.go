package wizard

import (
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/groups"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
)

// Admin returns the administrator record
func (s *Session) Admin() model.Admin { return s.admin }

// Company returns the company record
func (s *Session) Company() model.Company { return s.company }

// Groups returns a copy of the group catalog
func (s *Session) Groups() []model.Group { return append([]model.Group(nil), s.groups...) }

// Workers returns a copy of the roster
func (s *Session) Workers() []model.Worker { return append([]model.Worker(nil), s.workers...) }

// BaseShifts returns a copy of the base shift catalog
func (s *Session) BaseShifts() []model.BaseShift {
	return append([]model.BaseShift(nil), s.baseShifts...)
}

// General returns the general weekly template
func (s *Session) General() model.WeekSchedule { return s.general.Clone() }

// Templates returns a copy of the named schedule templates
func (s *Session) Templates() []model.ScheduleTemplate {
	return append([]model.ScheduleTemplate(nil), s.templates...)
}

// Assignments returns a copy of the template assignments
func (s *Session) Assignments() []model.Assignment {
	return append([]model.Assignment(nil), s.assignments...)
}

// Selection returns the selected worker positions in ascending order
func (s *Session) Selection() []int { return s.selection.Indices() }

// Payload assembles the exportable document
func (s *Session) Payload() model.Payload {
	p := model.Payload{
		Company:         s.company,
		Admin:           s.admin,
		Groups:          s.Groups(),
		BaseShifts:      s.BaseShifts(),
		GeneralSchedule: s.General(),
		Workers:         s.Workers(),
	}
	if s.variant == VariantAssignments {
		p.Templates = append([]model.ScheduleTemplate{}, s.templates...)
		p.Assignments = append([]model.Assignment{}, s.assignments...)
	}
	if p.Groups == nil {
		p.Groups = []model.Group{}
	}
	if p.BaseShifts == nil {
		p.BaseShifts = []model.BaseShift{}
	}
	if p.Workers == nil {
		p.Workers = []model.Worker{}
	}
	return p
}

// SetAdmin replaces the administrator record
func (s *Session) SetAdmin(a model.Admin) {
	s.admin = a
	s.touch(colAdmin)
}

// SetCompany replaces the company record
func (s *Session) SetCompany(c model.Company) {
	s.company = c
	s.touch(colCompany)
}

// AddGroup adds a group unless one with the same normalized name exists,
// in which case the existing group is returned.
func (s *Session) AddGroup(name, description string) (model.Group, error) {
	if strings.TrimSpace(name) == "" {
		return model.Group{}, groups.ErrBlankName
	}
	catalog := groups.NewCatalog(s.groups)
	g, created := catalog.Add(name, description)
	if created {
		s.groups = catalog.Groups()
		s.touch(colGroups)
		s.reconcile()
	}
	return g, nil
}

// RenameGroup renames a group and its workers' references
func (s *Session) RenameGroup(id, name string) error {
	g, w, err := groups.Rename(s.groups, s.workers, id, name)
	if err != nil {
		return err
	}
	s.groups, s.workers = g, w
	s.touch(colGroups, colWorkers)
	s.reconcile()
	return nil
}

// RemoveGroup deletes a group no worker uses
func (s *Session) RemoveGroup(id string) error {
	g, err := groups.Remove(s.groups, s.workers, id)
	if err != nil {
		return err
	}
	s.groups = g
	s.touch(colGroups)
	return nil
}

// WorkerIndex returns the position of a worker id, or -1
func (s *Session) WorkerIndex(id string) int {
	for i, w := range s.workers {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// AddWorker appends a worker with a fresh id. A group name the catalog
// lacks is added to it.
func (s *Session) AddWorker(w model.Worker) model.Worker {
	w.ID = model.NewID()
	w.Schedule = w.Schedule.Clone()
	s.attachGroup(&w)
	s.workers = append(s.Workers(), w)
	s.touch(colWorkers)
	s.reconcile()
	return s.workers[len(s.workers)-1]
}

// UpdateWorker replaces a worker's fields, keeping its id
func (s *Session) UpdateWorker(id string, w model.Worker) (model.Worker, error) {
	idx := s.WorkerIndex(id)
	if idx < 0 {
		return model.Worker{}, ErrWorkerNotFound
	}
	w.ID = id
	w.Schedule = w.Schedule.Clone()
	s.attachGroup(&w)
	out := s.Workers()
	out[idx] = w
	s.workers = out
	s.touch(colWorkers)
	s.reconcile()
	return s.workers[idx], nil
}

func (s *Session) attachGroup(w *model.Worker) {
	if strings.TrimSpace(w.Group) == "" {
		if w.GroupID != "" {
			for _, g := range s.groups {
				if g.ID == w.GroupID {
					w.Group = g.Name
					return
				}
			}
		}
		w.GroupID = ""
		return
	}
	catalog := groups.NewCatalog(s.groups)
	g, created := catalog.EnsureByName(w.Group)
	w.Group = g.Name
	w.GroupID = g.ID
	if created {
		s.groups = catalog.Groups()
		s.touch(colGroups)
	}
}

// RemoveWorker deletes the worker at idx. Selected positions above it shift
// down and its assignments are dropped.
func (s *Session) RemoveWorker(idx int) error {
	if idx < 0 || idx >= len(s.workers) {
		return ErrWorkerNotFound
	}
	out := make([]model.Worker, 0, len(s.workers)-1)
	out = append(out, s.workers[:idx]...)
	s.workers = append(out, s.workers[idx+1:]...)
	s.selection = s.selection.AfterRemoval(idx)
	s.touch(colWorkers)

	if len(s.assignments) > 0 {
		pruned := schedule.PruneAssignments(s.assignments, s.workers, s.templates)
		if len(pruned) != len(s.assignments) {
			s.assignments = pruned
			s.touch(colAssignments)
		}
	}
	return nil
}

// PasteWorkers parses clipboard text into workers and applies them with mode
func (s *Session) PasteWorkers(text string, mode paste.Mode) paste.Result {
	return s.ImportRows(paste.ParseRows(text, s.pasteOpts), mode)
}

// ImportRows applies already-split rows, as read from a workbook. Unknown
// group names are added to the catalog. Replacing the roster clears the
// selection and any assignments.
func (s *Session) ImportRows(rows [][]string, mode paste.Mode) paste.Result {
	catalog := groups.NewCatalog(s.groups)
	res := paste.ParseWorkers(rows, catalog)
	if len(res.Workers) == 0 {
		return res
	}
	if len(res.CreatedGroups) > 0 {
		s.groups = catalog.Groups()
		s.touch(colGroups)
	}

	s.workers = paste.Merge(s.workers, res.Workers, mode)
	s.touch(colWorkers)
	if mode != paste.ModeAppend {
		s.selection = schedule.NewSelection()
		if len(s.assignments) > 0 {
			s.assignments = nil
			s.touch(colAssignments)
		}
	}
	s.reconcile()
	return res
}

// PasteOptions returns the row parsing options of the session
func (s *Session) PasteOptions() paste.Options { return s.pasteOpts }

func (s *Session) replaceWorkers(out []model.Worker, err error) error {
	if err != nil {
		return err
	}
	s.workers = out
	s.touch(colWorkers)
	return nil
}

// SetWorkerDay replaces one day of one worker's week
func (s *Session) SetWorkerDay(idx int, d model.Weekday, t model.ShiftTriple) error {
	return s.replaceWorkers(schedule.SetDay(s.workers, idx, d, t))
}

// SelectWorkerBaseShift fills a worker's day from a base shift; "" clears it
func (s *Session) SelectWorkerBaseShift(idx int, d model.Weekday, shiftID string) error {
	t, err := schedule.BaseShiftTriple(shiftID, s.baseShifts)
	if err != nil {
		return err
	}
	return s.SetWorkerDay(idx, d, t)
}

// WorkerDayBaseShift returns the base shift id matching a worker's day, or ""
func (s *Session) WorkerDayBaseShift(idx int, d model.Weekday) string {
	if idx < 0 || idx >= len(s.workers) {
		return ""
	}
	return schedule.MatchBaseShift(s.workers[idx].Schedule.Day(d), s.baseShifts)
}

// SetGeneralDay replaces one day of the general template
func (s *Session) SetGeneralDay(d model.Weekday, t model.ShiftTriple) {
	s.general.Set(d, t)
	s.touch(colGeneral)
}

// SelectGeneralBaseShift fills a day of the general template from a base shift
func (s *Session) SelectGeneralBaseShift(d model.Weekday, shiftID string) error {
	t, err := schedule.BaseShiftTriple(shiftID, s.baseShifts)
	if err != nil {
		return err
	}
	s.SetGeneralDay(d, t)
	return nil
}

// AddBaseShift creates a base shift; name, entry and exit are required
func (s *Session) AddBaseShift(name, entrada, colacion, salida string) (model.BaseShift, error) {
	b, err := schedule.NewBaseShift(name, entrada, colacion, salida)
	if err != nil {
		return model.BaseShift{}, err
	}
	s.baseShifts = append(s.BaseShifts(), b)
	s.touch(colBaseShifts)
	return b, nil
}

// RemoveBaseShift deletes a base shift and clears template days that used it.
// Worker weeks keep their copied times.
func (s *Session) RemoveBaseShift(id string) error {
	out := make([]model.BaseShift, 0, len(s.baseShifts))
	for _, b := range s.baseShifts {
		if b.ID != id {
			out = append(out, b)
		}
	}
	if len(out) == len(s.baseShifts) {
		return schedule.ErrBaseShiftNotFound
	}
	s.baseShifts = out
	s.touch(colBaseShifts)

	templates := s.Templates()
	changed := false
	for i := range templates {
		for _, d := range model.Weekdays {
			if templates[i].Week[d] == id {
				templates[i].Week[d] = ""
				changed = true
			}
		}
	}
	if changed {
		s.templates = templates
		s.touch(colTemplates)
	}
	return nil
}

// ToggleSelection flips the selection of the worker at idx
func (s *Session) ToggleSelection(idx int) error {
	if idx < 0 || idx >= len(s.workers) {
		return ErrWorkerNotFound
	}
	s.selection.Toggle(idx)
	return nil
}

// SetSelection replaces the selection, ignoring positions outside the roster
func (s *Session) SetSelection(indices []int) {
	s.selection = schedule.NewSelection(indices...).Within(len(s.workers))
}

// SelectAll selects every worker
func (s *Session) SelectAll() {
	s.selection = schedule.NewSelection()
	for i := range s.workers {
		s.selection[i] = struct{}{}
	}
}

// ClearSelection empties the selection
func (s *Session) ClearSelection() {
	s.selection = schedule.NewSelection()
}

// CopyFromPrevious copies the previous worker's week onto the worker at idx
func (s *Session) CopyFromPrevious(idx int) error {
	return s.replaceWorkers(schedule.CopyFromPrevious(s.workers, idx))
}

// CopyMondayToWeek copies a worker's Monday to the rest of its week
func (s *Session) CopyMondayToWeek(idx int) error {
	return s.replaceWorkers(schedule.CopyMondayToWeek(s.workers, idx))
}

// CopyToSelected copies the week of the worker at src to the selected workers
func (s *Session) CopyToSelected(src int) error {
	return s.replaceWorkers(schedule.CopyToSelected(s.workers, src, s.selection))
}

// ApplyGeneralToSelected overwrites the selected workers' weeks with the general template
func (s *Session) ApplyGeneralToSelected() error {
	return s.replaceWorkers(schedule.ApplyTemplateToSelected(s.workers, s.general, s.selection))
}

// AddTemplate creates an empty named schedule template
func (s *Session) AddTemplate(name string) (model.ScheduleTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ScheduleTemplate{}, ErrBlankTemplateName
	}
	t := model.ScheduleTemplate{ID: model.NewID(), Name: name}
	s.templates = append(s.Templates(), t)
	s.touch(colTemplates)
	return t, nil
}

func (s *Session) templateIndex(id string) int {
	for i, t := range s.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SetTemplateDay points one day of a template at a base shift; "" makes it a rest day
func (s *Session) SetTemplateDay(templateID string, d model.Weekday, shiftID string) error {
	idx := s.templateIndex(templateID)
	if idx < 0 {
		return ErrTemplateNotFound
	}
	if _, err := schedule.BaseShiftTriple(shiftID, s.baseShifts); err != nil {
		return err
	}
	templates := s.Templates()
	templates[idx].Week[d] = shiftID
	s.templates = templates
	s.touch(colTemplates)
	return nil
}

// RemoveTemplate deletes a template and the assignments that reference it
func (s *Session) RemoveTemplate(id string) error {
	idx := s.templateIndex(id)
	if idx < 0 {
		return ErrTemplateNotFound
	}
	templates := make([]model.ScheduleTemplate, 0, len(s.templates)-1)
	templates = append(templates, s.templates[:idx]...)
	s.templates = append(templates, s.templates[idx+1:]...)
	s.touch(colTemplates)

	pruned := schedule.PruneAssignments(s.assignments, s.workers, s.templates)
	if len(pruned) != len(s.assignments) {
		s.assignments = pruned
		s.touch(colAssignments)
	}
	return nil
}

// AssignTemplate gives every listed worker the template for the period
func (s *Session) AssignTemplate(templateID, from, to string, workerIDs []string) error {
	if strings.TrimSpace(templateID) != "" && s.templateIndex(templateID) < 0 {
		return ErrTemplateNotFound
	}
	for _, id := range workerIDs {
		if s.WorkerIndex(id) < 0 {
			return ErrWorkerNotFound
		}
	}
	out, err := schedule.AssignTemplate(s.assignments, templateID, from, to, workerIDs)
	if err != nil {
		return err
	}
	s.assignments = out
	s.touch(colAssignments)
	return nil
}

// RemoveAssignment deletes one assignment
func (s *Session) RemoveAssignment(id string) error {
	out := make([]model.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if a.ID != id {
			out = append(out, a)
		}
	}
	if len(out) == len(s.assignments) {
		return ErrAssignmentNotFound
	}
	s.assignments = out
	s.touch(colAssignments)
	return nil
}
