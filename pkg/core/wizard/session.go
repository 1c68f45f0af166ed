package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/groups"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
)

var (
	// ErrStepBlocked is returned when moving forward past a step with errors
	ErrStepBlocked = errors.New("no puedes avanzar: revisa los errores del paso actual")
	// ErrUnknownStep is returned for a step id not in the session's variant
	ErrUnknownStep = errors.New("paso desconocido")
	// ErrWorkerNotFound is returned for an unknown worker id or position
	ErrWorkerNotFound = errors.New("trabajador no encontrado")
	// ErrTemplateNotFound is returned for an unknown schedule template id
	ErrTemplateNotFound = errors.New("planificación no encontrada")
	// ErrAssignmentNotFound is returned for an unknown assignment id
	ErrAssignmentNotFound = errors.New("asignación no encontrada")
	// ErrBlankTemplateName is returned when creating a template without a name
	ErrBlankTemplateName = errors.New("el nombre de la planificación es obligatorio")
)

// Options configures a new session
type Options struct {
	Variant    Variant
	Paste      paste.Options
	SeedGroups []string
	Demo       bool
}

type versionVector [numCollections]uint64

type memoEntry struct {
	seen   versionVector
	result validation.ErrorSet
}

// Session is the mutable state of one wizard run. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	id        string
	variant   Variant
	steps     []Step
	current   int
	pasteOpts paste.Options

	admin       model.Admin
	company     model.Company
	groups      []model.Group
	workers     []model.Worker
	baseShifts  []model.BaseShift
	general     model.WeekSchedule
	templates   []model.ScheduleTemplate
	assignments []model.Assignment
	selection   schedule.Selection

	versions    versionVector
	memo        map[ruleName]memoEntry
	evaluations int
}

// New starts an empty session
func New(opts Options) *Session {
	s := &Session{
		id:        model.NewID(),
		variant:   ParseVariant(string(opts.Variant)),
		pasteOpts: opts.Paste,
		selection: schedule.NewSelection(),
		memo:      make(map[ruleName]memoEntry),
	}
	s.steps = Steps(s.variant)

	seed := opts.SeedGroups
	if opts.Demo {
		s.admin = DemoAdmin
		s.company = DemoCompany
		seed = append(append([]string{}, DemoGroups...), seed...)
	}
	s.groups = groups.Seed(seed)
	return s
}

// FromPayload rebuilds a session from an exported document. Records without
// ids get fresh ones and group spellings are canonicalized.
func FromPayload(p model.Payload, opts Options) *Session {
	s := New(Options{Variant: opts.Variant, Paste: opts.Paste})
	s.admin = p.Admin
	s.company = p.Company
	s.general = p.GeneralSchedule.Clone()

	s.groups = append([]model.Group(nil), p.Groups...)
	for i := range s.groups {
		if s.groups[i].ID == "" {
			s.groups[i].ID = model.NewID()
		}
	}
	s.workers = make([]model.Worker, len(p.Workers))
	for i, w := range p.Workers {
		if w.ID == "" {
			w.ID = model.NewID()
		}
		w.Schedule = w.Schedule.Clone()
		s.workers[i] = w
	}
	s.baseShifts = append([]model.BaseShift(nil), p.BaseShifts...)
	s.templates = append([]model.ScheduleTemplate(nil), p.Templates...)
	s.assignments = append([]model.Assignment(nil), p.Assignments...)

	// Workers naming a group the catalog lacks get one, as a paste would
	catalog := groups.NewCatalog(s.groups)
	for i, w := range s.workers {
		if strings.TrimSpace(w.Group) == "" {
			continue
		}
		g, _ := catalog.EnsureByName(w.Group)
		if w.GroupID == "" {
			s.workers[i].GroupID = g.ID
		}
	}
	s.groups = catalog.Groups()
	s.reconcile()
	s.touch(colAdmin, colCompany, colGroups, colWorkers, colBaseShifts, colGeneral, colTemplates, colAssignments)
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Variant returns the step sequence in use
func (s *Session) Variant() Variant { return s.variant }

// Steps returns the ordered steps of the session
func (s *Session) Steps() []Step { return append([]Step(nil), s.steps...) }

// CurrentIndex returns the position of the current step
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the current step
func (s *Session) Current() Step { return s.steps[s.current] }

// Evaluations counts rule-set evaluations performed so far
func (s *Session) Evaluations() int { return s.evaluations }

func (s *Session) touch(cols ...collection) {
	for _, c := range cols {
		s.versions[c]++
	}
}

// evaluate returns a rule set's errors, recomputing only when a collection
// it depends on has changed since the last call.
func (s *Session) evaluate(name ruleName) validation.ErrorSet {
	r := rules[name]
	var key versionVector
	for _, c := range r.deps {
		key[c] = s.versions[c]
	}
	if m, ok := s.memo[name]; ok && m.seen == key {
		return m.result
	}
	result := r.eval(s)
	s.evaluations++
	s.memo[name] = memoEntry{seen: key, result: result}
	return result
}

func (s *Session) stepIndex(id StepID) int {
	for i, st := range s.steps {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// Errors returns the errors blocking a step. The result is shared with the
// cache and must not be modified.
func (s *Session) Errors(id StepID) (validation.ErrorSet, error) {
	idx := s.stepIndex(id)
	if idx < 0 {
		return validation.ErrorSet{}, fmt.Errorf("%w: %s", ErrUnknownStep, id)
	}
	return s.stepErrors(idx), nil
}

func (s *Session) stepErrors(idx int) validation.ErrorSet {
	names := s.steps[idx].Rules
	if len(names) == 1 {
		return s.evaluate(names[0])
	}
	sets := make([]validation.ErrorSet, 0, len(names))
	for _, n := range names {
		sets = append(sets, s.evaluate(n))
	}
	return validation.Merge(sets...)
}

// AllErrors merges the errors of every step in order
func (s *Session) AllErrors() validation.ErrorSet {
	sets := make([]validation.ErrorSet, 0, len(s.steps))
	for i := range s.steps {
		sets = append(sets, s.stepErrors(i))
	}
	return validation.Merge(sets...)
}

// FirstBlocked returns the first step whose rules currently fail
func (s *Session) FirstBlocked() (Step, bool) {
	for i, st := range s.steps {
		if !s.stepErrors(i).Empty() {
			return st, true
		}
	}
	return Step{}, false
}

// CanNext reports whether the current step may be passed. The last step
// can never advance.
func (s *Session) CanNext() bool {
	if s.current >= len(s.steps)-1 {
		return false
	}
	return s.stepErrors(s.current).Empty()
}

// Next moves to the following step when the current one has no errors
func (s *Session) Next() error {
	if s.current >= len(s.steps)-1 {
		return nil
	}
	if !s.stepErrors(s.current).Empty() {
		return fmt.Errorf("%w (%s)", ErrStepBlocked, s.steps[s.current].Label)
	}
	s.current++
	return nil
}

// Prev moves back one step; it never validates
func (s *Session) Prev() {
	if s.current > 0 {
		s.current--
	}
}

// GoTo jumps to a step. Moving back is always allowed; moving forward
// requires every step in between to pass.
func (s *Session) GoTo(id StepID) error {
	target := s.stepIndex(id)
	if target < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownStep, id)
	}
	for s.current < target {
		if err := s.Next(); err != nil {
			return err
		}
	}
	s.current = target
	return nil
}

// reconcile folds duplicate groups and rewrites worker references. It runs
// after every mutation of groups or workers.
func (s *Session) reconcile() {
	res := groups.Canonicalize(s.groups, s.workers)
	if res.GroupsChanged {
		s.groups = res.Groups
		s.touch(colGroups)
	}
	if res.WorkersChanged {
		s.workers = res.Workers
		s.touch(colWorkers)
	}
}
