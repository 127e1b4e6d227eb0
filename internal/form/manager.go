// Package form owns the trip being edited. It holds the scalar fields, the
// ordered stage and species sets, and the completeness rule that gates the
// downstream actions.
//
// A Manager is driven from the terminal UI's single event loop and is not
// safe for concurrent use.
package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/mareas/internal/logging"
	"github.com/sandeepkv93/mareas/internal/model"
	"github.com/sandeepkv93/mareas/internal/state"
)

const (
	MaxTripNumberLen = 3
	MaxTripYearLen   = 4
)

type Field string

const (
	FieldTripNumber Field = "trip_number"
	FieldTripYear   Field = "trip_year"
)

// Persister receives a snapshot after every mutation.
type Persister interface {
	Save(state.Document) error
}

// TripState is a read-only copy of the form for rendering.
type TripState struct {
	TripNumber  string
	TripYear    string
	Observer    *model.Observer
	Vessel      *model.Vessel
	Stages      []model.Stage
	Species     []model.Species
	DisplayMode model.DisplayMode
	Complete    bool
}

type Manager struct {
	tripNumber  string
	tripYear    string
	observer    *model.Observer
	vessel      *model.Vessel
	stages      []model.Stage
	species     []model.Species
	displayMode model.DisplayMode
	complete    bool

	actions    []Action
	persister  Persister
	persistErr error
	now        func() time.Time
	logger     *log.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithDisplayMode(mode model.DisplayMode) Option {
	return func(m *Manager) {
		if mode.IsValid() {
			m.displayMode = mode
		}
	}
}

func WithActions(actions []Action) Option {
	return func(m *Manager) {
		m.actions = slices.Clone(actions)
	}
}

// NewManager returns a manager in the reset state. A nil persister disables
// autosave.
func NewManager(persister Persister, logger *log.Logger, opts ...Option) *Manager {
	m := &Manager{
		displayMode: model.DisplayCommonFirst,
		actions:     DefaultActions(),
		persister:   persister,
		now:         time.Now,
		logger:      logging.OrDiscard(logger).WithPrefix("form"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.clear()
	m.evaluate()
	return m
}

func (m *Manager) State() TripState {
	return TripState{
		TripNumber:  m.tripNumber,
		TripYear:    m.tripYear,
		Observer:    cloneRef(m.observer),
		Vessel:      cloneRef(m.vessel),
		Stages:      slices.Clone(m.stages),
		Species:     slices.Clone(m.species),
		DisplayMode: m.displayMode,
		Complete:    m.complete,
	}
}

func (m *Manager) TripNumber() string { return m.tripNumber }
func (m *Manager) TripYear() string   { return m.tripYear }

func (m *Manager) Observer() (model.Observer, bool) { return deref(m.observer) }
func (m *Manager) Vessel() (model.Vessel, bool)     { return deref(m.vessel) }

func (m *Manager) Stages() []model.Stage          { return slices.Clone(m.stages) }
func (m *Manager) TargetSpecies() []model.Species { return slices.Clone(m.species) }
func (m *Manager) DisplayMode() model.DisplayMode { return m.displayMode }
func (m *Manager) Actions() []Action              { return slices.Clone(m.actions) }
func (m *Manager) LastPersistError() error        { return m.persistErr }

func (m *Manager) SetField(field Field, value string) error {
	switch field {
	case FieldTripNumber:
		m.SetTripNumber(value)
	case FieldTripYear:
		m.SetTripYear(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetTripNumber stores value cut to MaxTripNumberLen runes.
func (m *Manager) SetTripNumber(value string) {
	m.tripNumber = truncate(value, MaxTripNumberLen)
	m.changed()
}

// SetTripYear stores value cut to MaxTripYearLen runes.
func (m *Manager) SetTripYear(value string) {
	m.tripYear = truncate(value, MaxTripYearLen)
	m.changed()
}

// SelectObserver replaces the selection; nil clears it.
func (m *Manager) SelectObserver(o *model.Observer) {
	m.observer = cloneRef(o)
	m.changed()
}

// SelectVessel replaces the selection; nil clears it.
func (m *Manager) SelectVessel(v *model.Vessel) {
	m.vessel = cloneRef(v)
	m.changed()
}

// AddStage inserts [start, end] keeping stages ordered by start date.
// It fails with ErrInvalidRange or an *OverlapError and leaves state untouched.
func (m *Manager) AddStage(start, end time.Time) error {
	if err := m.placeStage(model.NewStage(start, end)); err != nil {
		return err
	}
	m.changed()
	return nil
}

func (m *Manager) placeStage(stage model.Stage) error {
	if !stage.IsValid() {
		return ErrInvalidRange
	}
	for _, existing := range m.stages {
		if existing.Overlaps(stage) {
			return &OverlapError{Existing: existing}
		}
	}
	m.stages = insertOrdered(m.stages, stage, func(existing, item model.Stage) bool {
		return existing.Start.After(item.Start)
	})
	return nil
}

// RemoveStage reports whether a stage with the same bounds was removed.
func (m *Manager) RemoveStage(stage model.Stage) bool {
	target := model.NewStage(stage.Start, stage.End)
	idx := slices.IndexFunc(m.stages, target.Equal)
	if idx < 0 {
		return false
	}
	m.stages = slices.Delete(m.stages, idx, idx+1)
	m.changed()
	return true
}

// AddTargetSpecies inserts s ordered by display name under the current mode.
// A species already present by ID fails with a *DuplicateError.
func (m *Manager) AddTargetSpecies(s model.Species) error {
	if m.hasSpecies(s.ID) {
		return &DuplicateError{ID: s.ID}
	}
	mode := m.displayMode
	m.species = insertOrdered(m.species, s, func(existing, item model.Species) bool {
		return existing.DisplayName(mode) >= item.DisplayName(mode)
	})
	m.changed()
	return nil
}

func (m *Manager) RemoveTargetSpecies(id string) bool {
	idx := slices.IndexFunc(m.species, func(s model.Species) bool { return s.ID == id })
	if idx < 0 {
		return false
	}
	m.species = slices.Delete(m.species, idx, idx+1)
	m.changed()
	return true
}

// ToggleSpeciesDisplayMode flips the presentation order. Species already
// selected keep their positions.
func (m *Manager) ToggleSpeciesDisplayMode() model.DisplayMode {
	m.displayMode = m.displayMode.Toggle()
	return m.displayMode
}

// ResetAll returns every field to its default and persists the cleared state.
func (m *Manager) ResetAll() {
	m.clear()
	m.changed()
}

// IsComplete reports whether every required field is filled.
func (m *Manager) IsComplete() bool {
	return m.tripNumber != "" &&
		m.tripYear != "" &&
		m.observer != nil &&
		m.vessel != nil &&
		len(m.stages) > 0 &&
		len(m.species) > 0
}

func (m *Manager) ActionsEnabled() bool { return m.complete }

// RunAction checks the gate for the named action. The processes themselves
// are not available in this tool yet.
func (m *Manager) RunAction(id string) error {
	idx := slices.IndexFunc(m.actions, func(a Action) bool { return a.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	if !m.complete {
		return ErrActionsDisabled
	}
	m.logger.Info("action requested", "action", id, "trip", m.tripNumber, "year", m.tripYear)
	return fmt.Errorf("%w: %s", ErrActionNotImplemented, m.actions[idx].Label)
}

func (m *Manager) Snapshot() state.Document {
	doc := state.Document{
		TripNumber: m.tripNumber,
		TripYear:   m.tripYear,
		Stages:     make([]state.StageDocument, 0, len(m.stages)),
		SpeciesIDs: make([]string, 0, len(m.species)),
	}
	if m.observer != nil {
		doc.ObserverID = state.StringRef(m.observer.ID)
	}
	if m.vessel != nil {
		doc.VesselKey = state.StringRef(m.vessel.Name)
	}
	for _, s := range m.stages {
		doc.Stages = append(doc.Stages, state.StageDocument{
			Start: s.Start.Format(model.ISODateLayout),
			End:   s.End.Format(model.ISODateLayout),
		})
	}
	for _, s := range m.species {
		doc.SpeciesIDs = append(doc.SpeciesIDs, s.ID)
	}
	return doc
}

// Restore replaces the form with doc, resolving references against cat.
// Unknown references and invalid stages are skipped with a warning. Restore
// does not persist.
func (m *Manager) Restore(doc *state.Document, cat model.Catalog) {
	m.clear()
	if doc == nil {
		m.evaluate()
		return
	}
	m.tripNumber = truncate(doc.TripNumber, MaxTripNumberLen)
	if year := truncate(strings.TrimSpace(doc.TripYear), MaxTripYearLen); year != "" {
		m.tripYear = year
	}

	if id := state.Deref(doc.ObserverID); id != "" {
		if o, ok := cat.FindObserver(id); ok {
			m.observer = &o
		} else {
			m.logger.Warn("saved observer not in catalog", "id", id)
		}
	}
	if key := state.Deref(doc.VesselKey); key != "" {
		if v, ok := cat.FindVessel(key); ok {
			m.vessel = &v
		} else {
			m.logger.Warn("saved vessel not in catalog", "key", key)
		}
	}

	for _, sd := range doc.Stages {
		m.restoreStage(sd)
	}
	for _, id := range doc.SpeciesIDs {
		s, ok := cat.FindSpecies(id)
		if !ok {
			m.logger.Warn("saved species not in catalog", "id", id)
			continue
		}
		if m.hasSpecies(id) {
			continue
		}
		m.species = append(m.species, s)
	}
	m.evaluate()
}

func (m *Manager) restoreStage(sd state.StageDocument) {
	start, err := model.ParseDate(sd.Start)
	if err != nil {
		m.logger.Warn("skipping saved stage", "start", sd.Start, "end", sd.End, "err", err)
		return
	}
	end, err := model.ParseDate(sd.End)
	if err != nil {
		m.logger.Warn("skipping saved stage", "start", sd.Start, "end", sd.End, "err", err)
		return
	}
	if err := m.placeStage(model.NewStage(start, end)); err != nil {
		m.logger.Warn("skipping saved stage", "start", sd.Start, "end", sd.End, "err", err)
	}
}

func (m *Manager) hasSpecies(id string) bool {
	return slices.ContainsFunc(m.species, func(s model.Species) bool { return s.ID == id })
}

func (m *Manager) clear() {
	m.tripNumber = ""
	m.tripYear = strconv.Itoa(m.now().Year())
	m.observer = nil
	m.vessel = nil
	m.stages = nil
	m.species = nil
}

func (m *Manager) evaluate() {
	m.complete = m.IsComplete()
}

func (m *Manager) changed() {
	m.evaluate()
	if m.persister == nil {
		return
	}
	if err := m.persister.Save(m.Snapshot()); err != nil {
		m.persistErr = err
		m.logger.Error("saving form state failed", "err", err)
		return
	}
	m.persistErr = nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

func cloneRef[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
