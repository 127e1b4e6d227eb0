package update

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mareas/internal/form"
	"github.com/sandeepkv93/mareas/internal/model"
	"github.com/sandeepkv93/mareas/internal/state"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Species: []model.Species{
			{ID: "1", CommonName: "Anchoita", ScientificName: "Engraulis anchoita"},
			{ID: "2", CommonName: "Caballa", ScientificName: "Scomber colias"},
			{ID: "3", CommonName: "Merluza", ScientificName: "Merluccius hubbsi"},
		},
		Observers: []model.Observer{
			{ID: "1", Surname: "Perez", GivenName: "Juan"},
			{ID: "2", Surname: "Rossi", GivenName: "Ana"},
		},
		Vessels: []model.Vessel{
			{Name: "Barco 1", Code: "123"},
		},
	}
}

func newTestModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	store := state.NewStore(filepath.Join(t.TempDir(), "config.json"), nil)
	clock := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	mgr := form.NewManager(store, nil, form.WithClock(clock))
	return NewModel(mgr, testCatalog()), store
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, typed(string(r)))
	}
	return m
}

func focusOn(t *testing.T, m Model, s Section) Model {
	t.Helper()
	for i := 0; m.Focus != s && i < int(sectionCount); i++ {
		m = press(t, m, keyOf(tea.KeyTab))
	}
	if m.Focus != s {
		t.Fatalf("could not focus %s", s)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Focus != SectionNumber {
		t.Fatalf("expected focus on number, got %s", m.Focus)
	}
	if got := m.yearInput.Value(); got != "2026" {
		t.Fatalf("expected year input 2026, got %q", got)
	}
	if m.Form.ActionsEnabled() {
		t.Fatal("actions must start disabled")
	}
}

func TestTabCyclesSections(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyTab))
	if m.Focus != SectionYear {
		t.Fatalf("expected year, got %s", m.Focus)
	}
	m = press(t, m, keyOf(tea.KeyShiftTab), keyOf(tea.KeyShiftTab))
	if m.Focus != SectionActions {
		t.Fatalf("expected wrap to actions, got %s", m.Focus)
	}
}

func TestTypingTripNumberTruncatesAndPersists(t *testing.T) {
	m, store := newTestModel(t)
	m = typeText(t, m, "7890")
	if got := m.Form.TripNumber(); got != "789" {
		t.Fatalf("expected 789, got %q", got)
	}
	doc := store.Load()
	if doc == nil || doc.TripNumber != "789" {
		t.Fatalf("expected autosaved trip number, got %+v", doc)
	}
}

func TestQuitKeysInsideTextInputType(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionSpeciesSearch)
	m = press(t, m, typed("q"))
	if m.Quitting {
		t.Fatal("q must not quit inside a text input")
	}
	if m.speciesInput.Value() != "q" {
		t.Fatalf("expected q typed into search, got %q", m.speciesInput.Value())
	}
}

func TestQuitOutsideTextInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionObserver)
	updated, cmd := m.Update(typed("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected q to quit in the observer picker")
	}

	m, _ = newTestModel(t)
	updated, cmd = m.Update(keyOf(tea.KeyCtrlC))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected ctrl+c to quit from a text input")
	}
}

func TestObserverPickerCyclesThroughNone(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionObserver)

	m = press(t, m, keyOf(tea.KeyRight))
	if o, ok := m.Form.Observer(); !ok || o.ID != "1" {
		t.Fatalf("expected first observer, got %+v %v", o, ok)
	}
	m = press(t, m, keyOf(tea.KeyLeft))
	if _, ok := m.Form.Observer(); ok {
		t.Fatal("expected none after moving back")
	}
	m = press(t, m, keyOf(tea.KeyLeft))
	if o, _ := m.Form.Observer(); o.ID != "2" {
		t.Fatalf("expected wrap to last observer, got %+v", o)
	}
}

func addStage(t *testing.T, m Model, start, end string) Model {
	t.Helper()
	m = focusOn(t, m, SectionStageStart)
	m = typeText(t, m, start)
	m = press(t, m, keyOf(tea.KeyEnter))
	m = typeText(t, m, end)
	return press(t, m, keyOf(tea.KeyEnter))
}

func TestStageEntryAddsAndClassifiesErrors(t *testing.T) {
	m, _ := newTestModel(t)

	m = addStage(t, m, "20/10/2025", "25/10/2025")
	if got := len(m.Form.Stages()); got != 1 {
		t.Fatalf("expected 1 stage, got %d (status %q)", got, m.Status.Text)
	}

	m = addStage(t, m, "24/10/2025", "30/10/2025")
	if !m.Status.IsError || m.Status.Text != "la etapa se superpone con 20/10/2025 - 25/10/2025" {
		t.Fatalf("unexpected overlap status: %+v", m.Status)
	}

	m = focusOn(t, m, SectionStageStart)
	m.startInput.SetValue("")
	m.endInput.SetValue("")
	m = addStage(t, m, "05/11/2025", "01/11/2025")
	if m.Status.Text != "la fecha final es anterior a la inicial" {
		t.Fatalf("unexpected range status: %+v", m.Status)
	}
	if got := len(m.Form.Stages()); got != 1 {
		t.Fatalf("failed adds must not change stages, got %d", got)
	}
}

func TestStageListRemove(t *testing.T) {
	m, _ := newTestModel(t)
	m = addStage(t, m, "2025-10-20", "2025-10-25")
	m = focusOn(t, m, SectionStages)
	m = press(t, m, typed("x"))
	if got := len(m.Form.Stages()); got != 0 {
		t.Fatalf("expected stage removed, got %d", got)
	}
}

func TestSpeciesSearchAddsAndRejectsDuplicate(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionSpeciesSearch)
	m = typeText(t, m, "merl")
	m = press(t, m, keyOf(tea.KeyEnter))
	targets := m.Form.TargetSpecies()
	if len(targets) != 1 || targets[0].ID != "3" {
		t.Fatalf("expected merluza added, got %+v", targets)
	}
	if m.speciesInput.Value() != "" {
		t.Fatalf("expected search cleared, got %q", m.speciesInput.Value())
	}

	m = typeText(t, m, "merl")
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Status.Text != "la especie ya está en la lista" {
		t.Fatalf("unexpected duplicate status: %+v", m.Status)
	}
}

func TestSpeciesSearchArrowPicksMatch(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionSpeciesSearch)
	m = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	targets := m.Form.TargetSpecies()
	if len(targets) != 1 || targets[0].ID != "2" {
		t.Fatalf("expected second match added, got %+v", targets)
	}
}

func TestToggleDisplayModeKeepsTargets(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionSpeciesSearch)
	m = press(t, m, keyOf(tea.KeyEnter))
	m = press(t, m, keyOf(tea.KeyCtrlT))
	if m.Form.DisplayMode() != model.DisplayScientificFirst {
		t.Fatalf("expected scientific first, got %s", m.Form.DisplayMode())
	}
	if !strings.Contains(m.View(), "Engraulis anchoita (Anchoita)") {
		t.Fatal("expected target rendered scientific first")
	}
}

func completeForm(t *testing.T, m Model) Model {
	t.Helper()
	m = focusOn(t, m, SectionNumber)
	m = typeText(t, m, "789")
	m = focusOn(t, m, SectionObserver)
	m = press(t, m, keyOf(tea.KeyRight))
	m = focusOn(t, m, SectionVessel)
	m = press(t, m, keyOf(tea.KeyRight))
	m = addStage(t, m, "01/03/2024", "05/03/2024")
	m = focusOn(t, m, SectionSpeciesSearch)
	return press(t, m, keyOf(tea.KeyEnter))
}

func TestActionsGateOnCompleteness(t *testing.T) {
	m, _ := newTestModel(t)
	m = focusOn(t, m, SectionActions)
	m = press(t, m, keyOf(tea.KeyEnter))
	if !m.Status.IsError || !errors.Is(m.LastError, form.ErrActionsDisabled) {
		t.Fatalf("expected disabled error, got %+v / %v", m.Status, m.LastError)
	}
	if !strings.Contains(m.View(), "[ ] Cortar bases") {
		t.Fatal("expected disabled action box in view")
	}

	m = completeForm(t, m)
	if !m.Form.ActionsEnabled() {
		t.Fatalf("expected complete form, state %+v", m.Form.State())
	}
	m = focusOn(t, m, SectionActions)
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Status.IsError || m.Status.Text != "Cortar bases: proceso no disponible todavía" {
		t.Fatalf("unexpected action status: %+v", m.Status)
	}
	if !strings.Contains(m.View(), "[x] Cortar bases") {
		t.Fatal("expected enabled action box in view")
	}
}

func TestResetClearsEverything(t *testing.T) {
	m, store := newTestModel(t)
	m = completeForm(t, m)
	m = press(t, m, keyOf(tea.KeyCtrlR))

	st := m.Form.State()
	if st.TripNumber != "" || st.Observer != nil || len(st.Stages) != 0 || len(st.Species) != 0 {
		t.Fatalf("expected cleared state, got %+v", st)
	}
	if m.numberInput.Value() != "" || m.observerIdx != 0 {
		t.Fatalf("widgets not cleared: number=%q observer=%d", m.numberInput.Value(), m.observerIdx)
	}
	doc := store.Load()
	if doc == nil || doc.TripNumber != "" || doc.ObserverID != nil {
		t.Fatalf("expected cleared document persisted, got %+v", doc)
	}
}

func TestPaletteExecutesCommands(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyCtrlP))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = typeText(t, m, "vessel 123")
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	if v, ok := m.Form.Vessel(); !ok || v.Name != "Barco 1" {
		t.Fatalf("expected vessel selected, got %+v %v", v, ok)
	}
	if m.vesselIdx != 1 {
		t.Fatalf("expected picker synced, got %d", m.vesselIdx)
	}
}

func TestPaletteVesselResolvesByName(t *testing.T) {
	cat := testCatalog()
	cat.Vessels = []model.Vessel{{Name: "Alfa", Code: "123"}, {Name: "Bravo", Code: "123"}}
	m := NewModel(form.NewManager(nil, nil), cat)
	m = press(t, m, keyOf(tea.KeyCtrlP))
	m = typeText(t, m, "vessel Bravo")
	m = press(t, m, keyOf(tea.KeyEnter))
	if v, ok := m.Form.Vessel(); !ok || v.Name != "Bravo" {
		t.Fatalf("expected Bravo selected, got %+v %v", v, ok)
	}
	if m.vesselIdx != 2 {
		t.Fatalf("expected picker on Bravo, got %d", m.vesselIdx)
	}
}

func TestPaletteReportsErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyCtrlP))
	m = typeText(t, m, "teleport")
	m = press(t, m, keyOf(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, keyOf(tea.KeyCtrlP))
	m = typeText(t, m, "stage 2024-03-05 2024-03-01")
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Status.Text != "la fecha final es anterior a la inicial" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyCtrlP), keyOf(tea.KeyEsc))
	if m.Palette.Active || m.Quitting {
		t.Fatalf("expected palette closed without quitting, got %+v quitting=%v", m.Palette, m.Quitting)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyOf(tea.KeyF1))
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(m.View(), "Ayuda") {
		t.Fatal("expected help rendered in view")
	}
	m = press(t, m, keyOf(tea.KeyF1))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "listo"})
	next := updated.(Model)
	if next.Status.Text != "listo" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestRestoredFormSyncsWidgets(t *testing.T) {
	cat := testCatalog()
	mgr := form.NewManager(nil, nil)
	mgr.Restore(&state.Document{
		TripNumber: "42",
		TripYear:   "2024",
		ObserverID: state.StringRef("2"),
		VesselKey:  state.StringRef("123"),
	}, cat)
	m := NewModel(mgr, cat)
	if m.numberInput.Value() != "42" || m.yearInput.Value() != "2024" {
		t.Fatalf("inputs not synced: %q %q", m.numberInput.Value(), m.yearInput.Value())
	}
	if m.observerIdx != 2 || m.vesselIdx != 1 {
		t.Fatalf("pickers not synced: observer=%d vessel=%d", m.observerIdx, m.vesselIdx)
	}
}
