// Package update is the terminal shell over the trip form: focus handling,
// key routing and status messages.
package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/mareas/internal/form"
	"github.com/sandeepkv93/mareas/internal/model"
)

type Section int

const (
	SectionNumber Section = iota
	SectionYear
	SectionObserver
	SectionVessel
	SectionStageStart
	SectionStageEnd
	SectionStages
	SectionSpeciesSearch
	SectionTargets
	SectionActions
	sectionCount
)

var sectionNames = [...]string{
	SectionNumber:        "número",
	SectionYear:          "año",
	SectionObserver:      "observador",
	SectionVessel:        "buque",
	SectionStageStart:    "etapa desde",
	SectionStageEnd:      "etapa hasta",
	SectionStages:        "etapas",
	SectionSpeciesSearch: "buscar especie",
	SectionTargets:       "especies objetivo",
	SectionActions:       "procesos",
}

func (s Section) String() string {
	if s < 0 || s >= sectionCount {
		return "?"
	}
	return sectionNames[s]
}

// IsTextInput reports whether keys in s are typed into a text field.
func (s Section) IsTextInput() bool {
	switch s {
	case SectionNumber, SectionYear, SectionStageStart, SectionStageEnd, SectionSpeciesSearch:
		return true
	default:
		return false
	}
}

const maxVisibleMatches = 8

type StatusBar struct {
	Text    string
	IsError bool
}

type PaletteState struct {
	Active bool
	Input  string
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	Form        *form.Manager
	Catalog     model.Catalog
	Focus       Section
	Status      StatusBar
	Palette     PaletteState
	HelpVisible bool
	Quitting    bool
	LastError   error

	observerIdx  int
	vesselIdx    int
	stageCursor  int
	matchCursor  int
	targetCursor int
	actionCursor int

	numberInput  textinput.Model
	yearInput    textinput.Model
	startInput   textinput.Model
	endInput     textinput.Model
	speciesInput textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	keys         keyMap
}

// NewModel builds the shell over mgr. A nil manager gets an in-memory one
// with autosave disabled.
func NewModel(mgr *form.Manager, cat model.Catalog) Model {
	if mgr == nil {
		mgr = form.NewManager(nil, nil)
	}
	m := Model{
		Form:    mgr,
		Catalog: cat,
		keys:    defaultKeyMap(),
	}
	m.initBubbleComponents()
	m.syncFromForm()
	m.focusSection(SectionNumber)
	return m
}

func (m *Model) initBubbleComponents() {
	m.numberInput = newInput("000", form.MaxTripNumberLen, 4)
	m.yearInput = newInput("aaaa", form.MaxTripYearLen, 5)
	m.startInput = newInput("dd/mm/aaaa", 10, 11)
	m.endInput = newInput("dd/mm/aaaa", 10, 11)
	m.speciesInput = newInput("escriba para filtrar", 64, 36)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func newInput(placeholder string, limit, width int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	return in
}

// syncFromForm copies the manager's state into the widgets after a change
// made outside them (palette, reset, restore).
func (m *Model) syncFromForm() {
	st := m.Form.State()
	m.numberInput.SetValue(st.TripNumber)
	m.yearInput.SetValue(st.TripYear)

	m.observerIdx = 0
	if st.Observer != nil {
		for i, o := range m.Catalog.Observers {
			if o.ID == st.Observer.ID {
				m.observerIdx = i + 1
				break
			}
		}
	}
	m.vesselIdx = 0
	if st.Vessel != nil {
		for i, v := range m.Catalog.Vessels {
			if v.Name == st.Vessel.Name {
				m.vesselIdx = i + 1
				break
			}
		}
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.stageCursor = clamp(m.stageCursor, len(m.Form.Stages()))
	m.targetCursor = clamp(m.targetCursor, len(m.Form.TargetSpecies()))
	m.matchCursor = clamp(m.matchCursor, len(m.matches()))
	m.actionCursor = clamp(m.actionCursor, len(m.Form.Actions()))
}

func (m *Model) focusSection(s Section) {
	for _, in := range m.sectionInputs() {
		in.Blur()
	}
	m.Focus = s
	if in := m.inputFor(s); in != nil {
		in.Focus()
	}
}

func (m *Model) sectionInputs() []*textinput.Model {
	return []*textinput.Model{&m.numberInput, &m.yearInput, &m.startInput, &m.endInput, &m.speciesInput}
}

func (m *Model) inputFor(s Section) *textinput.Model {
	switch s {
	case SectionNumber:
		return &m.numberInput
	case SectionYear:
		return &m.yearInput
	case SectionStageStart:
		return &m.startInput
	case SectionStageEnd:
		return &m.endInput
	case SectionSpeciesSearch:
		return &m.speciesInput
	default:
		return nil
	}
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
