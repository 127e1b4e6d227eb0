package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mareas/internal/model"
	"github.com/sandeepkv93/mareas/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Palette):
		return m.openPalette(), nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggleDisplayMode()
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.resetAll()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.focusSection((m.Focus + 1) % sectionCount)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.focusSection((m.Focus + sectionCount - 1) % sectionCount)
		return m, nil
	case !m.Focus.IsTextInput() && key.Matches(msg, m.keys.Close):
		m.Quitting = true
		return m, tea.Quit
	}

	return m.handleSectionKey(msg)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	st := m.Form.State()

	stageItems := make([]string, 0, len(st.Stages))
	for _, s := range st.Stages {
		stageItems = append(stageItems, s.String())
	}
	left := views.RenderTripPanel(views.TripPanelData{
		Fields: []views.FieldData{
			m.field(SectionNumber, m.numberInput.View()),
			m.field(SectionYear, m.yearInput.View()),
			m.field(SectionObserver, m.observerPicker()),
			m.field(SectionVessel, m.vesselPicker()),
			m.field(SectionStageStart, m.startInput.View()),
			m.field(SectionStageEnd, m.endInput.View()),
		},
		Stages: views.ListData{
			Title:   SectionStages.String(),
			Items:   stageItems,
			Cursor:  m.stageCursor,
			Focused: m.Focus == SectionStages,
			Empty:   "(sin etapas)",
		},
		Done: st.Complete,
	})

	targetItems := make([]string, 0, len(st.Species))
	for _, s := range st.Species {
		targetItems = append(targetItems, s.DisplayName(st.DisplayMode))
	}
	species := views.RenderSpeciesPanel(views.SpeciesPanelData{
		Search:  m.field(SectionSpeciesSearch, m.speciesInput.View()),
		Matches: m.matchWindow(st.DisplayMode),
		Targets: views.ListData{
			Title:   SectionTargets.String(),
			Items:   targetItems,
			Cursor:  m.targetCursor,
			Focused: m.Focus == SectionTargets,
			Empty:   "(sin especies)",
		},
		DisplayMode: displayModeLabel(st.DisplayMode),
	})

	actions := m.Form.Actions()
	actionItems := make([]views.ActionItemData, 0, len(actions))
	for _, a := range actions {
		actionItems = append(actionItems, views.ActionItemData{Label: a.Label, Enabled: st.Complete})
	}
	right := species + "\n\n" + views.RenderActionsPanel(views.ActionsPanelData{
		Items:   actionItems,
		Cursor:  m.actionCursor,
		Focused: m.Focus == SectionActions,
	})

	overlay := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if helpView := m.renderHelpIfVisible(); helpView != "" {
		overlay = strings.TrimSpace(overlay + "\n" + helpView)
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "error: " + m.Status.Text
		} else {
			status = m.Status.Text
		}
	}

	return views.RenderApp(views.AppData{
		Header:     m.header(st.TripNumber, st.TripYear),
		LeftPane:   left,
		RightPane:  right,
		Overlay:    overlay,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.View(m.keys),
	})
}

func (m Model) header(number, year string) string {
	trip := "marea sin número"
	if number != "" {
		trip = fmt.Sprintf("marea %s/%s", number, year)
	}
	return fmt.Sprintf("mareas | %s | sección: %s", trip, m.Focus)
}

func (m Model) field(s Section, view string) views.FieldData {
	return views.FieldData{Label: s.String(), View: view, Focused: m.Focus == s}
}

func (m Model) observerPicker() string {
	if m.observerIdx == 0 {
		return picker("ninguno", 0, len(m.Catalog.Observers))
	}
	return picker(m.Catalog.Observers[m.observerIdx-1].DisplayName(), m.observerIdx, len(m.Catalog.Observers))
}

func (m Model) vesselPicker() string {
	if m.vesselIdx == 0 {
		return picker("ninguno", 0, len(m.Catalog.Vessels))
	}
	v := m.Catalog.Vessels[m.vesselIdx-1]
	label := v.DisplayName()
	if v.Code != "" {
		label = fmt.Sprintf("%s [%s]", label, v.Code)
	}
	return picker(label, m.vesselIdx, len(m.Catalog.Vessels))
}

func picker(label string, idx, total int) string {
	return fmt.Sprintf("< %s > (%d/%d)", label, idx, total)
}

func (m Model) matchWindow(mode model.DisplayMode) views.ListData {
	matches := m.matches()
	offset := 0
	if m.matchCursor >= maxVisibleMatches {
		offset = m.matchCursor - maxVisibleMatches + 1
	}
	end := min(offset+maxVisibleMatches, len(matches))
	items := make([]string, 0, end-offset)
	for _, s := range matches[offset:end] {
		items = append(items, s.DisplayName(mode))
	}
	return views.ListData{
		Title:   fmt.Sprintf("coincidencias (%d)", len(matches)),
		Items:   items,
		Offset:  offset,
		Cursor:  m.matchCursor,
		Focused: m.Focus == SectionSpeciesSearch,
		Empty:   "(sin coincidencias)",
	}
}

func displayModeLabel(mode model.DisplayMode) string {
	if mode == model.DisplayScientificFirst {
		return "científico primero"
	}
	return "común primero"
}
