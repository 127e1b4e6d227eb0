package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mareas/internal/form"
	"github.com/sandeepkv93/mareas/internal/model"
)

func (m Model) handleSectionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.Focus {
	case SectionNumber:
		return m.handleScalarKey(msg, m.Form.TripNumber, m.Form.SetTripNumber)
	case SectionYear:
		return m.handleScalarKey(msg, m.Form.TripYear, m.Form.SetTripYear)
	case SectionObserver:
		return m.handleObserverKey(msg), nil
	case SectionVessel:
		return m.handleVesselKey(msg), nil
	case SectionStageStart, SectionStageEnd:
		return m.handleStageEntryKey(msg)
	case SectionStages:
		return m.handleStageListKey(msg), nil
	case SectionSpeciesSearch:
		return m.handleSpeciesSearchKey(msg)
	case SectionTargets:
		return m.handleTargetsKey(msg), nil
	case SectionActions:
		return m.handleActionsKey(msg), nil
	}
	return m, nil
}

// handleScalarKey feeds the focused input and writes its value through set
// when it differs from get, so cursor movement does not trigger a save.
func (m Model) handleScalarKey(msg tea.KeyMsg, get func() string, set func(string)) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Enter) {
		m.focusSection(m.Focus + 1)
		return m, nil
	}
	in := m.inputFor(m.Focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() != get() {
		set(in.Value())
		if v := get(); v != in.Value() {
			in.SetValue(v)
		}
		m.afterMutation("")
	}
	return m, cmd
}

func (m Model) handleObserverKey(msg tea.KeyMsg) Model {
	n := len(m.Catalog.Observers) + 1
	switch {
	case key.Matches(msg, m.keys.Left):
		m.observerIdx = (m.observerIdx + n - 1) % n
	case key.Matches(msg, m.keys.Right):
		m.observerIdx = (m.observerIdx + 1) % n
	default:
		return m
	}
	if m.observerIdx == 0 {
		m.Form.SelectObserver(nil)
		m.afterMutation("observador: ninguno")
		return m
	}
	o := m.Catalog.Observers[m.observerIdx-1]
	m.Form.SelectObserver(&o)
	m.afterMutation("observador: " + o.DisplayName())
	return m
}

func (m Model) handleVesselKey(msg tea.KeyMsg) Model {
	n := len(m.Catalog.Vessels) + 1
	switch {
	case key.Matches(msg, m.keys.Left):
		m.vesselIdx = (m.vesselIdx + n - 1) % n
	case key.Matches(msg, m.keys.Right):
		m.vesselIdx = (m.vesselIdx + 1) % n
	default:
		return m
	}
	if m.vesselIdx == 0 {
		m.Form.SelectVessel(nil)
		m.afterMutation("buque: ninguno")
		return m
	}
	v := m.Catalog.Vessels[m.vesselIdx-1]
	m.Form.SelectVessel(&v)
	m.afterMutation("buque: " + v.DisplayName())
	return m
}

func (m Model) handleStageEntryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Enter) {
		if m.Focus == SectionStageStart {
			m.focusSection(SectionStageEnd)
			return m, nil
		}
		return m.submitStage(), nil
	}
	in := m.inputFor(m.Focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) submitStage() Model {
	start, err := model.ParseDate(m.startInput.Value())
	if err != nil {
		m.setError(fmt.Errorf("fecha inicial inválida: %q", m.startInput.Value()))
		m.focusSection(SectionStageStart)
		return m
	}
	end, err := model.ParseDate(m.endInput.Value())
	if err != nil {
		m.setError(fmt.Errorf("fecha final inválida: %q", m.endInput.Value()))
		return m
	}
	if err := m.Form.AddStage(start, end); err != nil {
		m.setError(err)
		return m
	}
	m.startInput.SetValue("")
	m.endInput.SetValue("")
	m.focusSection(SectionStageStart)
	m.afterMutation("etapa agregada: " + model.NewStage(start, end).String())
	return m
}

func (m Model) handleStageListKey(msg tea.KeyMsg) Model {
	stages := m.Form.Stages()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.stageCursor = clamp(m.stageCursor-1, len(stages))
	case key.Matches(msg, m.keys.Down):
		m.stageCursor = clamp(m.stageCursor+1, len(stages))
	case key.Matches(msg, m.keys.Remove):
		if len(stages) == 0 {
			return m
		}
		target := stages[m.stageCursor]
		if m.Form.RemoveStage(target) {
			m.afterMutation("etapa quitada: " + target.String())
		}
	}
	return m
}

func (m Model) handleSpeciesSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	matches := m.matches()
	switch {
	case key.Matches(msg, m.keys.ArrowUp):
		m.matchCursor = clamp(m.matchCursor-1, len(matches))
		return m, nil
	case key.Matches(msg, m.keys.ArrowDown):
		m.matchCursor = clamp(m.matchCursor+1, len(matches))
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if len(matches) == 0 {
			m.setError(fmt.Errorf("ninguna especie coincide con %q", m.speciesInput.Value()))
			return m, nil
		}
		s := matches[m.matchCursor]
		if err := m.Form.AddTargetSpecies(s); err != nil {
			m.setError(err)
			return m, nil
		}
		m.speciesInput.SetValue("")
		m.matchCursor = 0
		m.afterMutation("especie agregada: " + s.DisplayName(m.Form.DisplayMode()))
		return m, nil
	}
	before := m.speciesInput.Value()
	var cmd tea.Cmd
	m.speciesInput, cmd = m.speciesInput.Update(msg)
	if m.speciesInput.Value() != before {
		m.matchCursor = 0
	}
	return m, cmd
}

func (m Model) handleTargetsKey(msg tea.KeyMsg) Model {
	targets := m.Form.TargetSpecies()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.targetCursor = clamp(m.targetCursor-1, len(targets))
	case key.Matches(msg, m.keys.Down):
		m.targetCursor = clamp(m.targetCursor+1, len(targets))
	case key.Matches(msg, m.keys.Remove):
		if len(targets) == 0 {
			return m
		}
		s := targets[m.targetCursor]
		if m.Form.RemoveTargetSpecies(s.ID) {
			m.afterMutation("especie quitada: " + s.DisplayName(m.Form.DisplayMode()))
		}
	}
	return m
}

func (m Model) handleActionsKey(msg tea.KeyMsg) Model {
	actions := m.Form.Actions()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.actionCursor = clamp(m.actionCursor-1, len(actions))
	case key.Matches(msg, m.keys.Down):
		m.actionCursor = clamp(m.actionCursor+1, len(actions))
	case key.Matches(msg, m.keys.Enter):
		if len(actions) == 0 {
			return m
		}
		m.runAction(actions[m.actionCursor].ID)
	}
	return m
}

func (m *Model) runAction(id string) {
	err := m.Form.RunAction(id)
	if errors.Is(err, form.ErrActionNotImplemented) {
		m.LastError = err
		m.Status = StatusBar{Text: actionLabel(m.Form.Actions(), id) + ": proceso no disponible todavía"}
		return
	}
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) toggleDisplayMode() {
	mode := m.Form.ToggleSpeciesDisplayMode()
	m.matchCursor = 0
	if mode == model.DisplayScientificFirst {
		m.Status = StatusBar{Text: "especies: nombre científico primero"}
		return
	}
	m.Status = StatusBar{Text: "especies: nombre común primero"}
}

func (m *Model) resetAll() {
	m.Form.ResetAll()
	m.startInput.SetValue("")
	m.endInput.SetValue("")
	m.speciesInput.SetValue("")
	m.stageCursor, m.matchCursor, m.targetCursor, m.actionCursor = 0, 0, 0, 0
	m.syncFromForm()
	m.afterMutation("formulario reiniciado")
}

// matches filters the species catalog by the search text against the
// display name in the current mode.
func (m Model) matches() []model.Species {
	mode := m.Form.DisplayMode()
	needle := strings.ToLower(strings.TrimSpace(m.speciesInput.Value()))
	out := make([]model.Species, 0, len(m.Catalog.Species))
	for _, s := range m.Catalog.Species {
		if needle == "" || strings.Contains(strings.ToLower(s.DisplayName(mode)), needle) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) afterMutation(okText string) {
	if err := m.Form.LastPersistError(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "no se pudo guardar el estado: " + err.Error(), IsError: true}
		return
	}
	if okText != "" {
		m.Status = StatusBar{Text: okText}
	}
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: describeError(err), IsError: true}
}
