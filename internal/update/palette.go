package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mareas/internal/commands"
	"github.com/sandeepkv93/mareas/internal/model"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	for _, in := range m.sectionInputs() {
		in.Blur()
	}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "paleta de comandos activa"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.focusSection(m.Focus)
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "paleta de comandos cerrada"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m = m.closePalette()
		m.setError(err)
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	m = m.closePalette()
	m.syncFromForm()
	if err != nil {
		m.setError(err)
		return m
	}
	m.afterMutation(res.Message)
	return m
}

func invalid(format string, args ...any) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func (m *Model) paletteHandlers() commands.Handlers {
	ok := func(format string, args ...any) (commands.Result, error) {
		return commands.Result{Message: fmt.Sprintf(format, args...)}, nil
	}
	return commands.Handlers{
		Number: func(a commands.FieldArgs) (commands.Result, error) {
			m.Form.SetTripNumber(a.Value)
			return ok("número de marea: %s", m.Form.TripNumber())
		},
		Year: func(a commands.FieldArgs) (commands.Result, error) {
			m.Form.SetTripYear(a.Value)
			return ok("año de marea: %s", m.Form.TripYear())
		},
		Observer: func(a commands.RefArgs) (commands.Result, error) {
			if a.None {
				m.Form.SelectObserver(nil)
				return ok("observador: ninguno")
			}
			o, found := m.Catalog.FindObserver(a.Key)
			if !found {
				return commands.Result{}, invalid("observador desconocido: %s", a.Key)
			}
			m.Form.SelectObserver(&o)
			return ok("observador: %s", o.DisplayName())
		},
		Vessel: func(a commands.RefArgs) (commands.Result, error) {
			if a.None {
				m.Form.SelectVessel(nil)
				return ok("buque: ninguno")
			}
			v, found := m.Catalog.FindVessel(a.Key)
			if !found {
				return commands.Result{}, invalid("buque desconocido: %s", a.Key)
			}
			m.Form.SelectVessel(&v)
			return ok("buque: %s", v.DisplayName())
		},
		Stage: func(a commands.StageArgs) (commands.Result, error) {
			if err := m.Form.AddStage(a.Start, a.End); err != nil {
				return commands.Result{}, err
			}
			return ok("etapa agregada: %s", model.NewStage(a.Start, a.End))
		},
		Unstage: func(a commands.IndexArgs) (commands.Result, error) {
			stages := m.Form.Stages()
			if a.Index > len(stages) {
				return commands.Result{}, invalid("no existe la etapa %d", a.Index)
			}
			target := stages[a.Index-1]
			m.Form.RemoveStage(target)
			return ok("etapa quitada: %s", target)
		},
		Species: func(a commands.SpeciesArgs) (commands.Result, error) {
			s, found := m.Catalog.FindSpecies(a.ID)
			if !found {
				return commands.Result{}, invalid("especie desconocida: %s", a.ID)
			}
			if err := m.Form.AddTargetSpecies(s); err != nil {
				return commands.Result{}, err
			}
			return ok("especie agregada: %s", s.DisplayName(m.Form.DisplayMode()))
		},
		Unspecies: func(a commands.SpeciesArgs) (commands.Result, error) {
			if !m.Form.RemoveTargetSpecies(a.ID) {
				return commands.Result{}, invalid("la especie %s no está en la lista", a.ID)
			}
			return ok("especie quitada: %s", a.ID)
		},
		Toggle: func() (commands.Result, error) {
			m.toggleDisplayMode()
			return ok("%s", m.Status.Text)
		},
		Reset: func() (commands.Result, error) {
			m.resetAll()
			return ok("formulario reiniciado")
		},
		Run: func(a commands.RunArgs) (commands.Result, error) {
			m.runAction(a.ActionID)
			return commands.Result{Message: m.Status.Text}, m.paletteActionErr()
		},
	}
}

// paletteActionErr surfaces a gate failure from runAction as the command
// result so the status keeps its error styling.
func (m *Model) paletteActionErr() error {
	if m.Status.IsError {
		return m.LastError
	}
	return nil
}
