package update

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Close   key.Binding
	Help    key.Binding
	Palette key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
	Enter   key.Binding
	// Arrow-only movement for sections where letters are typed.
	ArrowUp   key.Binding
	ArrowDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
		Close:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "salir (fuera de campos de texto)")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "ayuda")),
		Palette:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "comandos")),
		Toggle:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "común/científico")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reiniciar")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "siguiente")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "anterior")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "opción anterior")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "opción siguiente")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x/supr", "quitar")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirmar")),
		ArrowUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "subir")),
		ArrowDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "bajar")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Reset, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Left, k.Right, k.Up, k.Down, k.Remove, k.Enter, k.Close},
	}
}
