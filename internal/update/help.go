package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/mareas/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown:  m.helpMarkdown(),
		ShortHelp: m.helpModel.FullHelpView(m.keys.FullHelp()),
	})
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Ayuda\n\n## Global\n\n")
	for _, kb := range globalBindings() {
		fmt.Fprintf(&b, "- `%s`: %s\n", kb.Key, kb.Action)
	}
	fmt.Fprintf(&b, "\n## %s\n\n", m.Focus)
	for _, kb := range m.sectionBindings() {
		fmt.Fprintf(&b, "- `%s`: %s\n", kb.Key, kb.Action)
	}
	b.WriteString("\n## Comandos\n\n")
	for _, line := range paletteSummary {
		fmt.Fprintf(&b, "- `%s`\n", line)
	}
	return b.String()
}

var paletteSummary = []string{
	"number <n>",
	"year <aaaa>",
	"observer <id|none>",
	"vessel <código|nombre|none>",
	"stage <desde> <hasta>",
	"unstage <n>",
	"species <id>",
	"unspecies <id>",
	"toggle",
	"reset",
	"run <proceso>",
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab / shift+tab", Action: "cambiar de sección"},
		{Key: "ctrl+t", Action: "alternar nombre común / científico"},
		{Key: "ctrl+r", Action: "reiniciar el formulario"},
		{Key: "ctrl+p", Action: "paleta de comandos"},
		{Key: "f1", Action: "mostrar u ocultar la ayuda"},
		{Key: "ctrl+c", Action: "salir"},
		{Key: "q / esc", Action: "salir, fuera de los campos de texto"},
	}
}

func (m Model) sectionBindings() []KeyBinding {
	switch m.Focus {
	case SectionNumber, SectionYear:
		return []KeyBinding{{Key: "enter", Action: "siguiente campo"}}
	case SectionObserver, SectionVessel:
		return []KeyBinding{{Key: "←/→", Action: "elegir; la primera opción es ninguno"}}
	case SectionStageStart, SectionStageEnd:
		return []KeyBinding{{Key: "enter", Action: "agregar la etapa (dd/mm/aaaa o aaaa-mm-dd)"}}
	case SectionStages:
		return []KeyBinding{{Key: "j/k", Action: "mover"}, {Key: "x", Action: "quitar la etapa"}}
	case SectionSpeciesSearch:
		return []KeyBinding{{Key: "↑/↓", Action: "elegir coincidencia"}, {Key: "enter", Action: "agregar la especie"}}
	case SectionTargets:
		return []KeyBinding{{Key: "j/k", Action: "mover"}, {Key: "x", Action: "quitar la especie"}}
	case SectionActions:
		return []KeyBinding{{Key: "j/k", Action: "mover"}, {Key: "enter", Action: "ejecutar el proceso"}}
	default:
		return []KeyBinding{{Key: "-", Action: "sin atajos propios"}}
	}
}
