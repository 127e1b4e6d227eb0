package views

import (
	"fmt"
	"strings"
)

// FieldData is one labelled row; View is the rendered input or picker.
type FieldData struct {
	Label   string
	View    string
	Focused bool
}

type TripPanelData struct {
	Fields []FieldData
	Stages ListData
	Done   bool
}

// ListData is a window of a longer list; Offset is the index of Items[0].
type ListData struct {
	Title   string
	Items   []string
	Offset  int
	Cursor  int
	Focused bool
	Empty   string
}

type SpeciesPanelData struct {
	Search      FieldData
	Matches     ListData
	Targets     ListData
	DisplayMode string
}

type ActionItemData struct {
	Label   string
	Enabled bool
}

type ActionsPanelData struct {
	Items   []ActionItemData
	Cursor  int
	Focused bool
}

type HelpPanelData struct {
	Markdown  string
	ShortHelp string
}

func RenderTripPanel(data TripPanelData) string {
	var b strings.Builder
	b.WriteString("marea:\n")
	for _, f := range data.Fields {
		b.WriteString(renderField(f) + "\n")
	}
	if data.Done {
		b.WriteString(enabledStyle.Render("formulario completo") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("formulario incompleto") + "\n")
	}
	b.WriteString("\n" + RenderList(data.Stages))
	return strings.TrimSpace(b.String())
}

func RenderSpeciesPanel(data SpeciesPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("especies (%s):\n", data.DisplayMode))
	b.WriteString(renderField(data.Search) + "\n")
	b.WriteString(RenderList(data.Matches) + "\n\n")
	b.WriteString(RenderList(data.Targets))
	return strings.TrimSpace(b.String())
}

// RenderList marks the cursor row with ">" only while the list has focus.
func RenderList(data ListData) string {
	var b strings.Builder
	title := data.Title + ":"
	if data.Focused {
		title = focusStyle.Render(title)
	}
	b.WriteString(title + "\n")
	if len(data.Items) == 0 {
		empty := data.Empty
		if empty == "" {
			empty = "(vacío)"
		}
		b.WriteString("  " + mutedStyle.Render(empty))
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if data.Focused && data.Offset+i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, data.Offset+i+1, item))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderActionsPanel(data ActionsPanelData) string {
	var b strings.Builder
	title := "procesos:"
	if data.Focused {
		title = focusStyle.Render(title)
	}
	b.WriteString(title + "\n")
	for i, a := range data.Items {
		cursor := " "
		if data.Focused && i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		label := mutedStyle.Render(a.Label)
		if a.Enabled {
			box = "[x]"
			label = a.Label
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, label))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "comando: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	body := RenderMarkdown(data.Markdown)
	if data.ShortHelp == "" {
		return body
	}
	return body + "\n\n" + data.ShortHelp
}

func renderField(f FieldData) string {
	label := fmt.Sprintf("%-14s", f.Label+":")
	if f.Focused {
		return focusStyle.Render("> "+label) + f.View
	}
	return "  " + label + f.View
}
