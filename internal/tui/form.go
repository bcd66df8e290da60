package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form is a vertical stack of labelled text inputs. Tab/down moves focus
// forward, shift+tab/up moves it back, and enter on the last field submits.
// Every operation screen in the app is one of these.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

type fieldSpec struct {
	label       string
	placeholder string
	value       string
	width       int
}

func newForm(title string, specs ...fieldSpec) *form {
	f := &form{title: title}
	for i, spec := range specs {
		input := textinput.New()
		input.Placeholder = spec.placeholder
		input.CharLimit = 64
		input.Width = spec.width
		if input.Width == 0 {
			input.Width = 32
		}
		if spec.value != "" {
			input.SetValue(spec.value)
		}
		if i == 0 {
			input.Focus()
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, input)
	}
	return f
}

// Update routes a message to the focused input and handles focus movement.
// It reports whether the form was submitted.
func (f *form) Update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return nil, true
			}
			f.setFocus(f.focus + 1)
			return textinput.Blink, false
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return textinput.Blink, false
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return textinput.Blink, false
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *form) setFocus(idx int) {
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = idx
}

// value returns the trimmed contents of field idx.
func (f *form) value(idx int) string {
	if idx < 0 || idx >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[idx].Value())
}

func (f *form) setError(err error) {
	if err == nil {
		f.errMsg = ""
		return
	}
	f.errMsg = err.Error()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
	f.errMsg = ""
}

func (f *form) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(f.title)
	lines := []string{title, ""}
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Width(12)
	for i := range f.inputs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(f.labels[i]),
			f.inputs[i].View(),
		))
	}
	if f.errMsg != "" {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("⚠ " + f.errMsg)
		lines = append(lines, "", warn)
	}
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render("Enter → submit    Tab → next field    Esc → back")
	lines = append(lines, hint)
	return strings.Join(lines, "\n")
}

// parseFloatField converts a form value into a float64 with a friendly
// diagnostic naming the field.
func parseFloatField(label, value string) (float64, error) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", label, value)
	}
	return n, nil
}

// parseIntField converts a form value into an int with a friendly
// diagnostic naming the field.
func parseIntField(label, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", label, value)
	}
	return n, nil
}
