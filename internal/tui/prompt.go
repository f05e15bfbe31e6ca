package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/Iron-Ham/azctx/internal/errors"
)

// Field is one input in a prompt form. Validate runs on submit; a non-nil
// error keeps the field focused with the message shown.
type Field struct {
	Label       string
	Placeholder string
	CharLimit   int
	Validate    func(value string) error
}

// promptModel collects values for a sequence of fields, one at a time.
type promptModel struct {
	title     string
	fields    []Field
	values    []string
	current   int
	input     textinput.Model
	errorMsg  string
	cancelled bool
	done      bool
}

func newPromptModel(title string, fields []Field) promptModel {
	m := promptModel{
		title:  title,
		fields: fields,
		values: make([]string, len(fields)),
	}
	m.input = m.inputFor(0)
	return m
}

func (m promptModel) inputFor(idx int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = m.fields[idx].Placeholder
	ti.CharLimit = m.fields[idx].CharLimit
	ti.Width = 40
	ti.Focus()
	return ti
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if validate := m.fields[m.current].Validate; validate != nil {
				if err := validate(value); err != nil {
					m.errorMsg = err.Error()
					return m, nil
				}
			}
			m.values[m.current] = value
			m.errorMsg = ""
			m.current++
			if m.current >= len(m.fields) {
				m.done = true
				return m, tea.Quit
			}
			m.input = m.inputFor(m.current)
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Title.Render(m.title))
	sb.WriteString("\n")

	// Already-answered fields
	for i := 0; i < m.current; i++ {
		sb.WriteString(Muted.Render(m.fields[i].Label+": ") + m.values[i] + "\n")
	}

	sb.WriteString(m.fields[m.current].Label + ":\n")
	sb.WriteString(m.input.View() + "\n")

	if m.errorMsg != "" {
		sb.WriteString("\n" + ErrorLine(m.errorMsg) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(Muted.Render("enter confirm · esc cancel"))
	return Panel.Render(sb.String())
}

// Prompt runs an interactive form for the given fields and returns the
// entered values in field order. Cancelling returns ErrCancelled.
func Prompt(title string, fields []Field) ([]string, error) {
	p := tea.NewProgram(newPromptModel(title, fields))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(promptModel)
	if m.cancelled || !m.done {
		return nil, errs.ErrCancelled
	}
	return m.values, nil
}
