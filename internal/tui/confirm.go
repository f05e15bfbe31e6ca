package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/Iron-Ham/azctx/internal/errors"
)

// confirmModel is a yes/no prompt defaulting to no.
type confirmModel struct {
	question  string
	confirmed bool
	answered  bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			// Enter takes the default: no
			m.answered = true
			m.confirmed = false
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y":
				m.answered = true
				m.confirmed = true
				return m, tea.Quit
			case "n":
				m.answered = true
				m.confirmed = false
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered || m.cancelled {
		return ""
	}
	return m.question + " " + Muted.Render("[y/N]") + " "
}

// Confirm asks a yes/no question, defaulting to no. Cancelling returns
// ErrCancelled.
func Confirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question})
	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	if m.cancelled {
		return false, errs.ErrCancelled
	}
	return m.confirmed, nil
}
