// Package tui provides the interactive terminal components: the context
// picker, the add-context prompt, and yes/no confirmation. Rendering uses
// lipgloss; lipgloss itself downgrades colors for dumb terminals and
// honors NO_COLOR.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/Iron-Ham/azctx/internal/errors"
)

// Item is one selectable context in the picker.
type Item struct {
	ID   string
	Name string
}

// Label returns the picker display form, "Name (id)".
func (i Item) Label() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.ID)
}

// SelectorState holds the state for the context picker list.
type SelectorState struct {
	// Items is the full list of selectable items (unfiltered)
	Items []Item

	// Filtered is the filtered list based on the search input
	Filtered []Item

	// Selected is the index of the highlighted item in the filtered list
	Selected int

	// ScrollOffset is the scroll offset for the list viewport
	ScrollOffset int

	// SearchInput is the current filter text
	SearchInput string

	// Height is the maximum number of visible items
	Height int
}

// NewSelectorState creates a SelectorState over the given items.
func NewSelectorState(items []Item) *SelectorState {
	return &SelectorState{
		Items:    items,
		Filtered: items,
		Height:   10,
	}
}

// Selector encapsulates the picker list logic. It operates on
// SelectorState and mutates it in place; the component itself is
// stateless.
type Selector struct{}

// NewSelector creates a Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// HandleKey processes keyboard input for the picker list.
// If selectionMade is true the caller should stop and use selected.
func (s *Selector) HandleKey(state *SelectorState, msg tea.KeyMsg) (selectionMade bool, selected Item) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab:
		if len(state.Filtered) > 0 && state.Selected < len(state.Filtered) {
			return true, state.Filtered[state.Selected]
		}
		return false, Item{}

	case tea.KeyUp, tea.KeyCtrlP:
		if state.Selected > 0 {
			state.Selected--
			s.AdjustScroll(state)
		}
		return false, Item{}

	case tea.KeyDown, tea.KeyCtrlN:
		if state.Selected < len(state.Filtered)-1 {
			state.Selected++
			s.AdjustScroll(state)
		}
		return false, Item{}

	case tea.KeyPgUp:
		state.Selected -= state.Height
		if state.Selected < 0 {
			state.Selected = 0
		}
		s.AdjustScroll(state)
		return false, Item{}

	case tea.KeyPgDown:
		state.Selected += state.Height
		if state.Selected >= len(state.Filtered) {
			state.Selected = len(state.Filtered) - 1
		}
		if state.Selected < 0 {
			state.Selected = 0
		}
		s.AdjustScroll(state)
		return false, Item{}

	case tea.KeyBackspace:
		if len(state.SearchInput) > 0 {
			runes := []rune(state.SearchInput)
			state.SearchInput = string(runes[:len(runes)-1])
			s.ApplyFilter(state)
		}
		return false, Item{}

	case tea.KeyRunes:
		state.SearchInput += string(msg.Runes)
		s.ApplyFilter(state)
		return false, Item{}

	case tea.KeySpace:
		state.SearchInput += " "
		s.ApplyFilter(state)
		return false, Item{}
	}

	return false, Item{}
}

// ApplyFilter filters the item list on the search input, matching against
// both id and name case-insensitively.
func (s *Selector) ApplyFilter(state *SelectorState) {
	if state.SearchInput == "" {
		state.Filtered = state.Items
	} else {
		searchLower := strings.ToLower(state.SearchInput)
		state.Filtered = nil
		for _, item := range state.Items {
			if strings.Contains(strings.ToLower(item.ID), searchLower) ||
				strings.Contains(strings.ToLower(item.Name), searchLower) {
				state.Filtered = append(state.Filtered, item)
			}
		}
	}

	state.Selected = 0
	state.ScrollOffset = 0
	s.AdjustScroll(state)
}

// AdjustScroll keeps the selection inside the visible window.
func (s *Selector) AdjustScroll(state *SelectorState) {
	if state.Height <= 0 {
		return
	}

	if state.Selected < state.ScrollOffset {
		state.ScrollOffset = state.Selected
	}
	if state.Selected >= state.ScrollOffset+state.Height {
		state.ScrollOffset = state.Selected - state.Height + 1
	}

	maxScroll := max(len(state.Filtered)-state.Height, 0)
	state.ScrollOffset = max(min(state.ScrollOffset, maxScroll), 0)
}

// selectorModel is the Bubbletea model wrapping Selector for standalone use.
type selectorModel struct {
	title     string
	state     *SelectorState
	selector  *Selector
	choice    *Item
	cancelled bool
}

func newSelectorModel(title string, items []Item) selectorModel {
	return selectorModel{
		title:    title,
		state:    NewSelectorState(items),
		selector: NewSelector(),
	}
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		default:
			if made, item := m.selector.HandleKey(m.state, msg); made {
				m.choice = &item
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m selectorModel) View() string {
	if m.choice != nil || m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Title.Render(m.title))
	sb.WriteString("\n")

	search := m.state.SearchInput
	if search == "" {
		search = Muted.Render("type to filter")
	}
	sb.WriteString(fmt.Sprintf("Filter: %s\n\n", search))

	if len(m.state.Filtered) == 0 {
		sb.WriteString(Muted.Render("  no matches") + "\n")
	}

	end := min(m.state.ScrollOffset+m.state.Height, len(m.state.Filtered))
	for i := m.state.ScrollOffset; i < end; i++ {
		label := m.state.Filtered[i].Label()
		if i == m.state.Selected {
			sb.WriteString(SelectedRow.Render("> "+label) + "\n")
		} else {
			sb.WriteString(UnselectedRow.Render("  "+label) + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(Muted.Render("↑/↓ move · enter select · esc cancel"))
	return Panel.Render(sb.String())
}

// SelectContext runs the interactive picker over the given items and
// returns the chosen one. Cancelling with esc or ctrl-c returns
// ErrCancelled.
func SelectContext(title string, items []Item) (Item, error) {
	p := tea.NewProgram(newSelectorModel(title, items))
	final, err := p.Run()
	if err != nil {
		return Item{}, err
	}

	m := final.(selectorModel)
	if m.cancelled || m.choice == nil {
		return Item{}, errs.ErrCancelled
	}
	return *m.choice, nil
}
