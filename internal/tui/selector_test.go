package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testItems() []Item {
	return []Item{
		{ID: "dev", Name: "Development"},
		{ID: "prod", Name: "Production"},
		{ID: "test", Name: "Testing"},
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemLabel(t *testing.T) {
	item := Item{ID: "dev", Name: "Development"}
	if got := item.Label(); got != "Development (dev)" {
		t.Errorf("Label() = %q, want %q", got, "Development (dev)")
	}
}

func TestSelectorEnterSelectsHighlighted(t *testing.T) {
	state := NewSelectorState(testItems())
	sel := NewSelector()

	sel.HandleKey(state, keyMsg(tea.KeyDown))
	made, item := sel.HandleKey(state, keyMsg(tea.KeyEnter))
	if !made {
		t.Fatal("expected a selection")
	}
	if item.ID != "prod" {
		t.Errorf("selected %q, want prod", item.ID)
	}
}

func TestSelectorNavigationClamps(t *testing.T) {
	state := NewSelectorState(testItems())
	sel := NewSelector()

	// Up at the top stays at the top
	sel.HandleKey(state, keyMsg(tea.KeyUp))
	if state.Selected != 0 {
		t.Errorf("Selected = %d after up at top, want 0", state.Selected)
	}

	// Down past the end stays at the last item
	for i := 0; i < 10; i++ {
		sel.HandleKey(state, keyMsg(tea.KeyDown))
	}
	if state.Selected != 2 {
		t.Errorf("Selected = %d after repeated down, want 2", state.Selected)
	}
}

func TestSelectorFilterMatchesIDAndName(t *testing.T) {
	state := NewSelectorState(testItems())
	sel := NewSelector()

	// Filter by id substring
	sel.HandleKey(state, runesMsg("pro"))
	if len(state.Filtered) != 1 || state.Filtered[0].ID != "prod" {
		t.Fatalf("filter 'pro' → %+v, want [prod]", state.Filtered)
	}

	// Backspace back to empty restores the full list
	for i := 0; i < 3; i++ {
		sel.HandleKey(state, keyMsg(tea.KeyBackspace))
	}
	if len(state.Filtered) != 3 {
		t.Errorf("filter cleared → %d items, want 3", len(state.Filtered))
	}

	// Filter by name substring, case-insensitive
	sel.HandleKey(state, runesMsg("DEVEL"))
	if len(state.Filtered) != 1 || state.Filtered[0].ID != "dev" {
		t.Errorf("filter 'DEVEL' → %+v, want [dev]", state.Filtered)
	}
}

func TestSelectorFilterResetsSelection(t *testing.T) {
	state := NewSelectorState(testItems())
	sel := NewSelector()

	sel.HandleKey(state, keyMsg(tea.KeyDown))
	sel.HandleKey(state, keyMsg(tea.KeyDown))
	sel.HandleKey(state, runesMsg("t"))
	if state.Selected != 0 {
		t.Errorf("Selected = %d after filter change, want 0", state.Selected)
	}
}

func TestSelectorEnterOnEmptyFilterDoesNotSelect(t *testing.T) {
	state := NewSelectorState(testItems())
	sel := NewSelector()

	sel.HandleKey(state, runesMsg("zzz"))
	made, _ := sel.HandleKey(state, keyMsg(tea.KeyEnter))
	if made {
		t.Error("enter on an empty filtered list should not select")
	}
}

func TestSelectorScrollFollowsSelection(t *testing.T) {
	items := make([]Item, 30)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i)), Name: "Context"}
	}
	state := NewSelectorState(items)
	state.Height = 5
	sel := NewSelector()

	for i := 0; i < 12; i++ {
		sel.HandleKey(state, keyMsg(tea.KeyDown))
	}
	if state.Selected != 12 {
		t.Fatalf("Selected = %d, want 12", state.Selected)
	}
	if state.ScrollOffset != 8 {
		t.Errorf("ScrollOffset = %d, want 8", state.ScrollOffset)
	}

	sel.HandleKey(state, keyMsg(tea.KeyPgUp))
	if state.Selected != 7 {
		t.Errorf("Selected = %d after page up, want 7", state.Selected)
	}
}

func TestSelectorModelCancel(t *testing.T) {
	m := newSelectorModel("Pick a context", testItems())

	updated, cmd := m.Update(keyMsg(tea.KeyEsc))
	sm := updated.(selectorModel)
	if !sm.cancelled {
		t.Error("esc should cancel the picker")
	}
	if cmd == nil {
		t.Error("cancel should quit the program")
	}
}

func TestSelectorModelChoice(t *testing.T) {
	m := newSelectorModel("Pick a context", testItems())

	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	sm := updated.(selectorModel)
	if sm.choice == nil || sm.choice.ID != "dev" {
		t.Errorf("choice = %+v, want dev", sm.choice)
	}
}
