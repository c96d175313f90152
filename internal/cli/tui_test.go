package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/printworks/photomatrix/pkg/grid"
)

func testEntries(n int) []photoEntry {
	entries := make([]photoEntry, n)
	for i := range entries {
		entries[i] = photoEntry{
			Path:   "/photos/p.png",
			Name:   "p.png",
			Width:  600,
			Height: 600,
			Class:  grid.Square,
			ok:     true,
		}
	}
	return entries
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPhotoListModelPreselectsAll(t *testing.T) {
	m := NewPhotoListModel(testEntries(5))
	if len(m.picks) != 5 {
		t.Errorf("preselected = %d, want 5", len(m.picks))
	}
}

func TestPhotoListModelSkipsUndecodable(t *testing.T) {
	entries := testEntries(3)
	entries[1].ok = false
	m := NewPhotoListModel(entries)
	if len(m.picks) != 2 {
		t.Errorf("preselected = %d, want 2", len(m.picks))
	}
}

func TestPhotoListModelToggle(t *testing.T) {
	m := NewPhotoListModel(testEntries(3))

	next, _ := m.Update(keyMsg(" "))
	m = next.(PhotoListModel)
	if len(m.picks) != 2 {
		t.Errorf("after toggle off: %d picks, want 2", len(m.picks))
	}

	next, _ = m.Update(keyMsg(" "))
	m = next.(PhotoListModel)
	if len(m.picks) != 3 {
		t.Errorf("after toggle back on: %d picks, want 3", len(m.picks))
	}
}

func TestPhotoListModelNavigation(t *testing.T) {
	m := NewPhotoListModel(testEntries(3))

	next, _ := m.Update(keyMsg("j"))
	m = next.(PhotoListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(PhotoListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("k"))
	m = next.(PhotoListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d at top, want 0", m.Cursor)
	}
}

func TestPhotoListModelSelectionRequiresConfirm(t *testing.T) {
	m := NewPhotoListModel(testEntries(2))
	if m.Selected() != nil {
		t.Error("Selected() should be nil before confirm")
	}

	next, _ := m.Update(keyMsg("enter"))
	m = next.(PhotoListModel)
	if got := len(m.Selected()); got != 2 {
		t.Errorf("Selected() = %d entries, want 2", got)
	}
}

func TestPhotoListModelSelectionOrder(t *testing.T) {
	entries := testEntries(3)
	entries[0].Name = "a.png"
	entries[1].Name = "b.png"
	entries[2].Name = "c.png"
	m := NewPhotoListModel(entries)

	// Clear, then pick c before a.
	next, _ := m.Update(keyMsg("n"))
	m = next.(PhotoListModel)
	m.Cursor = 2
	next, _ = m.Update(keyMsg(" "))
	m = next.(PhotoListModel)
	m.Cursor = 0
	next, _ = m.Update(keyMsg(" "))
	m = next.(PhotoListModel)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(PhotoListModel)

	selected := m.Selected()
	if len(selected) != 2 {
		t.Fatalf("Selected() = %d entries, want 2", len(selected))
	}
	if selected[0].Name != "c.png" || selected[1].Name != "a.png" {
		t.Errorf("selection order = [%s, %s], want [c.png, a.png]",
			selected[0].Name, selected[1].Name)
	}
}

func TestPhotoListModelSelectAllAndNone(t *testing.T) {
	m := NewPhotoListModel(testEntries(4))

	next, _ := m.Update(keyMsg("n"))
	m = next.(PhotoListModel)
	if len(m.picks) != 0 {
		t.Errorf("after none: %d picks, want 0", len(m.picks))
	}

	next, _ = m.Update(keyMsg("a"))
	m = next.(PhotoListModel)
	if len(m.picks) != 4 {
		t.Errorf("after all: %d picks, want 4", len(m.picks))
	}
}

func TestCompositeCount(t *testing.T) {
	tests := []struct {
		photos int
		want   int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 1},
		{10, 2},
		{157, 18},
	}
	for _, tt := range tests {
		if got := compositeCount(tt.photos); got != tt.want {
			t.Errorf("compositeCount(%d) = %d, want %d", tt.photos, got, tt.want)
		}
	}
}
