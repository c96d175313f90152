package cli

import (
	"fmt"
	"image"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/photo"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Photo Entries
// =============================================================================

// photoEntry is one row of the picker: a photo file with its decoded
// header geometry.
type photoEntry struct {
	Path   string
	Name   string
	Width  int
	Height int
	Class  grid.Class
	ok     bool // decodable header
}

// listPhotoEntries reads the image headers of every photo file in dir.
// Only headers are decoded, so listing a large directory stays fast.
func listPhotoEntries(dir string) ([]photoEntry, error) {
	paths, err := photo.Scan(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]photoEntry, 0, len(paths))
	for _, p := range paths {
		e := photoEntry{Path: p, Name: strings.TrimPrefix(p, dir+string(os.PathSeparator))}
		if cfg, err := decodeHeader(p); err == nil {
			e.Width = cfg.Width
			e.Height = cfg.Height
			e.Class = grid.Classify(float64(cfg.Width) / float64(cfg.Height))
			e.ok = true
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeHeader(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

// =============================================================================
// PhotoListModel - Interactive photo selection
// =============================================================================

// PhotoListModel is the bubbletea model for picking which photos go
// into the composites. Selection order is preserved: the order photos
// are toggled on is the order they are placed into slots.
type PhotoListModel struct {
	Entries []photoEntry
	Cursor  int
	Height  int
	Offset  int

	picks     map[int]int // entry index -> pick sequence
	nextPick  int
	confirmed bool
}

// NewPhotoListModel creates a picker with every decodable photo
// preselected in listing order.
func NewPhotoListModel(entries []photoEntry) PhotoListModel {
	m := PhotoListModel{
		Entries: entries,
		Height:  15,
		picks:   make(map[int]int),
	}
	for i, e := range entries {
		if e.ok {
			m.picks[i] = m.nextPick
			m.nextPick++
		}
	}
	return m
}

// Selected returns the picked entries in pick order, or nil if the
// picker was quit without confirming.
func (m PhotoListModel) Selected() []photoEntry {
	if !m.confirmed || len(m.picks) == 0 {
		return nil
	}
	order := make([]int, 0, len(m.picks))
	for idx := range m.picks {
		order = append(order, idx)
	}
	// Insertion sort by pick sequence; selections are small.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && m.picks[order[j]] < m.picks[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	selected := make([]photoEntry, len(order))
	for i, idx := range order {
		selected[i] = m.Entries[idx]
	}
	return selected
}

func (m PhotoListModel) Init() tea.Cmd {
	return nil
}

func (m PhotoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if m.Entries[m.Cursor].ok {
				if _, on := m.picks[m.Cursor]; on {
					delete(m.picks, m.Cursor)
				} else {
					m.picks[m.Cursor] = m.nextPick
					m.nextPick++
				}
			}
		case "n":
			m.picks = make(map[int]int)
		case "a":
			m.picks = make(map[int]int)
			m.nextPick = 0
			for i, e := range m.Entries {
				if e.ok {
					m.picks[i] = m.nextPick
					m.nextPick++
				}
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PhotoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Photos"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ generate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := " "
		if _, on := m.picks[i]; on {
			mark = "✓"
		}

		size := "—"
		class := "—"
		if e.ok {
			size = fmt.Sprintf("%d×%d", e.Width, e.Height)
			class = e.Class.String()
		}

		rows = append(rows, []string{cursor, mark, e.Name, size, class})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Photo", "Size", "Class").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			_, on := m.picks[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				if e.ok {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if !e.ok {
				return base.Foreground(colorDim)
			}
			if on {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(
		fmt.Sprintf("  [%d/%d]  %d selected · %d composite(s)",
			m.Cursor+1, len(m.Entries), len(m.picks), compositeCount(len(m.picks)))))

	return b.String()
}

// compositeCount returns how many composites a selection produces.
func compositeCount(photos int) int {
	if photos == 0 {
		return 0
	}
	return len(grid.Plan(photos))
}

// runPhotoPicker runs the picker program and returns the selection.
func runPhotoPicker(entries []photoEntry) ([]photoEntry, error) {
	p := tea.NewProgram(NewPhotoListModel(entries))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("photo picker: %w", err)
	}
	model, ok := final.(PhotoListModel)
	if !ok {
		return nil, nil
	}
	return model.Selected(), nil
}
