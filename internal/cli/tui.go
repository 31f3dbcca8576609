package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errPickAborted is returned when the entity picker is closed without confirming.
var errPickAborted = errors.New("entity selection aborted")

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EntityPickerModel - Interactive entity selection
// =============================================================================

// EntityPickerModel is the bubbletea model for choosing the entities to facet.
// Selected entities keep the order of the table.
type EntityPickerModel struct {
	Entities  []string
	Checked   map[int]bool
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool
}

// NewEntityPickerModel creates a picker with the preselected entities checked.
func NewEntityPickerModel(entities, preselected []string) EntityPickerModel {
	m := EntityPickerModel{
		Entities: entities,
		Checked:  make(map[int]bool),
		Height:   15,
	}
	for i, e := range entities {
		if slices.Contains(preselected, e) {
			m.Checked[i] = true
		}
	}
	return m
}

// Selected returns the checked entities in table order.
func (m EntityPickerModel) Selected() []string {
	var out []string
	for i, e := range m.Entities {
		if m.Checked[i] {
			out = append(out, e)
		}
	}
	return out
}

func (m EntityPickerModel) Init() tea.Cmd {
	return nil
}

func (m EntityPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := len(m.Selected()) < len(m.Entities)
			for i := range m.Entities {
				m.Checked[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m EntityPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entities))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[" + StyleSuccess.Render(iconSuccess) + "]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, m.Entities[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected · [%d/%d]", len(m.Selected()), m.Cursor+1, len(m.Entities))))
	return b.String()
}

// pickEntities runs the picker and returns the confirmed selection.
func pickEntities(entities, preselected []string) ([]string, error) {
	if len(entities) == 0 {
		return nil, fmt.Errorf("table has no entities to pick from")
	}
	final, err := tea.NewProgram(NewEntityPickerModel(entities, preselected)).Run()
	if err != nil {
		return nil, fmt.Errorf("run entity picker: %w", err)
	}
	m, ok := final.(EntityPickerModel)
	if !ok || !m.Confirmed {
		return nil, errPickAborted
	}
	return m.Selected(), nil
}
