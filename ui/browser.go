package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/mt-dti/dti"
)

type (
	Row struct {
		Descriptor *dti.Descriptor
		Depth      int
	}
	// Browser shows a forest as a collapsible tree with the details of
	// the type under the cursor.
	Browser struct {
		forest    *dti.Forest
		rows      []Row
		cursor    int
		collapsed map[dti.Index]bool
	}
)

func CreateBrowser(forest *dti.Forest) Browser {
	browser := Browser{
		forest:    forest,
		collapsed: map[dti.Index]bool{},
	}
	browser.rows = browser.visibleRows()
	return browser
}

func (s Browser) visibleRows() []Row {
	rows := make([]Row, 0, s.forest.Len())
	s.forest.Walk(
		func(d *dti.Descriptor, depth int) bool {
			rows = append(rows, Row{Descriptor: d, Depth: depth})
			return !s.collapsed[d.Index()]
		},
	)
	return rows
}

func (s Browser) Rows() []Row {
	return s.rows
}

// Selected is nil for an empty forest.
func (s Browser) Selected() *dti.Descriptor {
	if len(s.rows) == 0 {
		return nil
	}
	return s.rows[s.cursor].Descriptor
}

func (s Browser) toggle() Browser {
	selected := s.Selected()
	if selected == nil || selected.FirstChild() == nil {
		return s
	}
	collapsed := make(map[dti.Index]bool, len(s.collapsed)+1)
	for index, value := range s.collapsed {
		collapsed[index] = value
	}
	collapsed[selected.Index()] = !collapsed[selected.Index()]
	s.collapsed = collapsed
	s.rows = s.visibleRows()
	return s
}

func (s Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		return s, tea.Quit
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "enter", " ":
		s = s.toggle()
	}
	return s, nil
}

func (s Browser) Init() tea.Cmd {
	return nil
}

func (s Browser) View() string {
	output := "MT-DTI BROWSER\n\n"
	for i, row := range s.rows {
		cursor := " "
		if i == s.cursor {
			cursor = ">"
		}
		marker := " "
		if row.Descriptor.FirstChild() != nil {
			marker = lo.Ternary(s.collapsed[row.Descriptor.Index()], "+", "-")
		}
		output += fmt.Sprintf(
			"%s %s%s %s\n",
			cursor, strings.Repeat("  ", row.Depth), marker, row.Descriptor.Name(),
		)
	}

	if selected := s.Selected(); selected != nil {
		ancestors := lo.Map(
			selected.Ancestors(),
			func(d *dti.Descriptor, _ int) string {
				return d.Name()
			},
		)
		output += "\n"
		output += fmt.Sprintf("hash:      0x%08X\n", selected.Hash())
		output += fmt.Sprintf("size:      %d bytes\n", selected.ByteSize())
		output += fmt.Sprintf("allocator: %d\n", selected.AllocatorIndex())
		output += fmt.Sprintf("attr:      %03b\n", selected.Attr())
		output += fmt.Sprintf("ancestors: %s\n", strings.Join(ancestors, " > "))
	}
	output += "\nj/k: move, enter: fold, q: quit\n"

	return output
}
