package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dotkit/pkg/engine"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FormatPickerModel - Interactive format selection
// =============================================================================

// FormatPickerModel is the bubbletea model for choosing output formats.
type FormatPickerModel struct {
	Formats  []engine.Format
	Cursor   int
	Marked   map[int]bool
	Height   int
	Offset   int
	Done     bool
	Canceled bool
}

// NewFormatPickerModel creates a picker over formats.
func NewFormatPickerModel(formats []engine.Format) FormatPickerModel {
	return FormatPickerModel{
		Formats: formats,
		Marked:  map[int]bool{},
		Height:  15,
	}
}

// Chosen returns the marked formats in list order. Confirming with nothing
// marked chooses the format under the cursor.
func (m FormatPickerModel) Chosen() []engine.Format {
	if m.Canceled || !m.Done {
		return nil
	}
	var out []engine.Format
	for i, f := range m.Formats {
		if m.Marked[i] {
			out = append(out, f)
		}
	}
	if len(out) == 0 && len(m.Formats) > 0 {
		out = append(out, m.Formats[m.Cursor])
	}
	return out
}

func (m FormatPickerModel) Init() tea.Cmd {
	return nil
}

func (m FormatPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Canceled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Formats)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			marked := make(map[int]bool, len(m.Marked)+1)
			for k, v := range m.Marked {
				marked[k] = v
			}
			marked[m.Cursor] = !marked[m.Cursor]
			m.Marked = marked
		case "enter":
			m.Done = true
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

func (m FormatPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Output Formats"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Formats))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Formats[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Marked[i] {
			mark = "[x]"
		}
		rows = append(rows, []string{cursor, mark, f.String(), "." + f.Extension(), f.MIMEType()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Format", "Ext", "Content type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case m.Marked[idx]:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d marked", m.Cursor+1, len(m.Formats), m.markedCount())))

	return b.String()
}

func (m FormatPickerModel) markedCount() int {
	n := 0
	for _, v := range m.Marked {
		if v {
			n++
		}
	}
	return n
}
