package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/graph"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listLevelStyle    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	panelStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// browseModes are the relations the detail panel cycles through with tab.
var browseModes = []string{"immediate-precedents", "immediate-descendants", "precedents", "descendants", "related"}

// browseCommand opens an interactive level browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively browse levels and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := newBrowseModel(g)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type browseRow struct {
	level int
	node  graph.Node[string]
}

// browseModel is the bubbletea model for the level browser.
type browseModel struct {
	rows   []browseRow
	levels int
	cursor int
	offset int
	height int
	mode   int
}

func newBrowseModel(g *graph.Graph[string]) (browseModel, error) {
	levels, err := g.Levels()
	if err != nil {
		return browseModel{}, errors.Wrap(errors.ErrCodeCyclicGraph, err, "compute levels")
	}
	m := browseModel{levels: len(levels), height: 15}
	for i, nodes := range levels {
		for _, n := range nodes {
			m.rows = append(m.rows, browseRow{level: i, node: n})
		}
	}
	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "tab":
			m.mode = (m.mode + 1) % len(browseModes)
		case "shift+tab":
			m.mode = (m.mode + len(browseModes) - 1) % len(browseModes)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Levels (%d)", m.levels)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab relation  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  graph is empty"))
		return b.String()
	}

	var list strings.Builder
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		if i == m.offset || m.rows[i-1].level != row.level {
			list.WriteString(listLevelStyle.Render(fmt.Sprintf("level %d", row.level)))
			list.WriteString("\n")
		}
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + row.node.Value()))
		} else {
			list.WriteString(listNormalStyle.Render("  " + row.node.Value()))
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", panelStyle.Render(m.detail())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	return b.String()
}

// detail renders the selected node and its nodes in the active relation.
func (m browseModel) detail() string {
	row := m.rows[m.cursor]
	mode := browseModes[m.mode]

	var b strings.Builder
	b.WriteString(StyleValue.Bold(true).Render(row.node.Value()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("level %d", row.level)))
	b.WriteString("\n\n")
	b.WriteString(StyleNumber.Render(mode))
	b.WriteString("\n")

	related, err := relations[mode](row.node).Collect()
	switch {
	case err != nil:
		b.WriteString(StyleWarning.Render(err.Error()))
	case len(related) == 0:
		b.WriteString(listDimStyle.Render("none"))
	default:
		for _, n := range related {
			l, _ := n.Level()
			fmt.Fprintf(&b, "%s %s\n", listDimStyle.Render(fmt.Sprintf("%3d", l)), n.Value())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
