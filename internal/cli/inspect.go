package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	layerHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// inspectCommand creates the inspect command, an interactive browser over
// the computed layers of a project.
func (c *CLI) inspectCommand() *cobra.Command {
	var from string
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the layers and blocks of a project",
		Long: `Inspect lays out a project and lists its blocks layer by layer.
Select a block to see its parts, position and references.

Keys: ↑/↓ or j/k move, q quits. Use --plain for a non-interactive listing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.computeDiagram(cmd.Context(), args[0], from)
			if err != nil {
				return err
			}
			if plain || !isTerminal(os.Stdout) {
				writeLayers(cmd.OutOrStdout(), d)
				return nil
			}
			_, err = tea.NewProgram(newInspectModel(d), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input encoding: json, toml, text (default: by extension)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the layers instead of starting the browser")
	return cmd
}

func (c *CLI) computeDiagram(ctx context.Context, input, from string) (*diagram.Diagram, error) {
	logger := loggerFromContext(ctx)
	p, err := readProject(input, from)
	if err != nil {
		return nil, err
	}
	d := diagram.Compute(p, c.Config.Diagram)
	logger.Debug("computed layout", "blocks", d.Info.Len(), "layers", len(d.Layers))
	return d, nil
}

// writeLayers prints every layer and its blocks.
func writeLayers(w io.Writer, d *diagram.Diagram) {
	if d.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(d.Title))
	}
	for i, layer := range d.Layers {
		fmt.Fprintln(w, layerHeaderStyle.Render(fmt.Sprintf("Layer %d", i)))
		for _, name := range layer {
			fmt.Fprintln(w, "  "+blockLabel(d, name))
		}
	}
	if len(d.Unreached) > 0 {
		fmt.Fprintln(w, StyleWarning.Render("unreached: "+strings.Join(d.Unreached, ", ")))
	}
}

func blockLabel(d *diagram.Diagram, name string) string {
	n, ok := d.Info.Node(name)
	if ok && n.External() {
		return name + listDimStyle.Render(" (external)")
	}
	return name
}

// =============================================================================
// inspectModel - Interactive layer browser
// =============================================================================

type inspectRow struct {
	layer int
	name  string
}

// inspectModel is the bubbletea model for the layer browser.
type inspectModel struct {
	d      *diagram.Diagram
	rows   []inspectRow
	cursor int
	offset int
	height int
}

func newInspectModel(d *diagram.Diagram) inspectModel {
	var rows []inspectRow
	for i, layer := range d.Layers {
		for _, name := range layer {
			rows = append(rows, inspectRow{layer: i, name: name})
		}
	}
	return inspectModel{d: d, rows: rows, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "home", "g":
			m.cursor, m.offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := "Layers"
	if m.d.Title != "" {
		title = m.d.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("no blocks"))
		return b.String()
	}

	end := min(m.offset+m.height, len(m.rows))
	var list strings.Builder
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if i == m.offset || m.rows[i-1].layer != r.layer {
			list.WriteString(layerHeaderStyle.Render(fmt.Sprintf("Layer %d", r.layer)))
			list.WriteString("\n")
		}
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + r.name))
		} else {
			list.WriteString(listNormalStyle.Render("  ") + blockLabel(m.d, r.name))
		}
		list.WriteString("\n")
	}

	detail := detailBoxStyle.Render(m.detail(m.rows[m.cursor].name))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(28).Render(list.String()), detail))
	return b.String()
}

// detail describes one block: position, parts and refs.
func (m inspectModel) detail(name string) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(name))
	b.WriteString("\n")

	if r, ok := m.d.Layout.Rect(name); ok {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("at %.0f,%.0f  size %.0f×%.0f", r.X, r.Y, r.W, r.H)))
		b.WriteString("\n")
	}

	n, ok := m.d.Info.Node(name)
	if !ok {
		return b.String()
	}
	if n.External() {
		b.WriteString(listDimStyle.Render("referenced but never declared"))
		b.WriteString("\n")
	}
	if presets := n.Presets(); len(presets) > 0 {
		b.WriteString(listDimStyle.Render("presets: " + strings.Join(presets, ", ")))
		b.WriteString("\n")
	}
	for _, part := range n.Parts() {
		if part.Name != "" {
			b.WriteString(StyleValue.Render(part.Name))
			b.WriteString("\n")
		}
		for _, item := range part.Items {
			b.WriteString("  " + item.Value + "\n")
		}
	}

	for _, r := range m.d.Info.RefsFrom(name) {
		line := iconArrow + " " + r.To
		if r.Label != "" {
			line += listDimStyle.Render(" (" + r.Label + ")")
		}
		b.WriteString(line + "\n")
	}
	for _, from := range n.In {
		b.WriteString(listDimStyle.Render("← "+from) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
