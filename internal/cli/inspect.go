package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/pkg/layout"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// Browser styles
var (
	browserTabStyle    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	browserActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	browserDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browserDetailStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// inspectCommand creates the inspect command for browsing a layout's cells.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format     string
		permissive bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [layout.json|warehouse.json|toml|yaml]",
		Short: "Browse the cells of a layout interactively",
		Long: `Browse the cells of a layout interactively.

The input is either a layout.json written by "racklayout layout" or a
configuration file, which is laid out first.

Keys: tab/←/→ switch workstation, ↑/↓ move, enter show cell details, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadLayout(cmd.Context(), args[0], format, permissive, noCache)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewCellBrowserModel(l)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "configuration format when the input is not a layout")
	cmd.Flags().BoolVar(&permissive, "permissive", false, "treat unknown units as centimeters and non-numeric values as 0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadLayout reads path as a layout file, or computes the layout when path is
// a configuration.
func (c *CLI) loadLayout(ctx context.Context, path, format string, permissive, noCache bool) (*layout.WarehouseLayout, error) {
	if format == "" && path != stdinPath {
		if l, err := layout.ReadFile(path); err == nil {
			return l, nil
		}
	}

	cfg, err := loadConfig(path, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, cfg, pipeline.Options{Mode: modeFlag(permissive), Logger: c.Logger})
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	return result.Layout, nil
}

// =============================================================================
// CellBrowserModel - Interactive cell browser
// =============================================================================

// CellBrowserModel is the bubbletea model for browsing the cells of a layout,
// one workstation at a time.
type CellBrowserModel struct {
	Layout      *layout.WarehouseLayout
	Workstation int
	Cursor      int
	Offset      int
	Height      int
	Expanded    bool
}

// NewCellBrowserModel creates a browser positioned on the first cell of the
// first workstation.
func NewCellBrowserModel(l *layout.WarehouseLayout) CellBrowserModel {
	return CellBrowserModel{Layout: l, Height: 15}
}

func (m CellBrowserModel) Init() tea.Cmd {
	return nil
}

func (m CellBrowserModel) cells() []layout.Cell {
	if m.Layout == nil || len(m.Layout.Workstations) == 0 {
		return nil
	}
	return m.Layout.Workstations[m.Workstation].Aisles
}

func (m CellBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.cells())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "right", "l":
			m = m.switchTo(m.Workstation + 1)
		case "shift+tab", "left", "h":
			m = m.switchTo(m.Workstation - 1)
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// switchTo selects workstation i, wrapping around at both ends.
func (m CellBrowserModel) switchTo(i int) CellBrowserModel {
	n := 0
	if m.Layout != nil {
		n = len(m.Layout.Workstations)
	}
	if n == 0 {
		return m
	}
	m.Workstation = (i%n + n) % n
	m.Cursor, m.Offset, m.Expanded = 0, 0, false
	return m
}

func (m CellBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Warehouse Layout"))
	if m.Layout != nil && m.Layout.ID != "" {
		b.WriteString(" " + browserDimStyle.Render(m.Layout.ID))
	}
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("tab switch workstation  ↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	cells := m.cells()
	if len(cells) == 0 {
		b.WriteString(browserDimStyle.Render("  no workstations"))
		return b.String()
	}

	var tabs []string
	for i := range m.Layout.Workstations {
		style := browserTabStyle
		if i == m.Workstation {
			style = browserActiveStyle
		}
		tabs = append(tabs, style.Render(m.Layout.Workstations[i].ID))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	end := m.Offset + m.Height
	if end > len(cells) {
		end = len(cells)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cell := &cells[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		pallets := ""
		if n := len(cell.Pallets); n > 0 {
			pallets = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			cursor,
			cell.ID,
			cell.Side,
			cell.Label,
			fmt.Sprintf("%s, %s, %s", formatCM(cell.Position.X), formatCM(cell.Position.Y), formatCM(cell.Position.Z)),
			fmt.Sprintf("%s × %s × %s", formatCM(cell.Dimensions.Width), formatCM(cell.Dimensions.Length), formatCM(cell.Dimensions.Height)),
			pallets,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Cell", "Side", "Label", "Position", "Size", "Pallets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(cells) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle().Foreground(cellColor(&cells[idx]))
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(cells))))

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(browserDetailStyle.Render(cellDetails(&cells[m.Cursor])))
	}

	return b.String()
}

// cellColor picks a foreground color per cell type.
func cellColor(c *layout.Cell) lipgloss.Color {
	switch {
	case c.IsStorage():
		return colorGreen
	case c.IsGap():
		return colorYellow
	case c.Type == layout.CellCentralAisle:
		return colorBlue
	}
	return colorGray
}

// cellDetails renders the type-specific fields of a cell.
func cellDetails(cell *layout.Cell) string {
	lines := []string{StyleValue.Render(cell.ID) + " " + browserDimStyle.Render(cell.Type)}
	if ix := cell.Indices; ix != nil {
		lines = append(lines, fmt.Sprintf("row %d · floor %d · col %d · depth %d · aisle %d",
			ix.Row, ix.Floor, ix.Col, ix.Depth, ix.Aisle))
	}
	if g := cell.GapInfo; g != nil {
		lines = append(lines, fmt.Sprintf("%s %s", StyleWarning.Render(g.GapType), formatCM(g.Size)))
		lines = append(lines, browserDimStyle.Render(g.Description))
	}
	for _, p := range cell.Pallets {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorBrown).Render(
			fmt.Sprintf("%s %s  %s × %s × %s", p.Type, p.Color,
				formatCM(p.Dims.Length), formatCM(p.Dims.Width), formatCM(p.Dims.Height))))
	}
	return strings.Join(lines, "\n")
}
