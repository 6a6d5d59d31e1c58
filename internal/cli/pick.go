package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/components"
)

// =============================================================================
// ComponentListModel - Interactive component selection
// =============================================================================

// ComponentListModel is the bubbletea model for interactive component selection.
type ComponentListModel struct {
	Specs    []compo.Spec
	Cursor   int
	Selected *compo.Spec
	Height   int
	Offset   int
}

// NewComponentListModel creates a new component list model.
func NewComponentListModel(specs []compo.Spec) ComponentListModel {
	return ComponentListModel{
		Specs:  specs,
		Height: 15,
	}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Specs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Specs) == 0 {
				return m, nil
			}
			spec := m.Specs[m.Cursor]
			m.Selected = &spec
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

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Component"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Specs))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Specs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, s.Name, strconv.Itoa(len(s.Options)), s.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Component", "Options", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Specs))))

	return b.String()
}

// registrySpecs returns the specs of all registered components by name.
func registrySpecs(reg *compo.Registry) []compo.Spec {
	names := reg.Names()
	specs := make([]compo.Spec, 0, len(names))
	for _, name := range names {
		if b, err := reg.Get(name); err == nil {
			specs = append(specs, b.Spec())
		}
	}
	return specs
}

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a component interactively and build it with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := NewComponentListModel(registrySpecs(components.Registry()))
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			picked := final.(ComponentListModel).Selected
			if picked == nil {
				printInfo("Nothing selected")
				return nil
			}

			popts, err := c.pipelineOptions(cmd, picked.Name, &opts)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, gds, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path or directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
