package cli

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/gallery"
	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

const (
	marginStep      = 0.005
	idealStep       = 0.01
	minIdealHeight  = 0.01
	defaultColumns  = 80
	defaultRowLines = 20
)

// Preview styles
var (
	tuneKeyStyle   = lipgloss.NewStyle().Foreground(colorGray)
	tuneErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	tuneBoxStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(colorCyan),
		lipgloss.NewStyle().Foreground(colorBlue),
		lipgloss.NewStyle().Foreground(colorGreen),
	}
)

// tuneCommand creates the tune command for adjusting layout parameters
// interactively.
func (c *CLI) tuneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune [gallery]",
		Short: "Tune layout parameters interactively",
		Long: `Preview a gallery layout in the terminal and adjust it live.

Keys:
  ←/→  margin -/+ 0.005
  ↑/↓  ideal height +/- 0.01
  o    next objective
  a    toggle mean/sum aggregation
  ⏎    accept and print the [layout] config section
  q    quit without printing

The accepted section can be pasted into jigsaw.toml.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(c.v, cmd.Flags(), layoutFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := decodeConfig(c.v)
			if err != nil {
				return err
			}
			g, err := gallery.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load gallery %s: %w", args[0], err)
			}
			ratios, err := g.AspectRatios()
			if err != nil {
				return fmt.Errorf("gallery %s: %w", args[0], err)
			}

			p := tea.NewProgram(newTuneModel(g.Name, ratios, cfg.Layout),
				tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			m := final.(TuneModel)
			if !m.Accepted {
				return nil
			}
			return writeLayoutConfig(c.out, m.Config)
		},
	}

	addLayoutFlags(cmd.Flags())
	registerLayoutCompletions(cmd)

	return cmd
}

// writeLayoutConfig prints cfg as a jigsaw.toml [layout] section.
func writeLayoutConfig(w io.Writer, cfg LayoutConfig) error {
	doc := struct {
		Layout LayoutConfig `toml:"layout"`
	}{cfg}
	return toml.NewEncoder(w).Encode(doc)
}

// =============================================================================
// TuneModel - Interactive parameter tuning
// =============================================================================

// TuneModel is the bubbletea model for the tune command. Every parameter
// change recomputes the layout with the dynamic search.
type TuneModel struct {
	Name     string
	Ratios   []float64
	Config   LayoutConfig
	Result   layout.Result
	Err      error
	Accepted bool

	width  int
	height int
}

func newTuneModel(name string, ratios []float64, cfg LayoutConfig) TuneModel {
	m := TuneModel{Name: name, Ratios: ratios, Config: cfg, width: defaultColumns}
	m.recompute()
	return m
}

func (m *TuneModel) recompute() {
	obj, err := objective.Lookup(m.Config.Objective, m.Config.IdealHeight)
	if err != nil {
		m.Result, m.Err = layout.Result{}, err
		return
	}
	agg, err := partition.ParseAggregation(m.Config.Aggregation)
	if err != nil {
		m.Result, m.Err = layout.Result{}, err
		return
	}
	m.Result, m.Err = layout.Compute(m.Ratios, m.Config.Margin, obj, layout.WithAggregation(agg))
}

func (m TuneModel) Init() tea.Cmd {
	return nil
}

func (m TuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.Err == nil {
				m.Accepted = true
				return m, tea.Quit
			}
			return m, nil
		case "left", "h":
			m.Config.Margin = round3(math.Max(0, m.Config.Margin-marginStep))
		case "right", "l":
			m.Config.Margin = round3(m.Config.Margin + marginStep)
		case "up", "k":
			m.Config.IdealHeight = round3(m.Config.IdealHeight + idealStep)
		case "down", "j":
			m.Config.IdealHeight = round3(math.Max(minIdealHeight, m.Config.IdealHeight-idealStep))
		case "o":
			m.Config.Objective = nextObjective(m.Config.Objective)
		case "a":
			if agg, _ := partition.ParseAggregation(m.Config.Aggregation); agg == partition.Mean {
				m.Config.Aggregation = partition.Sum.String()
			} else {
				m.Config.Aggregation = partition.Mean.String()
			}
		default:
			return m, nil
		}
		m.recompute()
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = msg.Height
	}
	return m, nil
}

func (m TuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune " + m.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ margin  ↑/↓ ideal height  o objective  a aggregation  ⏎ accept  q quit"))
	b.WriteString("\n\n")

	param := func(key, value string) {
		b.WriteString(tuneKeyStyle.Render(fmt.Sprintf("%-14s", key)))
		b.WriteString(StyleHighlight.Render(value))
		b.WriteString("\n")
	}
	param("margin", fmt.Sprintf("%.3f", m.Config.Margin))
	param("ideal height", fmt.Sprintf("%.2f", m.Config.IdealHeight))
	param("objective", m.Config.Objective)
	param("aggregation", m.Config.Aggregation)
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(tuneErrorStyle.Render(iconError + " " + m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("%d photos · %d rows · cost %.6g",
		m.Result.Items(), len(m.Result.Rows), m.Result.Cost)))
	b.WriteString("\n\n")
	b.WriteString(m.preview())

	return b.String()
}

// preview draws each row as blocks proportional to item widths, followed
// by the row height.
func (m TuneModel) preview() string {
	limit := defaultRowLines
	if m.height > 0 {
		limit = max(m.height-12, 1)
	}
	cols := max(m.width-10, 10)

	var b strings.Builder
	for r, row := range m.Result.Rows {
		if r == limit {
			b.WriteString(StyleDim.Render(fmt.Sprintf("… %d more rows", len(m.Result.Rows)-limit)))
			b.WriteString("\n")
			break
		}
		for i := row.Start; i < row.End; i++ {
			n := max(int(math.Round(m.Result.Widths[i]*float64(cols)))-1, 1)
			b.WriteString(tuneBoxStyles[i%len(tuneBoxStyles)].Render(strings.Repeat("█", n)))
			b.WriteString(" ")
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("%.3f", row.Height)))
		b.WriteString("\n")
	}
	return b.String()
}

func nextObjective(name string) string {
	names := objective.Names()
	i := slices.Index(names, name)
	return names[(i+1)%len(names)]
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
