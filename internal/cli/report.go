package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// rowTable renders one line per row: its items, height and cost.
func rowTable(res layout.Result, ids []string) string {
	rows := make([][]string, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			fmt.Sprintf("%d-%d", r.Start+1, r.End),
			summarizeIDs(ids, r.Start, r.End),
			fmt.Sprintf("%.4f", r.Height),
			fmt.Sprintf("%.6f", r.Cost),
		}
	}

	return newTable("Row", "Photos", "IDs", "Height", "Cost").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// summarizeIDs lists the IDs of items [start, end), eliding the middle of
// long rows.
func summarizeIDs(ids []string, start, end int) string {
	if start >= len(ids) {
		return ""
	}
	end = min(end, len(ids))
	part := ids[start:end]
	if len(part) > 4 {
		return strings.Join(part[:2], ", ") + ", …, " + part[len(part)-1]
	}
	return strings.Join(part, ", ")
}

// verifyTable compares two partitions of the same gallery side by side.
func verifyTable(dynamic, exhaustive partition.Partition) string {
	mark := func(ok bool) string {
		if ok {
			return StyleSuccess.Render(iconSuccess)
		}
		return StyleWarning.Render(iconWarning)
	}
	sameSpans := dynamic.String() == exhaustive.String()
	sameCost := costsEqual(dynamic.Cost, exhaustive.Cost)

	return newTable("", "Dynamic", "Exhaustive", "").
		Rows(
			[]string{"Rows", fmt.Sprint(dynamic.Rows()), fmt.Sprint(exhaustive.Rows()), mark(dynamic.Rows() == exhaustive.Rows())},
			[]string{"Spans", dynamic.String(), exhaustive.String(), mark(sameSpans)},
			[]string{"Cost", fmt.Sprintf("%.9g", dynamic.Cost), fmt.Sprintf("%.9g", exhaustive.Cost), mark(sameCost)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
