package inspect

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lamafmt/pkg/layout"
)

// Headers are the column titles of Rows.
var Headers = []string{"#", "height", "first", "middle", "last", "width"}

// Rows returns one row of measures per candidate of s.
func Rows(s layout.Set) [][]string {
	cands := s.Candidates()
	rows := make([][]string, len(cands))
	for i, f := range cands {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(f.Height),
			strconv.Itoa(f.First),
			strconv.Itoa(f.Middle),
			strconv.Itoa(f.Last),
			strconv.Itoa(f.TotalWidth()),
		}
	}
	return rows
}

// Best returns the index of the candidate PickBest selects, or -1 for an
// empty set.
func Best(s layout.Set) int {
	best := -1
	cands := s.Candidates()
	for i, f := range cands {
		if best < 0 || f.Height < cands[best].Height {
			best = i
		}
	}
	return best
}

// Table renders the candidate rows of s as a bordered table. The row of the
// best candidate is highlighted with highlight.
func Table(s layout.Set, highlight lipgloss.Style) string {
	best := Best(s)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(Headers...).
		Rows(Rows(s)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == best {
				return highlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
