// Package viz renders stored run data as terminal plots.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Series is one named column of a run, sampled at Times.
type Series struct {
	Label  string
	Times  []float64
	Values []float64
}

// Render plots a series with a stats footer.
func Render(s Series, width, height int) string {
	if len(s.Values) == 0 {
		return statStyle.Render("no data") + "\n"
	}
	if width < 30 {
		width = 30
	}
	if height < 5 {
		height = 5
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Label) + "\n")
	b.WriteString(asciigraph.Plot(s.Values,
		asciigraph.Height(height),
		asciigraph.Width(width),
	) + "\n")

	mean := stat.Mean(s.Values, nil)
	lo, hi := s.Values[0], s.Values[0]
	for _, v := range s.Values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := 0.0
	if len(s.Times) > 0 {
		span = s.Times[len(s.Times)-1] - s.Times[0]
	}
	b.WriteString(statStyle.Render(fmt.Sprintf(
		"min %.3f  max %.3f  mean %.3f  span %.1fs  n=%d",
		lo, hi, mean, span, len(s.Values))) + "\n")
	return b.String()
}
