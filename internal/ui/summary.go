// Package ui renders the ranked console summary shown after each
// scenario. Presentation only; ordering comes in already decided.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crossbench/internal/score"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4)
	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// PrintRanking writes the sorted score entries of one scenario as a
// ranked list, best first. The bar mirrors the chart artifact so the
// terminal shows the ranking without opening the SVG.
func PrintRanking(w io.Writer, scenario string, entries []score.Entry) {
	fmt.Fprintln(w, titleStyle.Render(scenario))
	for i, e := range entries {
		label := e.Display
		if i == 0 {
			label = winnerStyle.Render(label)
		}
		bar := strings.Repeat("█", barWidth(e.Score))
		fmt.Fprintf(w, "%s %s %s %s\n",
			rankStyle.Render(fmt.Sprintf("%d.", i+1)),
			scoreStyle.Render(fmt.Sprintf("%.3f", e.Score)),
			bar,
			label,
		)
	}
}

// PrintFailures lists deferred measurement failures at the end of a run.
func PrintFailures(w io.Writer, failures []string) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(w, failStyle.Render("some of the benchmarks failed"))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

// barWidth maps a [0.1, 1.0] score onto a 1..40 column bar.
func barWidth(score float64) int {
	n := int(score * 40)
	if n < 1 {
		n = 1
	}
	if n > 40 {
		n = 40
	}
	return n
}
