// Package report renders the ranked score series of one scenario as a
// horizontal bar chart. Ordering is owned by the score aggregator; this
// package only converts the sorted entries into axis-ready sequences.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"crossbench/internal/score"
)

// Emitter writes one chart artifact per scenario under Dir.
type Emitter struct {
	// Dir is the reports directory; created on first emit.
	Dir string
	// Title is set on each chart, normally the scenario name.
	Title string
}

// Emit renders the sorted entries, best performer at the top, and writes
// the chart to <dir>/<artifact>.svg.
func (e *Emitter) Emit(entries []score.Entry, artifact string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no entries to render for %s", artifact)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory %s: %w", e.Dir, err)
	}

	p := plot.New()
	p.Title.Text = e.Title
	p.X.Label.Text = "Performance score"
	p.X.Min = 0
	p.X.Max = 1.1

	// NominalY places index 0 at the bottom, so feed the series reversed
	// to put the best performer at the top.
	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, entry := range entries {
		j := len(entries) - 1 - i
		values[j] = entry.Score
		labels[j] = entry.Display
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 100, G: 200, B: 100, A: 255}
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(labels...)

	path := filepath.Join(e.Dir, artifact+".svg")
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}
