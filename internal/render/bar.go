package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rewired-gh/surveyboard/internal/charts"
)

// canvasDPI is the resolution gonum's image canvases render at
const canvasDPI = 96

// pixels converts a pixel size to a gonum length at canvasDPI
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / canvasDPI
}

// Bar draws one bar group per source with one bar per response series, side by side.
func (r *Renderer) Bar(w io.Writer, spec charts.BarSpec, format string) error {
	format, err := r.Resolve(format)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	names := make([]string, len(spec.Groups))
	for i, g := range spec.Groups {
		names[i] = g.Source
	}

	groups := math.Max(float64(len(spec.Groups)), 1)
	series := math.Max(float64(len(spec.Series)), 1)
	// 70% of each group slot is filled with bars
	barWidth := vg.Length(math.Min(0.7*float64(pixels(spec.Width))/(groups+1)/series, float64(vg.Points(40))))

	for i, name := range spec.Series {
		values := make(plotter.Values, len(spec.Groups))
		for j, g := range spec.Groups {
			values[j] = float64(g.Count(name))
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("failed to build bars for %q: %w", name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = seriesColor(name, i)
		bars.Offset = vg.Length(float64(i)-(series-1)/2) * barWidth

		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}

	wt, err := p.WriterTo(pixels(spec.Width), pixels(spec.Height), format)
	if err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write bar chart: %w", err)
	}
	return nil
}

// seriesColor uses the fixed response palette, or gonum's default palette for
// unmapped codes
func seriesColor(response string, idx int) color.Color {
	if c, ok := charts.ResponseColor(response); ok {
		return parseColor(c)
	}
	return plotutil.Color(idx)
}
