package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rewired-gh/surveyboard/internal/charts"
)

// Donut draws a gauge ring with its value centered in the hole
func (r *Renderer) Donut(w io.Writer, spec charts.DonutSpec, format string) error {
	format, err := r.Resolve(format)
	if err != nil {
		return err
	}
	provider, err := chartProvider(format)
	if err != nil {
		return err
	}

	var values []chart.Value
	for _, s := range spec.Segments {
		if s.Value <= 0 {
			continue
		}
		values = append(values, sliceValue(s))
	}
	if len(values) == 0 {
		values = []chart.Value{sliceValue(charts.Segment{Value: 1, Color: charts.ColorNeutral})}
	}

	bg := parseColor(spec.Background)
	fontSize := 20 * float64(spec.Height) / charts.DefaultDonutHeight

	pc := chart.PieChart{
		Width:      spec.Width,
		Height:     spec.Height,
		Background: chart.Style{FillColor: bg, Padding: chart.Box{Top: 2, Left: 2, Right: 2, Bottom: 2}},
		Canvas:     chart.Style{FillColor: bg},
		Values:     values,
		Elements: []chart.Renderable{
			hole(spec.Hole, parseColor(gaugeHoleColor)),
			centerLines([]textLine{{Text: spec.Label, Color: drawing.ColorBlack}}, fontSize),
		},
	}
	if err := pc.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render donut: %w", err)
	}
	return nil
}

// Pie draws the response share ring. Percentages are listed in the hole, one line
// per segment in the segment's color.
func (r *Renderer) Pie(w io.Writer, spec charts.PieSpec, format string) error {
	format, err := r.Resolve(format)
	if err != nil {
		return err
	}
	provider, err := chartProvider(format)
	if err != nil {
		return err
	}

	var (
		values []chart.Value
		lines  []textLine
	)
	for _, s := range spec.Segments {
		if s.Value <= 0 {
			continue
		}
		values = append(values, sliceValue(s))
		pct := 100 * float64(s.Value) / float64(spec.Total)
		textColor := drawing.ColorBlack
		if s.Color != "" {
			textColor = parseColor(s.Color)
		}
		lines = append(lines, textLine{
			Text:  fmt.Sprintf("%s  %.1f%%", s.Label, pct),
			Color: textColor,
		})
	}
	if len(values) == 0 {
		values = []chart.Value{sliceValue(charts.Segment{Value: 1, Color: charts.ColorNeutral})}
		lines = []textLine{{Text: "No responses", Color: drawing.ColorBlack}}
	}

	pc := chart.PieChart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
		Elements: []chart.Renderable{
			hole(spec.Hole, parseColor(pieHoleColor)),
			centerLines(lines, 14),
		},
	}
	if err := pc.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render pie: %w", err)
	}
	return nil
}

// sliceValue styles a segment. Segments without a color keep the zero color so
// go-chart assigns one from its default palette.
func sliceValue(s charts.Segment) chart.Value {
	v := chart.Value{Label: "", Value: float64(s.Value)}
	if s.Color != "" {
		c := parseColor(s.Color)
		v.Style = chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
	}
	return v
}

type textLine struct {
	Text  string
	Color drawing.Color
}

// hole paints the inner disc of a ring. go-chart sizes the pie to the smaller
// side of the canvas box and centers it there.
func hole(ratio float64, fill drawing.Color) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if ratio <= 0 {
			return
		}
		radius := math.Min(float64(canvasBox.Width()), float64(canvasBox.Height())) / 2
		cx, cy := canvasBox.Center()

		r.SetFillColor(fill)
		r.SetStrokeColor(fill)
		r.SetStrokeWidth(0)
		r.Circle(radius*ratio, cx, cy)
		r.Fill()
	}
}

// centerLines writes lines of text stacked around the center of the canvas box
func centerLines(lines []textLine, fontSize float64) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if len(lines) == 0 {
			return
		}
		cx, cy := canvasBox.Center()

		style := chart.Style{FontSize: fontSize}.InheritFrom(defaults)
		style.WriteTextOptionsToRenderer(r)
		lineHeight := r.MeasureText("0").Height() + 4
		top := cy - (lineHeight*len(lines))/2

		for i, line := range lines {
			r.SetFontColor(line.Color)
			tb := r.MeasureText(line.Text)
			x := cx - tb.Width()/2
			y := top + lineHeight*i + tb.Height()
			r.Text(line.Text, x, y)
		}
	}
}
