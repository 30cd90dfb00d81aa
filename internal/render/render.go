// Package render draws chart descriptions from the charts package as PNG or SVG.
// Pie and donut charts use go-chart; the grouped bar chart uses gonum plot, which
// supports per-series bar offsets.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rewired-gh/surveyboard/internal/charts"
	"github.com/rewired-gh/surveyboard/internal/config"
)

// Supported output formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var (
	// ErrUnsupportedFormat is returned for formats other than png and svg
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrUnsupportedSpec is returned by Render for values that are not chart specs
	ErrUnsupportedSpec = errors.New("unsupported chart spec")
)

// Hole fill colors, matching the page cards the charts sit on
const (
	gaugeHoleColor = "#f5f5f5"
	pieHoleColor   = "#ffffff"
)

// Renderer draws chart specs
type Renderer struct {
	defaultFormat string
}

// New creates a Renderer using cfg.Format when a call does not name a format
func New(cfg config.ChartsConfig) *Renderer {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = FormatPNG
	}
	return &Renderer{defaultFormat: format}
}

// DefaultFormat returns the configured output format
func (r *Renderer) DefaultFormat() string {
	return r.defaultFormat
}

// ContentType returns the MIME type for a format
func ContentType(format string) (string, error) {
	switch format {
	case FormatPNG:
		return "image/png", nil
	case FormatSVG:
		return "image/svg+xml", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Resolve returns the format to use for a request, falling back to the default
func (r *Renderer) Resolve(format string) (string, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = r.defaultFormat
	}
	if _, err := ContentType(format); err != nil {
		return "", err
	}
	return format, nil
}

// Render draws any of the chart spec types
func (r *Renderer) Render(w io.Writer, spec any, format string) error {
	switch s := spec.(type) {
	case charts.DonutSpec:
		return r.Donut(w, s, format)
	case charts.PieSpec:
		return r.Pie(w, s, format)
	case charts.BarSpec:
		return r.Bar(w, s, format)
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedSpec, spec)
}

func chartProvider(format string) (chart.RendererProvider, error) {
	switch format {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// parseColor converts "#RRGGBB" (or "transparent") to a drawing color.
// An empty string returns the zero color, which go-chart replaces with its palette.
func parseColor(c string) drawing.Color {
	switch c {
	case "":
		return drawing.Color{}
	case charts.ColorTransparent:
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}
