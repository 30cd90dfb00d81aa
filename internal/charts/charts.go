// Package charts maps aggregated survey counts into declarative chart descriptions.
// The descriptions carry everything a renderer needs (segments, colors, labels, size)
// and are also served as JSON, so they contain no rendering library types.
package charts

import (
	"sort"
	"strconv"

	"github.com/rewired-gh/surveyboard/internal/models"
)

// Fixed palette
const (
	ColorYes     = "#32CD32"
	ColorNo      = "#FF4500"
	ColorMaybe   = "#8A2BE2"
	ColorTotal   = "#6c757d"
	ColorNeutral = "#E0E0E0"

	// ColorTransparent is the background of the donut gauges
	ColorTransparent = "transparent"
)

// Default geometry
const (
	DefaultDonutWidth  = 105
	DefaultDonutHeight = 85
	DefaultChartWidth  = 640
	DefaultChartHeight = 420
	DefaultHole        = 0.7
)

// Chart titles
const (
	PieTitle = "Response Percentages"
	BarTitle = "Response Counts by Source"
)

var responseColors = map[string]string{
	models.ResponseYes:   ColorYes,
	models.ResponseNo:    ColorNo,
	models.ResponseMaybe: ColorMaybe,
}

// ResponseColor returns the fixed color for a response code. Unmapped codes
// return "" and false; renderers fall back to their default palette.
func ResponseColor(code string) (string, bool) {
	c, ok := responseColors[code]
	return c, ok
}

// Segment is one slice of a pie or donut
type Segment struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

// DonutSpec describes a single-value gauge ring
type DonutSpec struct {
	Title      string    `json:"title,omitempty"`
	Value      int       `json:"value"`
	Total      int       `json:"total"`
	Filled     float64   `json:"filled"` // fraction of the ring drawn in the value color
	Label      string    `json:"label"`  // centered text
	Segments   []Segment `json:"segments"`
	Hole       float64   `json:"hole"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background string    `json:"background"`
}

// PieSpec describes the response share chart
type PieSpec struct {
	Title    string    `json:"title"`
	Total    int       `json:"total"`
	Segments []Segment `json:"segments"`
	Hole     float64   `json:"hole"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
}

// Bar is one response bar inside a source group
type Bar struct {
	Response string `json:"response"`
	Count    int    `json:"count"`
	Color    string `json:"color,omitempty"`
}

// BarGroup is the set of bars for one source
type BarGroup struct {
	Source string `json:"source"`
	Bars   []Bar  `json:"bars"`
}

// BarSpec describes the grouped bar chart
type BarSpec struct {
	Title  string     `json:"title"`
	XLabel string     `json:"x_label"`
	YLabel string     `json:"y_label"`
	Series []string   `json:"series"` // response codes, one legend entry each
	Groups []BarGroup `json:"groups"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

// Count returns the bar height for a response in the group, 0 when absent.
func (g BarGroup) Count(response string) int {
	for _, b := range g.Bars {
		if b.Response == response {
			return b.Count
		}
	}
	return 0
}

// BuildDonut describes a ring with value drawn in color against a neutral remainder.
// A zero total draws a fully neutral ring; the label always shows value.
func BuildDonut(value, total int, color string) DonutSpec {
	filledValue := value
	if filledValue < 0 {
		filledValue = 0
	}
	if filledValue > total {
		filledValue = total
	}
	if total <= 0 {
		filledValue = 0
	}

	remainder := total - value
	if remainder < 0 {
		remainder = 0
	}

	filled := 0.0
	if total > 0 {
		filled = float64(filledValue) / float64(total)
	}

	return DonutSpec{
		Value:  value,
		Total:  total,
		Filled: filled,
		Label:  strconv.Itoa(value),
		Segments: []Segment{
			{Value: filledValue, Color: color},
			{Value: remainder, Color: ColorNeutral},
		},
		Hole:       DefaultHole,
		Width:      DefaultDonutWidth,
		Height:     DefaultDonutHeight,
		Background: ColorTransparent,
	}
}

// BuildPie describes one segment per distinct response in records.
// Segments are ordered Y, N, M, then other codes lexicographically.
func BuildPie(records []models.ResponseRecord) PieSpec {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Response]++
	}

	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sortResponses(codes)

	segments := make([]Segment, 0, len(codes))
	for _, code := range codes {
		color, _ := ResponseColor(code)
		segments = append(segments, Segment{Label: code, Value: counts[code], Color: color})
	}

	return PieSpec{
		Title:    PieTitle,
		Total:    len(records),
		Segments: segments,
		Hole:     DefaultHole,
		Width:    DefaultChartWidth,
		Height:   DefaultChartHeight,
	}
}

// BuildBar describes one bar group per source in breakdown order, with one bar per
// response present for that source.
func BuildBar(breakdown []models.BreakdownEntry) BarSpec {
	var groups []BarGroup
	groupIdx := make(map[string]int)
	seriesSeen := make(map[string]bool)
	var series []string

	for _, e := range breakdown {
		idx, ok := groupIdx[e.Source]
		if !ok {
			idx = len(groups)
			groupIdx[e.Source] = idx
			groups = append(groups, BarGroup{Source: e.Source})
		}
		color, _ := ResponseColor(e.Response)
		groups[idx].Bars = append(groups[idx].Bars, Bar{Response: e.Response, Count: e.Count, Color: color})

		if !seriesSeen[e.Response] {
			seriesSeen[e.Response] = true
			series = append(series, e.Response)
		}
	}

	sortResponses(series)
	for i := range groups {
		bars := groups[i].Bars
		sort.SliceStable(bars, func(a, b int) bool {
			return models.CompareResponses(bars[a].Response, bars[b].Response) < 0
		})
	}

	return BarSpec{
		Title:  BarTitle,
		XLabel: "Source",
		YLabel: "Count",
		Series: series,
		Groups: groups,
		Width:  DefaultChartWidth,
		Height: DefaultChartHeight,
	}
}

func sortResponses(codes []string) {
	sort.Slice(codes, func(i, j int) bool {
		return models.CompareResponses(codes[i], codes[j]) < 0
	})
}
