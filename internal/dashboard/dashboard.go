// Package dashboard binds the two dropdown selections to the six dashboard charts.
//
// Service.Update is the callback the presentation layers (HTTP and Telegram) invoke
// on every selection change. The pie chart and the four gauges honour both the topic
// and the source selection; the bar chart honours the topic only.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/rewired-gh/surveyboard/internal/aggregate"
	"github.com/rewired-gh/surveyboard/internal/charts"
	"github.com/rewired-gh/surveyboard/internal/dataset"
	"github.com/rewired-gh/surveyboard/internal/models"
)

// Chart names, as used in URLs and bot commands
const (
	ChartPie   = "pie"
	ChartBar   = "bar"
	ChartTotal = "total"
	ChartYes   = "yes"
	ChartNo    = "no"
	ChartMaybe = "maybe"
)

// ChartNames lists the six charts in page order
var ChartNames = []string{ChartTotal, ChartYes, ChartNo, ChartMaybe, ChartPie, ChartBar}

// ErrUnknownChart is returned by Chart for a name outside ChartNames
var ErrUnknownChart = errors.New("unknown chart")

// Options are the dropdown choices
type Options struct {
	Topics  []string         `json:"topics"`
	Sources []string         `json:"sources"` // AllSources first
	Default models.Selection `json:"default"`
}

// Dashboard is the full output of one selection change
type Dashboard struct {
	Selection models.Selection       `json:"selection"`
	Counts    models.AggregateCounts `json:"counts"`
	Pie       charts.PieSpec         `json:"pie"`
	Bar       charts.BarSpec         `json:"bar"`
	Total     charts.DonutSpec       `json:"total"`
	Yes       charts.DonutSpec       `json:"yes"`
	No        charts.DonutSpec       `json:"no"`
	Maybe     charts.DonutSpec       `json:"maybe"`
}

// Service computes dashboards over a shared, immutable dataset
type Service struct {
	data   *dataset.Dataset
	layout charts.Layout
}

// New creates a Service. The dataset is shared, never copied.
func New(data *dataset.Dataset, layout charts.Layout) *Service {
	return &Service{
		data:   data,
		layout: layout,
	}
}

// Dataset returns the table the service reads from
func (s *Service) Dataset() *dataset.Dataset {
	return s.data
}

// Options returns the dropdown choices and the default selection
func (s *Service) Options() Options {
	sources := append([]string{models.AllSources}, s.data.Sources()...)
	return Options{
		Topics:  s.data.Topics(),
		Sources: sources,
		Default: s.Resolve("", models.AllSources),
	}
}

// Resolve turns raw dropdown values into a Selection. An empty topic selects the
// first topic in the data. The source is kept as given: an empty source selects
// rows whose source cell is blank, so callers default a missing source to AllSources.
func (s *Service) Resolve(topic, source string) models.Selection {
	topic = models.NormalizeID(topic)
	if topic == "" {
		topic = s.data.DefaultTopic()
	}
	return models.Selection{TopicID: topic, Source: source}
}

// Update recomputes every chart for sel
func (s *Service) Update(sel models.Selection) Dashboard {
	filtered := aggregate.Filter(s.data.Records(), sel.TopicID, sel.Source)
	counts := aggregate.Count(filtered)

	return Dashboard{
		Selection: sel,
		Counts:    counts,
		Pie:       s.layout.Pie(charts.BuildPie(filtered)),
		Bar:       s.bar(sel),
		Total:     s.donut(ChartTotal, counts),
		Yes:       s.donut(ChartYes, counts),
		No:        s.donut(ChartNo, counts),
		Maybe:     s.donut(ChartMaybe, counts),
	}
}

// Chart builds one chart for sel by name: a charts.PieSpec, charts.BarSpec or
// charts.DonutSpec. Only the work that chart needs is done.
func (s *Service) Chart(sel models.Selection, name string) (any, error) {
	switch name {
	case ChartBar:
		return s.bar(sel), nil
	case ChartPie:
		return s.layout.Pie(charts.BuildPie(aggregate.Filter(s.data.Records(), sel.TopicID, sel.Source))), nil
	case ChartTotal, ChartYes, ChartNo, ChartMaybe:
		return s.donut(name, aggregate.Aggregate(s.data.Records(), sel.TopicID, sel.Source)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

func (s *Service) bar(sel models.Selection) charts.BarSpec {
	return s.layout.Bar(charts.BuildBar(aggregate.BreakdownBySourceAndResponse(s.data.Records(), sel.TopicID)))
}

// donut builds the gauge named by one of the four gauge chart names
func (s *Service) donut(name string, counts models.AggregateCounts) charts.DonutSpec {
	var (
		title, color string
		value        int
	)
	switch name {
	case ChartTotal:
		title, value, color = "Total", counts.Total, charts.ColorTotal
	case ChartYes:
		title, value, color = "Yes", counts.Yes, charts.ColorYes
	case ChartNo:
		title, value, color = "No", counts.No, charts.ColorNo
	case ChartMaybe:
		title, value, color = "Maybe", counts.Maybe, charts.ColorMaybe
	}
	d := s.layout.Donut(charts.BuildDonut(value, counts.Total, color))
	d.Title = title
	return d
}
