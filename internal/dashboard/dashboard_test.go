package dashboard

import (
	"errors"
	"testing"

	"github.com/rewired-gh/surveyboard/internal/charts"
	"github.com/rewired-gh/surveyboard/internal/dataset"
	"github.com/rewired-gh/surveyboard/internal/models"
)

func newService() *Service {
	data := dataset.New([]models.ResponseRecord{
		{TopicID: "1", Source: "A", Response: "Y"},
		{TopicID: "1", Source: "A", Response: "N"},
		{TopicID: "1", Source: "B", Response: "Y"},
		{TopicID: "2", Source: "C", Response: "M"},
	})
	return New(data, charts.Layout{})
}

func TestOptions(t *testing.T) {
	opts := newService().Options()

	if len(opts.Topics) != 2 || opts.Topics[0] != "1" {
		t.Errorf("unexpected topics: %v", opts.Topics)
	}
	wantSources := []string{models.AllSources, "A", "B", "C"}
	if len(opts.Sources) != len(wantSources) {
		t.Fatalf("unexpected sources: %v", opts.Sources)
	}
	for i := range wantSources {
		if opts.Sources[i] != wantSources[i] {
			t.Errorf("sources = %v, want %v", opts.Sources, wantSources)
		}
	}
	if opts.Default != (models.Selection{TopicID: "1", Source: models.AllSources}) {
		t.Errorf("unexpected default selection: %+v", opts.Default)
	}
}

func TestResolve(t *testing.T) {
	s := newService()

	tests := []struct {
		topic, source string
		want          models.Selection
	}{
		{"", models.AllSources, models.Selection{TopicID: "1", Source: models.AllSources}},
		{"2.0", models.AllSources, models.Selection{TopicID: "2", Source: models.AllSources}},
		{"1", "", models.Selection{TopicID: "1", Source: ""}},
		{"1", "B", models.Selection{TopicID: "1", Source: "B"}},
		{"99", "Z", models.Selection{TopicID: "99", Source: "Z"}},
	}
	for _, tt := range tests {
		if got := s.Resolve(tt.topic, tt.source); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %+v, want %+v", tt.topic, tt.source, got, tt.want)
		}
	}
}

func TestUpdateAllSources(t *testing.T) {
	d := newService().Update(models.Selection{TopicID: "1", Source: models.AllSources})

	want := models.AggregateCounts{Total: 3, Yes: 2, No: 1}
	if d.Counts != want {
		t.Errorf("counts = %+v, want %+v", d.Counts, want)
	}

	if d.Total.Label != "3" || d.Total.Filled != 1 || d.Total.Segments[0].Color != charts.ColorTotal {
		t.Errorf("unexpected total gauge: %+v", d.Total)
	}
	if d.Yes.Label != "2" || d.Yes.Total != 3 {
		t.Errorf("unexpected yes gauge: %+v", d.Yes)
	}
	if d.Maybe.Label != "0" || d.Maybe.Filled != 0 {
		t.Errorf("unexpected maybe gauge: %+v", d.Maybe)
	}
	if d.Yes.Title != "Yes" || d.No.Title != "No" {
		t.Errorf("gauges should be titled: %q %q", d.Yes.Title, d.No.Title)
	}
	if d.Pie.Total != 3 || len(d.Pie.Segments) != 2 {
		t.Errorf("unexpected pie: %+v", d.Pie)
	}
}

func TestUpdateBarIgnoresSourceSelection(t *testing.T) {
	s := newService()
	all := s.Update(models.Selection{TopicID: "1", Source: models.AllSources})
	single := s.Update(models.Selection{TopicID: "1", Source: "B"})

	if single.Counts != (models.AggregateCounts{Total: 1, Yes: 1}) {
		t.Errorf("unexpected counts for source B: %+v", single.Counts)
	}
	if single.Pie.Total != 1 {
		t.Errorf("pie should honour the source filter: %+v", single.Pie)
	}

	if len(single.Bar.Groups) != 2 || len(all.Bar.Groups) != 2 {
		t.Fatalf("bar chart should show every source of the topic: %+v", single.Bar.Groups)
	}
	if single.Bar.Groups[0].Count("Y") != 1 || single.Bar.Groups[0].Count("N") != 1 || single.Bar.Groups[1].Count("Y") != 1 {
		t.Errorf("unexpected bar groups: %+v", single.Bar.Groups)
	}
}

func TestUpdateUnknownSelection(t *testing.T) {
	d := newService().Update(models.Selection{TopicID: "42", Source: "Nope"})

	if d.Counts != (models.AggregateCounts{}) {
		t.Errorf("expected zero counts, got %+v", d.Counts)
	}
	for _, g := range []charts.DonutSpec{d.Total, d.Yes, d.No, d.Maybe} {
		if g.Filled != 0 || g.Label != "0" {
			t.Errorf("expected neutral gauge, got %+v", g)
		}
	}
	if len(d.Pie.Segments) != 0 || len(d.Bar.Groups) != 0 {
		t.Errorf("expected empty pie and bar, got %+v %+v", d.Pie, d.Bar)
	}
}

func TestUpdateAppliesLayout(t *testing.T) {
	data := dataset.New([]models.ResponseRecord{{TopicID: "1", Source: "A", Response: "Y"}})
	s := New(data, charts.Layout{DonutWidth: 150, DonutHeight: 120, ChartWidth: 800, ChartHeight: 500})

	d := s.Update(s.Resolve("", models.AllSources))
	if d.Yes.Width != 150 || d.Yes.Height != 120 {
		t.Errorf("unexpected donut size %dx%d", d.Yes.Width, d.Yes.Height)
	}
	if d.Pie.Width != 800 || d.Bar.Height != 500 {
		t.Errorf("unexpected chart sizes: pie %d, bar %d", d.Pie.Width, d.Bar.Height)
	}
}

func TestChart(t *testing.T) {
	s := newService()
	sel := models.Selection{TopicID: "1", Source: "A"}
	d := s.Update(sel)

	for _, name := range ChartNames {
		spec, err := s.Chart(sel, name)
		if err != nil {
			t.Errorf("Chart(%q) failed: %v", name, err)
			continue
		}
		var want any
		switch name {
		case ChartPie:
			want = d.Pie
		case ChartTotal:
			want = d.Total
		case ChartYes:
			want = d.Yes
		case ChartNo:
			want = d.No
		case ChartMaybe:
			want = d.Maybe
		}
		switch got := spec.(type) {
		case charts.PieSpec:
			if name != ChartPie || got.Total != d.Pie.Total || len(got.Segments) != len(d.Pie.Segments) {
				t.Errorf("Chart(%s) = %+v, want %+v", name, got, want)
			}
		case charts.BarSpec:
			if name != ChartBar || len(got.Groups) != len(d.Bar.Groups) {
				t.Errorf("Chart(%s) = %+v, want %+v", name, got, d.Bar)
			}
		case charts.DonutSpec:
			w, ok := want.(charts.DonutSpec)
			if !ok || got.Title != w.Title || got.Label != w.Label || got.Filled != w.Filled || got.Total != w.Total {
				t.Errorf("Chart(%s) = %+v, want %+v", name, got, want)
			}
		default:
			t.Errorf("Chart(%s) returned %T", name, spec)
		}
	}

	if _, err := s.Chart(sel, "radar"); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("expected ErrUnknownChart, got %v", err)
	}
}

func TestBlankSourceIsItsOwnSelection(t *testing.T) {
	data := dataset.New([]models.ResponseRecord{
		{TopicID: "1", Source: "A", Response: "Y"},
		{TopicID: "1", Source: "", Response: "N"},
	})
	s := New(data, charts.Layout{})

	if opts := s.Options(); len(opts.Sources) != 3 || opts.Sources[2] != "" {
		t.Fatalf("blank source should be offered after All and A: %q", opts.Sources)
	}

	blank := s.Update(s.Resolve("1", ""))
	if blank.Counts != (models.AggregateCounts{Total: 1, No: 1}) {
		t.Errorf("blank source counts = %+v", blank.Counts)
	}
	all := s.Update(s.Resolve("1", models.AllSources))
	if all.Counts != (models.AggregateCounts{Total: 2, Yes: 1, No: 1}) {
		t.Errorf("all sources counts = %+v", all.Counts)
	}
}
