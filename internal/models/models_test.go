package models

import (
	"sort"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"1.0", "1"},
		{" 01 ", "1"},
		{"42.00", "42"},
		{"-3", "-3"},
		{"1.5", "1.5"},
		{"T-12", "T-12"},
		{"  abc ", "abc"},
		{"", ""},
		{"NaN", "NaN"},
		{"1e20", "1e20"},
	}

	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompareResponses(t *testing.T) {
	codes := []string{"X", "M", "A", "N", "Y"}
	sort.Slice(codes, func(i, j int) bool {
		return CompareResponses(codes[i], codes[j]) < 0
	})

	want := []string{"Y", "N", "M", "A", "X"}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("sorted codes = %v, want %v", codes, want)
		}
	}
}

func TestSelectionFiltersSource(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"all sources", Selection{TopicID: "1", Source: AllSources}, false},
		{"blank source", Selection{TopicID: "1"}, true},
		{"single source", Selection{TopicID: "1", Source: "Web"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.FiltersSource(); got != tt.want {
				t.Errorf("FiltersSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateCountsValidate(t *testing.T) {
	tests := []struct {
		name    string
		counts  AggregateCounts
		wantErr bool
	}{
		{"zero", AggregateCounts{}, false},
		{"exact", AggregateCounts{Total: 3, Yes: 2, No: 1}, false},
		{"unknown codes counted in total", AggregateCounts{Total: 5, Yes: 1, No: 1, Maybe: 1}, false},
		{"buckets exceed total", AggregateCounts{Total: 2, Yes: 2, No: 1}, true},
		{"negative", AggregateCounts{Total: 1, Yes: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.counts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("AggregateCounts.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAggregateCountsAdd(t *testing.T) {
	got := AggregateCounts{Total: 2, Yes: 1, No: 1}.Add(AggregateCounts{Total: 1, Maybe: 1})
	want := AggregateCounts{Total: 3, Yes: 1, No: 1, Maybe: 1}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}

func TestResponseRecordValidate(t *testing.T) {
	r := ResponseRecord{Source: "Web", Response: "Y"}
	if err := r.Validate(); err == nil {
		t.Error("expected error for empty topic ID")
	}
	r.TopicID = "1"
	if err := r.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
