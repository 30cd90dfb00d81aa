// Package aggregate filters survey records by topic and source and counts them.
//
// Topics are matched on their normalized text form (see models.NormalizeID), so a
// selection of "1" matches rows whose spreadsheet cell held the number 1 or 1.0.
// A source of models.AllSources disables source filtering.
//
// Every function here is pure: it reads the records it is given and returns a new
// value. An unknown topic or source is not an error, it simply matches nothing.
package aggregate

import (
	"sort"

	"github.com/rewired-gh/surveyboard/internal/models"
)

// Filter returns the records matching topicID and, unless source is
// models.AllSources, source.
func Filter(records []models.ResponseRecord, topicID, source string) []models.ResponseRecord {
	sel := models.Selection{TopicID: models.NormalizeID(topicID), Source: source}

	var filtered []models.ResponseRecord
	for _, r := range records {
		if matches(r, sel) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Aggregate counts the records matching topicID and source.
func Aggregate(records []models.ResponseRecord, topicID, source string) models.AggregateCounts {
	sel := models.Selection{TopicID: models.NormalizeID(topicID), Source: source}

	var counts models.AggregateCounts
	for _, r := range records {
		if matches(r, sel) {
			tally(&counts, r.Response)
		}
	}
	return counts
}

// Count tallies an already filtered set of records.
func Count(records []models.ResponseRecord) models.AggregateCounts {
	var counts models.AggregateCounts
	for _, r := range records {
		tally(&counts, r.Response)
	}
	return counts
}

// BreakdownBySourceAndResponse counts the records of one topic per (source, response)
// pair. The source selection is deliberately not applied. Entries are ordered by
// source, then response.
func BreakdownBySourceAndResponse(records []models.ResponseRecord, topicID string) []models.BreakdownEntry {
	topicID = models.NormalizeID(topicID)

	type key struct{ source, response string }
	counts := make(map[key]int)
	for _, r := range records {
		if r.TopicID != topicID {
			continue
		}
		counts[key{r.Source, r.Response}]++
	}

	entries := make([]models.BreakdownEntry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, models.BreakdownEntry{Source: k.source, Response: k.response, Count: n})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Response < entries[j].Response
	})

	return entries
}

// matches expects sel.TopicID to be normalized already; record topics are
// normalized at load time.
func matches(r models.ResponseRecord, sel models.Selection) bool {
	if r.TopicID != sel.TopicID {
		return false
	}
	if sel.FiltersSource() && r.Source != sel.Source {
		return false
	}
	return true
}

func tally(counts *models.AggregateCounts, response string) {
	counts.Total++
	switch response {
	case models.ResponseYes:
		counts.Yes++
	case models.ResponseNo:
		counts.No++
	case models.ResponseMaybe:
		counts.Maybe++
	}
}
