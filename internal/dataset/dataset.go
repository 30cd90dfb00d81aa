// Package dataset holds the survey table the dashboard reads from.
// A Dataset is loaded once at startup and is immutable afterwards, so any number of
// request handlers can share it by pointer without synchronization.
package dataset

import (
	"github.com/rewired-gh/surveyboard/internal/models"
)

// Dataset is the in-memory, read-only survey table
type Dataset struct {
	records []models.ResponseRecord
	topics  []string
	sources []string
}

// New builds a Dataset from records. Topic identifiers are normalized; topics and
// sources are collected in order of first appearance.
func New(records []models.ResponseRecord) *Dataset {
	d := &Dataset{
		records: make([]models.ResponseRecord, len(records)),
	}

	seenTopics := make(map[string]bool)
	seenSources := make(map[string]bool)
	for i, r := range records {
		r.TopicID = models.NormalizeID(r.TopicID)
		d.records[i] = r

		if !seenTopics[r.TopicID] {
			seenTopics[r.TopicID] = true
			d.topics = append(d.topics, r.TopicID)
		}
		if !seenSources[r.Source] {
			seenSources[r.Source] = true
			d.sources = append(d.sources, r.Source)
		}
	}

	return d
}

// Records returns the full table. The slice is shared and must not be modified.
func (d *Dataset) Records() []models.ResponseRecord {
	return d.records
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.records)
}

// Topics returns the distinct topic identifiers in order of first appearance
func (d *Dataset) Topics() []string {
	return append([]string(nil), d.topics...)
}

// Sources returns the distinct sources in order of first appearance
func (d *Dataset) Sources() []string {
	return append([]string(nil), d.sources...)
}

// DefaultTopic returns the first topic in the data, or "" for an empty table
func (d *Dataset) DefaultTopic() string {
	if len(d.topics) == 0 {
		return ""
	}
	return d.topics[0]
}

// HasTopic reports whether the normalized topic occurs in the data
func (d *Dataset) HasTopic(topicID string) bool {
	topicID = models.NormalizeID(topicID)
	for _, t := range d.topics {
		if t == topicID {
			return true
		}
	}
	return false
}
