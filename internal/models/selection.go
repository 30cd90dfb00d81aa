package models

import (
	"errors"
	"fmt"
)

// AllSources is the source selection that disables source filtering.
const AllSources = "All"

// Selection is the user's current filter state.
type Selection struct {
	TopicID string `json:"topic_id"`
	Source  string `json:"source"` // AllSources means no source filter
}

// FiltersSource reports whether the selection restricts rows to a single source.
// An empty Source selects the rows whose source cell is blank.
func (s Selection) FiltersSource() bool {
	return s.Source != AllSources
}

// AggregateCounts holds the counts for the rows matching a Selection.
type AggregateCounts struct {
	Total int `json:"total"`
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// Validate checks that no bucket is negative and the named buckets never
// exceed the total. Rows with an unrecognised code make the sum smaller than Total.
func (c AggregateCounts) Validate() error {
	if c.Total < 0 || c.Yes < 0 || c.No < 0 || c.Maybe < 0 {
		return errors.New("counts must not be negative")
	}
	if sum := c.Yes + c.No + c.Maybe; sum > c.Total {
		return fmt.Errorf("yes + no + maybe (%d) must not exceed total (%d)", sum, c.Total)
	}
	return nil
}

// Add returns the field-wise sum of two counts.
func (c AggregateCounts) Add(o AggregateCounts) AggregateCounts {
	return AggregateCounts{
		Total: c.Total + o.Total,
		Yes:   c.Yes + o.Yes,
		No:    c.No + o.No,
		Maybe: c.Maybe + o.Maybe,
	}
}

// BreakdownEntry is the number of rows sharing one (source, response) pair.
type BreakdownEntry struct {
	Source   string `json:"source"`
	Response string `json:"response"`
	Count    int    `json:"count"`
}
