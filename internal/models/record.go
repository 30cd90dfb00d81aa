// Package models defines the core domain entities for the surveyboard application.
// These models represent survey response rows, the user's filter selection, and the
// counts derived from them.
//
// Terminology (matching the spreadsheet's own column names):
//   - Topic Id: groups related survey questions. Spreadsheets store it as a number
//     or as text, so it is always compared in its normalized text form.
//   - Source: the origin or respondent group of a row.
//   - Response: a single-letter code, Y, N or M.
package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Response codes recognised by the dashboard. Any other code is kept in the data,
// counted in totals, and excluded from the named buckets.
const (
	ResponseYes   = "Y"
	ResponseNo    = "N"
	ResponseMaybe = "M"
)

// ResponseRecord is one row of the input spreadsheet.
// Records are created once at load time and never mutated.
type ResponseRecord struct {
	TopicID  string `json:"topic_id"` // Normalized, see NormalizeID
	Source   string `json:"source"`
	Response string `json:"response"`
}

// Validate checks that the record carries a topic.
func (r *ResponseRecord) Validate() error {
	if r.TopicID == "" {
		return errors.New("topic ID must not be empty")
	}
	return nil
}

// NormalizeID returns the canonical text form of a topic identifier.
// Whitespace is trimmed and whole numbers lose any fractional or padded form,
// so "1", "1.0" and " 01 " all normalize to "1".
func NormalizeID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return v
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}

// responseRank orders the known codes ahead of everything else.
var responseRank = map[string]int{
	ResponseYes:   0,
	ResponseNo:    1,
	ResponseMaybe: 2,
}

// CompareResponses orders response codes Y, N, M first, then any other code
// lexicographically. It returns a negative number when a sorts before b.
func CompareResponses(a, b string) int {
	ra, aKnown := responseRank[a]
	rb, bKnown := responseRank[b]
	switch {
	case aKnown && bKnown:
		return ra - rb
	case aKnown:
		return -1
	case bKnown:
		return 1
	}
	return strings.Compare(a, b)
}
