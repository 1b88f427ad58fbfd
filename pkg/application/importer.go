package application

import (
	"strings"
	"time"

	"github.com/nexphase/nexcareer/pkg/nlp"
)

// ImportRecord is one row of a bulk import, typically from CSV.
type ImportRecord struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	AppliedDate string `json:"appliedDate"`
	Notes       string `json:"notes"`
	URL         string `json:"url"`
}

// ImportError reports why the row at Index was skipped.
type ImportError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ImportResult holds the created rows and the rejected ones.
type ImportResult struct {
	Imported []Application `json:"imported"`
	Errors   []ImportError `json:"errors"`
}

var statusSynonyms = map[string]Status{
	"saved":        StatusSaved,
	"wishlist":     StatusSaved,
	"bookmarked":   StatusSaved,
	"interested":   StatusSaved,
	"to apply":     StatusSaved,
	"applied":      StatusApplied,
	"submitted":    StatusApplied,
	"sent":         StatusApplied,
	"pending":      StatusApplied,
	"in review":    StatusApplied,
	"interview":    StatusInterview,
	"interviewing": StatusInterview,
	"interviewed":  StatusInterview,
	"screening":    StatusInterview,
	"phone screen": StatusInterview,
	"onsite":       StatusInterview,
	"offer":        StatusOffer,
	"offered":      StatusOffer,
	"accepted":     StatusOffer,
	"rejected":     StatusRejected,
	"declined":     StatusRejected,
	"denied":       StatusRejected,
	"not selected": StatusRejected,
	"withdrawn":    StatusRejected,
}

// NormalizeStatus maps free-form status text onto a Status. Matching is
// case-insensitive and synonym-aware; anything unrecognised becomes Saved.
func NormalizeStatus(raw string) Status {
	if s, ok := statusSynonyms[nlp.Key(raw)]; ok {
		return s
	}
	return StatusSaved
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDateLenient tries the common spreadsheet date layouts and returns nil
// when none matches. The result is truncated to a UTC calendar day.
func ParseDateLenient(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
