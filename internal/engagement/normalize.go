package engagement

import (
	"strings"
	"time"
)

// RawRecord is an interaction or activity row as it comes out of the store,
// with the field aliases the two source tables use. Interactions carry
// interaction_type/interaction_date; activities carry activity_type and fall
// back to created_at for the timestamp.
type RawRecord struct {
	InteractionType string `json:"interaction_type,omitempty"`
	ActivityType    string `json:"activity_type,omitempty"`
	InteractionDate string `json:"interaction_date,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// ClassifierFunc maps a non-empty raw type string onto a category. A nil
// classifier means direct mapping: strings matching a canonical category name
// resolve to it, anything else falls back to content_engagement.
type ClassifierFunc func(rawType string) Category

// Normalize extracts the canonical (category, timestamp) pair from a raw row.
// Category source precedence is interaction_type then activity_type; when
// both are empty the record resolves to CategoryUnknown. Timestamp precedence
// is interaction_date then created_at; an unparseable or missing timestamp
// yields a nil OccurredAt, never an error.
func Normalize(raw RawRecord, classify ClassifierFunc) ActivityRecord {
	rawType := strings.TrimSpace(raw.InteractionType)
	if rawType == "" {
		rawType = strings.TrimSpace(raw.ActivityType)
	}

	var cat Category
	switch {
	case rawType == "":
		cat = CategoryUnknown
	case classify != nil:
		cat = classify(rawType)
	default:
		cat = canonicalCategory(rawType)
	}

	rawDate := raw.InteractionDate
	if strings.TrimSpace(rawDate) == "" {
		rawDate = raw.CreatedAt
	}

	return ActivityRecord{Category: cat, OccurredAt: ParseTimestamp(rawDate)}
}

// NormalizeAll applies Normalize to every row, preserving order.
func NormalizeAll(raws []RawRecord, classify ClassifierFunc) []ActivityRecord {
	records := make([]ActivityRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Normalize(raw, classify))
	}
	return records
}

// canonicalCategory maps a raw type string directly onto a category. Strings
// that are not an exact category name fall back to content_engagement rather
// than being dropped, so low-quality type data still contributes the lowest
// weight.
func canonicalCategory(rawType string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(rawType)))
	for _, known := range Categories {
		if c == known {
			return known
		}
	}
	return CategoryContentEngagement
}

// timestampLayouts are tried in order after UTC normalization.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp string, returning nil when the
// value is missing or unparseable. A trailing "Z" is rewritten to an explicit
// "+00:00" offset before parsing.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
