package engagement

import (
	"testing"
	"time"
)

func TestNormalize_CategoryPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
		want Category
	}{
		{
			name: "interaction_type wins over activity_type",
			raw:  RawRecord{InteractionType: "attendance", ActivityType: "donation"},
			want: CategoryAttendance,
		},
		{
			name: "activity_type used when interaction_type empty",
			raw:  RawRecord{ActivityType: "volunteering"},
			want: CategoryVolunteering,
		},
		{
			name: "whitespace-only interaction_type falls through",
			raw:  RawRecord{InteractionType: "   ", ActivityType: "donation"},
			want: CategoryDonation,
		},
		{
			name: "both absent resolves to unknown",
			raw:  RawRecord{},
			want: CategoryUnknown,
		},
		{
			name: "unmapped type falls back to content_engagement",
			raw:  RawRecord{InteractionType: "mystery_meat"},
			want: CategoryContentEngagement,
		},
		{
			name: "case-insensitive canonical match",
			raw:  RawRecord{InteractionType: "Small_Group"},
			want: CategorySmallGroup,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, nil)
			if got.Category != tc.want {
				t.Errorf("Normalize category = %q, want %q", got.Category, tc.want)
			}
		})
	}
}

func TestNormalize_WithClassifier(t *testing.T) {
	rec := Normalize(RawRecord{InteractionType: "sunday_event_rsvp"}, ClassifyKeywords)
	if rec.Category != CategoryEventRegistration {
		t.Errorf("expected event_registration via classifier, got %q", rec.Category)
	}

	// Empty types never reach the classifier.
	rec = Normalize(RawRecord{}, ClassifyKeywords)
	if rec.Category != CategoryUnknown {
		t.Errorf("expected unknown for empty row, got %q", rec.Category)
	}
}

func TestNormalize_TimestampPrecedence(t *testing.T) {
	rec := Normalize(RawRecord{
		InteractionType: "attendance",
		InteractionDate: "2024-03-10T09:00:00Z",
		CreatedAt:       "2024-01-01T00:00:00Z",
	}, nil)
	if rec.OccurredAt == nil {
		t.Fatal("expected parsed timestamp")
	}
	if rec.OccurredAt.Month() != time.March {
		t.Errorf("expected interaction_date to win, got %v", rec.OccurredAt)
	}

	rec = Normalize(RawRecord{ActivityType: "donation", CreatedAt: "2024-05-01"}, nil)
	if rec.OccurredAt == nil || rec.OccurredAt.Month() != time.May {
		t.Errorf("expected created_at fallback, got %v", rec.OccurredAt)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
	}{
		{"rfc3339 with offset", "2024-01-15T10:30:00+02:00", false},
		{"trailing Z", "2024-01-15T10:30:00Z", false},
		{"date only", "2024-01-15", false},
		{"space-separated", "2024-01-15 10:30:00", false},
		{"no seconds-level garbage", "last tuesday", true},
		{"empty", "", true},
		{"whitespace", "  ", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTimestamp(tc.input)
			if (got == nil) != tc.wantNil {
				t.Errorf("ParseTimestamp(%q) = %v, wantNil=%v", tc.input, got, tc.wantNil)
			}
		})
	}
}

func TestParseTimestamp_ZEquivalentToExplicitUTC(t *testing.T) {
	z := ParseTimestamp("2024-06-01T12:00:00Z")
	explicit := ParseTimestamp("2024-06-01T12:00:00+00:00")
	if z == nil || explicit == nil {
		t.Fatal("expected both forms to parse")
	}
	if !z.Equal(*explicit) {
		t.Errorf("Z form %v != explicit UTC form %v", z, explicit)
	}
}

func TestNormalizeAll_PreservesOrderAndLength(t *testing.T) {
	raws := []RawRecord{
		{InteractionType: "attendance", InteractionDate: "2024-01-01"},
		{ActivityType: "donation"},
		{},
	}
	records := NormalizeAll(raws, nil)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Category != CategoryAttendance ||
		records[1].Category != CategoryDonation ||
		records[2].Category != CategoryUnknown {
		t.Errorf("unexpected categories: %+v", records)
	}
	if records[1].OccurredAt != nil || records[2].OccurredAt != nil {
		t.Error("expected nil timestamps for undated rows")
	}
}
