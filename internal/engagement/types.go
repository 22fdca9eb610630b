// Package engagement implements the scoring and activity-pattern core for
// member analysis. All functions in this package are pure: they operate on
// normalized records passed in and take "now" as a parameter, so the same
// inputs always produce the same outputs.
package engagement

import "time"

// Category is one of the fixed engagement-activity types used for weighting.
type Category string

const (
	CategoryAttendance        Category = "attendance"
	CategoryVolunteering      Category = "volunteering"
	CategoryDonation          Category = "donation"
	CategoryPrayerRequest     Category = "prayer_request"
	CategorySmallGroup        Category = "small_group"
	CategoryEventRegistration Category = "event_registration"
	CategoryContentEngagement Category = "content_engagement"

	// CategoryUnknown marks records whose source row carried no usable type
	// field at all. It scores at the fallback weight and is reported as its
	// own bucket in the category breakdown.
	CategoryUnknown Category = "unknown"
)

// Categories lists the seven canonical categories in weight-table order.
var Categories = []Category{
	CategoryAttendance,
	CategoryVolunteering,
	CategoryDonation,
	CategoryPrayerRequest,
	CategorySmallGroup,
	CategoryEventRegistration,
	CategoryContentEngagement,
}

// ActivityRecord is the normalized form of a raw interaction or activity row.
// OccurredAt is nil when the source row had no parseable date; such records
// are excluded from time-bucketed aggregates and from scoring but still count
// toward the category breakdown.
type ActivityRecord struct {
	Category   Category
	OccurredAt *time.Time
}

// Level is one of five ordinal engagement labels derived from the score.
type Level string

const (
	LevelHighlyActive Level = "highly_active"
	LevelActive       Level = "active"
	LevelModerate     Level = "moderate"
	LevelLow          Level = "low"
	LevelInactive     Level = "inactive"
)

// Levels lists all levels from highest to lowest.
var Levels = []Level{
	LevelHighlyActive,
	LevelActive,
	LevelModerate,
	LevelLow,
	LevelInactive,
}

// Rank returns the ordinal position of the level, higher meaning more
// engaged. Unknown labels rank below inactive.
func (l Level) Rank() int {
	switch l {
	case LevelHighlyActive:
		return 5
	case LevelActive:
		return 4
	case LevelModerate:
		return 3
	case LevelLow:
		return 2
	case LevelInactive:
		return 1
	}
	return 0
}

// Score is a windowed, weighted engagement score for one member.
type Score struct {
	// RawWeightedSum is the uncapped sum of category weights over in-window
	// records.
	RawWeightedSum float64 `json:"raw_weighted_sum"`

	// Capped is RawWeightedSum clamped to the 0-100 range.
	Capped float64 `json:"capped_score"`

	// Level is derived from Capped via the threshold table.
	Level Level `json:"level"`
}

// WeekdayCount is one entry in the top-weekday ranking.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// PatternSummary is the all-time (non-windowed) breakdown of a member's
// activity by category, month, and weekday.
type PatternSummary struct {
	// TotalActivities counts every normalized record, dated or not.
	TotalActivities int `json:"total_activities"`

	// CategoryBreakdown holds per-category counts; only categories with a
	// count above zero appear.
	CategoryBreakdown map[Category]int `json:"category_breakdown"`

	// MonthlyTrend holds per-calendar-month counts keyed "YYYY-MM", built
	// only from dated records.
	MonthlyTrend map[string]int `json:"monthly_trend"`

	// TopWeekdays ranks the most active weekdays by dated-record count,
	// descending, ties broken by first-seen order.
	TopWeekdays []WeekdayCount `json:"top_weekdays"`

	// ActivityFrequency is dated records per distinct active month, rounded
	// to two decimals; zero when no record carries a date.
	ActivityFrequency float64 `json:"activity_frequency"`
}

// Member carries the identity fields copied verbatim into an Analysis.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Analysis is the per-member composite of score, patterns, and recency
// metrics. It is the unit persisted by the batch driver.
type Analysis struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`

	EngagementScore float64 `json:"engagement_score"`
	EngagementLevel Level   `json:"engagement_level"`

	ActivityPatterns PatternSummary `json:"activity_patterns"`

	// LastActivityDate is the max OccurredAt across dated records, nil when
	// no record carries a date. Days/WeeksSinceLastActivity are nil in the
	// same case.
	LastActivityDate       *time.Time `json:"last_activity_date,omitempty"`
	DaysSinceLastActivity  *int       `json:"days_since_last_activity,omitempty"`
	WeeksSinceLastActivity *int       `json:"weeks_since_last_activity,omitempty"`

	AnalysisDate time.Time `json:"analysis_date"`
}
