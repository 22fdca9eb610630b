// Package store provides SQLite access to member, interaction, activity, and
// analysis rows for memberpulse.
package store

// MemberRow is a row from the members table.
type MemberRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// InteractionRow is a row from the member_interactions table. Type and date
// fields are free-text and may be empty; the engagement normalizer owns
// interpreting them.
type InteractionRow struct {
	ID              int64  `json:"id"`
	MemberID        string `json:"member_id"`
	InteractionType string `json:"interaction_type,omitempty"`
	InteractionDate string `json:"interaction_date,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// ActivityRow is a row from the member_activities table.
type ActivityRow struct {
	ID           int64  `json:"id"`
	MemberID     string `json:"member_id"`
	ActivityType string `json:"activity_type,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// AnalysisRow is a persisted member analysis. ActivityPatterns holds the
// pattern summary serialized as a JSON blob; nullable recency fields use
// pointers so "no dated activity" round-trips as NULL.
type AnalysisRow struct {
	MemberID               string  `json:"member_id"`
	MemberName             string  `json:"member_name"`
	Email                  string  `json:"email,omitempty"`
	Phone                  string  `json:"phone,omitempty"`
	EngagementScore        float64 `json:"engagement_score"`
	EngagementLevel        string  `json:"engagement_level"`
	ActivityPatterns       string  `json:"activity_patterns"`
	LastActivityDate       *string `json:"last_activity_date,omitempty"`
	DaysSinceLastActivity  *int    `json:"days_since_last_activity,omitempty"`
	WeeksSinceLastActivity *int    `json:"weeks_since_last_activity,omitempty"`
	AnalysisDate           string  `json:"analysis_date"`
}
