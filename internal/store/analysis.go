package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
)

// UpsertAnalysis inserts or replaces the analysis row for a member. Keyed by
// member_id, last write wins; re-running a batch is therefore idempotent.
func (db *DB) UpsertAnalysis(a *AnalysisRow) error {
	_, err := db.conn.Exec(
		`INSERT INTO member_analysis
		(member_id, member_name, email, phone, engagement_score, engagement_level,
		 activity_patterns, last_activity_date, days_since_last_activity,
		 weeks_since_last_activity, analysis_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(member_id) DO UPDATE SET
			member_name               = excluded.member_name,
			email                     = excluded.email,
			phone                     = excluded.phone,
			engagement_score          = excluded.engagement_score,
			engagement_level          = excluded.engagement_level,
			activity_patterns         = excluded.activity_patterns,
			last_activity_date        = excluded.last_activity_date,
			days_since_last_activity  = excluded.days_since_last_activity,
			weeks_since_last_activity = excluded.weeks_since_last_activity,
			analysis_date             = excluded.analysis_date`,
		a.MemberID, a.MemberName, a.Email, a.Phone, a.EngagementScore,
		a.EngagementLevel, a.ActivityPatterns, a.LastActivityDate,
		a.DaysSinceLastActivity, a.WeeksSinceLastActivity, a.AnalysisDate,
	)
	return err
}

// GetAnalysis returns the stored analysis for a member, or nil if none exists.
func (db *DB) GetAnalysis(memberID string) (*AnalysisRow, error) {
	row := db.conn.QueryRow(analysisSelect+" WHERE member_id = ?", memberID)
	a, err := scanAnalysis(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// GetAnalyses returns all stored analyses ordered by descending score.
func (db *DB) GetAnalyses() ([]AnalysisRow, error) {
	rows, err := db.conn.Query(analysisSelect + " ORDER BY engagement_score DESC, member_id")
	if err != nil {
		return nil, fmt.Errorf("querying member_analysis: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var analyses []AnalysisRow
	for rows.Next() {
		a, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

const analysisSelect = `SELECT member_id, member_name, email, phone,
	engagement_score, engagement_level, activity_patterns, last_activity_date,
	days_since_last_activity, weeks_since_last_activity, analysis_date
	FROM member_analysis`

func scanAnalysis(scan func(...any) error) (*AnalysisRow, error) {
	var a AnalysisRow
	var email, phone sql.NullString
	if err := scan(
		&a.MemberID, &a.MemberName, &email, &phone, &a.EngagementScore,
		&a.EngagementLevel, &a.ActivityPatterns, &a.LastActivityDate,
		&a.DaysSinceLastActivity, &a.WeeksSinceLastActivity, &a.AnalysisDate,
	); err != nil {
		return nil, err
	}
	a.Email = email.String
	a.Phone = phone.String
	return &a, nil
}

// AnalysisRowFrom converts a computed analysis into its persisted form,
// serializing the pattern summary to JSON.
func AnalysisRowFrom(a engagement.Analysis) (*AnalysisRow, error) {
	patterns, err := json.Marshal(a.ActivityPatterns)
	if err != nil {
		return nil, fmt.Errorf("marshaling activity patterns: %w", err)
	}

	row := &AnalysisRow{
		MemberID:               a.MemberID,
		MemberName:             a.MemberName,
		Email:                  a.Email,
		Phone:                  a.Phone,
		EngagementScore:        a.EngagementScore,
		EngagementLevel:        string(a.EngagementLevel),
		ActivityPatterns:       string(patterns),
		DaysSinceLastActivity:  a.DaysSinceLastActivity,
		WeeksSinceLastActivity: a.WeeksSinceLastActivity,
		AnalysisDate:           a.AnalysisDate.UTC().Format(time.RFC3339),
	}
	if a.LastActivityDate != nil {
		s := a.LastActivityDate.UTC().Format(time.RFC3339)
		row.LastActivityDate = &s
	}
	return row, nil
}

// Patterns deserializes the stored pattern summary blob.
func (a *AnalysisRow) Patterns() (engagement.PatternSummary, error) {
	var summary engagement.PatternSummary
	if err := json.Unmarshal([]byte(a.ActivityPatterns), &summary); err != nil {
		return summary, fmt.Errorf("unmarshaling activity patterns: %w", err)
	}
	return summary, nil
}
