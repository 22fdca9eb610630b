package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composeNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

var composeMember = Member{
	ID:    "m-001",
	Name:  "Ada Martin",
	Email: "ada@example.org",
	Phone: "555-0101",
}

func TestCompose_IdentityFieldsCopied(t *testing.T) {
	a := Compose(composeMember, nil, DefaultOptions(), composeNow)
	assert.Equal(t, "m-001", a.MemberID)
	assert.Equal(t, "Ada Martin", a.MemberName)
	assert.Equal(t, "ada@example.org", a.Email)
	assert.Equal(t, "555-0101", a.Phone)
	assert.Equal(t, composeNow, a.AnalysisDate)
}

func TestCompose_NoDatedRecords(t *testing.T) {
	records := []ActivityRecord{{Category: CategoryDonation}}
	a := Compose(composeMember, records, DefaultOptions(), composeNow)

	assert.Nil(t, a.LastActivityDate)
	assert.Nil(t, a.DaysSinceLastActivity)
	assert.Nil(t, a.WeeksSinceLastActivity)
	assert.Equal(t, LevelInactive, a.EngagementLevel)
	assert.Equal(t, 1, a.ActivityPatterns.TotalActivities)
}

func TestCompose_RecencyMetrics(t *testing.T) {
	last := composeNow.AddDate(0, 0, -17)
	older := composeNow.AddDate(0, 0, -60)
	records := []ActivityRecord{
		{Category: CategoryAttendance, OccurredAt: &older},
		{Category: CategoryVolunteering, OccurredAt: &last},
	}

	a := Compose(composeMember, records, DefaultOptions(), composeNow)

	require.NotNil(t, a.LastActivityDate)
	assert.True(t, a.LastActivityDate.Equal(last))
	require.NotNil(t, a.DaysSinceLastActivity)
	assert.Equal(t, 17, *a.DaysSinceLastActivity)
	require.NotNil(t, a.WeeksSinceLastActivity)
	assert.Equal(t, 2, *a.WeeksSinceLastActivity)
}

func TestCompose_ScoreWindowedPatternsAllTime(t *testing.T) {
	// One record inside the window, one far outside. The score sees only
	// the recent record; the pattern summary sees both.
	recent := composeNow.AddDate(0, 0, -5)
	ancient := composeNow.AddDate(-2, 0, 0)
	records := []ActivityRecord{
		{Category: CategoryVolunteering, OccurredAt: &recent},
		{Category: CategoryDonation, OccurredAt: &ancient},
	}

	a := Compose(composeMember, records, Options{LookbackDays: 90}, composeNow)

	assert.Equal(t, 5.0, a.EngagementScore)
	assert.Equal(t, 2, a.ActivityPatterns.TotalActivities)
	assert.Equal(t, 1, a.ActivityPatterns.CategoryBreakdown[CategoryDonation])
}

func TestCompose_Deterministic(t *testing.T) {
	when := composeNow.AddDate(0, 0, -10)
	records := []ActivityRecord{
		{Category: CategoryAttendance, OccurredAt: &when},
		{Category: CategoryPrayerRequest},
	}

	first := Compose(composeMember, records, Options{LookbackDays: 90, TopWeekdays: 3}, composeNow)
	second := Compose(composeMember, records, Options{LookbackDays: 90, TopWeekdays: 3}, composeNow)
	assert.Equal(t, first, second, "pinned now must produce identical output")
}
