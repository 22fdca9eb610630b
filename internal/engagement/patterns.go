package engagement

import (
	"math"
	"sort"
)

// DefaultTopWeekdays is how many weekdays the ranking keeps.
const DefaultTopWeekdays = 3

// AggregatePatterns builds the all-time pattern summary for a record set. No
// recency filter applies here, in contrast to ComputeScore. Undated records
// count toward TotalActivities and the category breakdown but are excluded
// from the monthly trend, weekday ranking, and activity frequency.
func AggregatePatterns(records []ActivityRecord, topWeekdays int) PatternSummary {
	if topWeekdays <= 0 {
		topWeekdays = DefaultTopWeekdays
	}

	summary := PatternSummary{
		TotalActivities:   len(records),
		CategoryBreakdown: make(map[Category]int),
		MonthlyTrend:      make(map[string]int),
	}

	// Weekday tallies keep first-seen order so ties rank stably.
	weekdayCounts := make(map[string]int)
	var weekdayOrder []string

	for _, r := range records {
		summary.CategoryBreakdown[r.Category]++

		if r.OccurredAt == nil {
			continue
		}

		summary.MonthlyTrend[r.OccurredAt.Format("2006-01")]++

		weekday := r.OccurredAt.Weekday().String()
		if _, seen := weekdayCounts[weekday]; !seen {
			weekdayOrder = append(weekdayOrder, weekday)
		}
		weekdayCounts[weekday]++
	}

	ranked := make([]WeekdayCount, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		ranked = append(ranked, WeekdayCount{Weekday: weekday, Count: weekdayCounts[weekday]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topWeekdays {
		ranked = ranked[:topWeekdays]
	}
	summary.TopWeekdays = ranked

	if months := len(summary.MonthlyTrend); months > 0 {
		dated := 0
		for _, n := range summary.MonthlyTrend {
			dated += n
		}
		summary.ActivityFrequency = round2(float64(dated) / float64(months))
	}

	return summary
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
