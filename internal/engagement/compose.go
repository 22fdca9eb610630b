package engagement

import "time"

// Compose builds the per-member analysis from one record set. The scorer and
// aggregator run independently on the same records: the score is windowed by
// opts.LookbackDays, the pattern summary is all-time. Calling Compose twice
// with identical inputs and the same now produces identical output; callers
// that need determinism must pin now.
func Compose(member Member, records []ActivityRecord, opts Options, now time.Time) Analysis {
	opts = opts.withDefaults()
	score := ScoreRecords(records, opts, now)
	patterns := AggregatePatterns(records, opts.TopWeekdays)

	analysis := Analysis{
		MemberID:         member.ID,
		MemberName:       member.Name,
		Email:            member.Email,
		Phone:            member.Phone,
		EngagementScore:  score.Capped,
		EngagementLevel:  score.Level,
		ActivityPatterns: patterns,
		AnalysisDate:     now,
	}

	var last *time.Time
	for i := range records {
		t := records[i].OccurredAt
		if t == nil {
			continue
		}
		if last == nil || t.After(*last) {
			last = t
		}
	}

	if last != nil {
		analysis.LastActivityDate = last
		days := int(now.Sub(*last).Hours() / 24)
		weeks := days / 7
		analysis.DaysSinceLastActivity = &days
		analysis.WeeksSinceLastActivity = &weeks
	}

	return analysis
}
