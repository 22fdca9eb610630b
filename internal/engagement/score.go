package engagement

import "time"

// DefaultLookbackDays is the trailing window within which activity counts
// toward the engagement score. The pattern summary deliberately ignores this
// window: the score reflects recent engagement, the summary all-time.
const DefaultLookbackDays = 90

// MaxScore caps the weighted sum.
const MaxScore = 100

// fallbackWeight applies to unknown or unmapped categories, matching the
// content_engagement weight so weak signal is kept rather than dropped.
const fallbackWeight = 1

// DefaultWeights is the canonical per-category weight table.
var DefaultWeights = map[Category]float64{
	CategoryAttendance:        3,
	CategoryVolunteering:      5,
	CategoryDonation:          4,
	CategoryPrayerRequest:     2,
	CategorySmallGroup:        3,
	CategoryEventRegistration: 2,
	CategoryContentEngagement: 1,
}

// Thresholds holds the inclusive lower score bound for each level above
// inactive. Levels are evaluated highest-first.
type Thresholds struct {
	HighlyActive float64 `mapstructure:"highly_active"`
	Active       float64 `mapstructure:"active"`
	Moderate     float64 `mapstructure:"moderate"`
	Low          float64 `mapstructure:"low"`
}

// DefaultThresholds is the canonical level threshold table.
var DefaultThresholds = Thresholds{
	HighlyActive: 80,
	Active:       60,
	Moderate:     40,
	Low:          20,
}

// Options bundles the tunables for scoring and aggregation. The zero value
// of any field means "use the canonical default".
type Options struct {
	LookbackDays int
	TopWeekdays  int
	Weights      map[Category]float64
	Thresholds   Thresholds
}

// DefaultOptions returns Options populated with every canonical default.
func DefaultOptions() Options {
	return Options{
		LookbackDays: DefaultLookbackDays,
		TopWeekdays:  DefaultTopWeekdays,
		Weights:      DefaultWeights,
		Thresholds:   DefaultThresholds,
	}
}

func (o Options) withDefaults() Options {
	if o.LookbackDays <= 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.TopWeekdays <= 0 {
		o.TopWeekdays = DefaultTopWeekdays
	}
	if o.Weights == nil {
		o.Weights = DefaultWeights
	}
	if (o.Thresholds == Thresholds{}) {
		o.Thresholds = DefaultThresholds
	}
	return o
}

// WeightFor returns the weight for a category from the given table, falling
// back to the unknown-category weight for anything the table does not name.
func WeightFor(cat Category, weights map[Category]float64) float64 {
	if w, ok := weights[cat]; ok {
		return w
	}
	return fallbackWeight
}

// ComputeScore scores records within the lookback window against the
// canonical weight table. See ScoreRecords.
func ComputeScore(records []ActivityRecord, lookbackDays int, now time.Time) Score {
	return ScoreRecords(records, Options{LookbackDays: lookbackDays}, now)
}

// ScoreRecords computes the windowed, weighted engagement score. A record
// contributes only when it carries a date and that date falls at or after
// now minus the lookback window. Empty input yields score 0, level inactive;
// no error paths exist.
func ScoreRecords(records []ActivityRecord, opts Options, now time.Time) Score {
	opts = opts.withDefaults()
	cutoff := now.AddDate(0, 0, -opts.LookbackDays)

	var sum float64
	for _, r := range records {
		if r.OccurredAt == nil || r.OccurredAt.Before(cutoff) {
			continue
		}
		sum += WeightFor(r.Category, opts.Weights)
	}

	capped := sum
	if capped > MaxScore {
		capped = MaxScore
	}

	return Score{
		RawWeightedSum: sum,
		Capped:         capped,
		Level:          LevelForScoreWith(capped, opts.Thresholds),
	}
}

// LevelForScore derives the engagement level from a capped score using the
// canonical thresholds. It is a pure function of the score.
func LevelForScore(score float64) Level {
	return LevelForScoreWith(score, DefaultThresholds)
}

// LevelForScoreWith derives the level using a caller-supplied threshold
// table, evaluated highest-first with inclusive lower bounds. A member with
// no activity at all still lands on inactive (score 0) rather than a
// distinct no-data state.
func LevelForScoreWith(score float64, t Thresholds) Level {
	switch {
	case score >= t.HighlyActive:
		return LevelHighlyActive
	case score >= t.Active:
		return LevelActive
	case score >= t.Moderate:
		return LevelModerate
	case score >= t.Low:
		return LevelLow
	}
	return LevelInactive
}
