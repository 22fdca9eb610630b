// Package config provides configuration loading and defaults for memberpulse.
package config

import "github.com/hearthside-labs/memberpulse/internal/engagement"

// DefaultConfigDir is the default location for memberpulse configuration.
const DefaultConfigDir = "~/.config/memberpulse"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "memberpulse.db"

// DefaultSnapshotDirName is the directory (under the config dir) where JSON
// snapshots of fetched collections land.
const DefaultSnapshotDirName = "snapshots"

// DefaultLookbackDays is the trailing window for the engagement score.
const DefaultLookbackDays = engagement.DefaultLookbackDays

// DefaultTopWeekdays is how many weekdays the pattern summary ranks.
const DefaultTopWeekdays = engagement.DefaultTopWeekdays

// DefaultWeights holds the canonical per-category scoring weights.
var DefaultWeights = Weights{
	Attendance:        3,
	Volunteering:      5,
	Donation:          4,
	PrayerRequest:     2,
	SmallGroup:        3,
	EventRegistration: 2,
	ContentEngagement: 1,
}

// DefaultThresholds holds the canonical level thresholds.
var DefaultThresholds = engagement.DefaultThresholds

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
