package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
)

// Config is the top-level memberpulse configuration.
type Config struct {
	DBPath            string                 `mapstructure:"db_path"`
	SnapshotDir       string                 `mapstructure:"snapshot_dir"`
	LookbackDays      int                    `mapstructure:"lookback_days"`
	TopWeekdays       int                    `mapstructure:"top_weekdays"`
	KeywordClassifier bool                   `mapstructure:"keyword_classifier"`
	Weights           Weights                `mapstructure:"weights"`
	Thresholds        engagement.Thresholds  `mapstructure:"thresholds"`
	Output            Output                 `mapstructure:"output"`
}

// Weights defines the per-category scoring weights.
type Weights struct {
	Attendance        float64 `mapstructure:"attendance"`
	Volunteering      float64 `mapstructure:"volunteering"`
	Donation          float64 `mapstructure:"donation"`
	PrayerRequest     float64 `mapstructure:"prayer_request"`
	SmallGroup        float64 `mapstructure:"small_group"`
	EventRegistration float64 `mapstructure:"event_registration"`
	ContentEngagement float64 `mapstructure:"content_engagement"`
}

// Map converts the weight struct into the table form the scorer consumes.
func (w Weights) Map() map[engagement.Category]float64 {
	return map[engagement.Category]float64{
		engagement.CategoryAttendance:        w.Attendance,
		engagement.CategoryVolunteering:      w.Volunteering,
		engagement.CategoryDonation:          w.Donation,
		engagement.CategoryPrayerRequest:     w.PrayerRequest,
		engagement.CategorySmallGroup:        w.SmallGroup,
		engagement.CategoryEventRegistration: w.EventRegistration,
		engagement.CategoryContentEngagement: w.ContentEngagement,
	}
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// EngagementOptions converts the configured tunables into the options the
// scoring core consumes.
func (c *Config) EngagementOptions() engagement.Options {
	return engagement.Options{
		LookbackDays: c.LookbackDays,
		TopWeekdays:  c.TopWeekdays,
		Weights:      c.Weights.Map(),
		Thresholds:   c.Thresholds,
	}
}

// Classifier returns the configured category classifier, nil when direct
// category mapping is in effect.
func (c *Config) Classifier() engagement.ClassifierFunc {
	if c.KeywordClassifier {
		return engagement.ClassifyKeywords
	}
	return nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("snapshot_dir", filepath.Join(DefaultConfigDir, DefaultSnapshotDirName))
	v.SetDefault("lookback_days", DefaultLookbackDays)
	v.SetDefault("top_weekdays", DefaultTopWeekdays)
	v.SetDefault("keyword_classifier", false)
	v.SetDefault("weights.attendance", DefaultWeights.Attendance)
	v.SetDefault("weights.volunteering", DefaultWeights.Volunteering)
	v.SetDefault("weights.donation", DefaultWeights.Donation)
	v.SetDefault("weights.prayer_request", DefaultWeights.PrayerRequest)
	v.SetDefault("weights.small_group", DefaultWeights.SmallGroup)
	v.SetDefault("weights.event_registration", DefaultWeights.EventRegistration)
	v.SetDefault("weights.content_engagement", DefaultWeights.ContentEngagement)
	v.SetDefault("thresholds.highly_active", DefaultThresholds.HighlyActive)
	v.SetDefault("thresholds.active", DefaultThresholds.Active)
	v.SetDefault("thresholds.moderate", DefaultThresholds.Moderate)
	v.SetDefault("thresholds.low", DefaultThresholds.Low)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.SnapshotDir = expandPath(cfg.SnapshotDir)

	return &cfg, nil
}

// DBPath returns the default full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}
