package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.LookbackDays)
	assert.Equal(t, 3, cfg.TopWeekdays)
	assert.False(t, cfg.KeywordClassifier)
	assert.Nil(t, cfg.Classifier())
	assert.Equal(t, DefaultWeights, cfg.Weights)
	assert.Equal(t, DefaultThresholds, cfg.Thresholds)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
lookback_days: 30
keyword_classifier: true
weights:
  volunteering: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.LookbackDays)
	assert.True(t, cfg.KeywordClassifier)
	assert.NotNil(t, cfg.Classifier())
	assert.Equal(t, 10.0, cfg.Weights.Volunteering)
	// Untouched weights keep their defaults.
	assert.Equal(t, 3.0, cfg.Weights.Attendance)
}

func TestWeights_Map(t *testing.T) {
	m := DefaultWeights.Map()
	assert.Equal(t, engagement.DefaultWeights, m)
}
