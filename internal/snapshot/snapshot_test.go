package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside-labs/memberpulse/internal/store"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Members: []store.MemberRow{
			{ID: "m-1", Name: "Ada", Email: "ada@example.org"},
			{ID: "m-2", Name: "Ben"},
		},
		Interactions: []store.InteractionRow{
			{ID: 1, MemberID: "m-1", InteractionType: "attendance", InteractionDate: "2024-01-07T10:00:00Z"},
		},
		Activities: []store.ActivityRow{
			{ID: 1, MemberID: "m-2", ActivityType: "donation", CreatedAt: "2024-02-01"},
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := testSnapshot()

	require.NoError(t, Write(dir, "run-123", want))

	got, manifest, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NotNil(t, manifest)
	assert.Equal(t, "run-123", manifest.RunID)
	assert.Equal(t, 2, manifest.MemberCount)
	assert.Equal(t, 1, manifest.InteractionCount)
	assert.Equal(t, 1, manifest.ActivityCount)
	assert.False(t, manifest.TakenAt.IsZero())
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "run-1", testSnapshot()))
	require.NoError(t, Write(dir, "run-2", &Snapshot{}))

	got, manifest, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, got.Members)
	require.NotNil(t, manifest)
	assert.Equal(t, "run-2", manifest.RunID)
}

func TestRead_ManifestOptional(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "run-1", testSnapshot()))
	require.NoError(t, os.Remove(filepath.Join(dir, ManifestFile)))

	got, manifest, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, manifest)
	assert.Len(t, got.Members, 2)
}

func TestRead_MissingCollectionFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "run-1", testSnapshot()))
	require.NoError(t, os.Remove(filepath.Join(dir, InteractionsFile)))

	_, _, err := Read(dir)
	assert.Error(t, err)
}

func TestRead_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "run-1", testSnapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MembersFile), []byte("{not json"), 0o644))

	_, _, err := Read(dir)
	assert.Error(t, err)
}
