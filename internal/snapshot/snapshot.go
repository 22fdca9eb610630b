// Package snapshot writes and re-reads JSON exports of the fetched
// collections. The batch driver dumps what it fetched, then scores from the
// re-read copy, so external tooling can inspect or substitute the
// intermediate state between the fetch and persist stages.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hearthside-labs/memberpulse/internal/store"
)

// File names within a snapshot directory.
const (
	MembersFile      = "members.json"
	InteractionsFile = "interactions.json"
	ActivitiesFile   = "activities.json"
	ManifestFile     = "manifest.json"
)

// Snapshot holds the three fetched collections.
type Snapshot struct {
	Members      []store.MemberRow      `json:"members"`
	Interactions []store.InteractionRow `json:"interactions"`
	Activities   []store.ActivityRow    `json:"activities"`
}

// Manifest records what a snapshot contains and which run produced it.
type Manifest struct {
	RunID            string    `json:"run_id"`
	TakenAt          time.Time `json:"taken_at"`
	MemberCount      int       `json:"member_count"`
	InteractionCount int       `json:"interaction_count"`
	ActivityCount    int       `json:"activity_count"`
}

// Write dumps the snapshot into dir as four JSON files, creating the
// directory if needed. Existing files are overwritten.
func Write(dir, runID string, snap *Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	manifest := Manifest{
		RunID:            runID,
		TakenAt:          time.Now().UTC(),
		MemberCount:      len(snap.Members),
		InteractionCount: len(snap.Interactions),
		ActivityCount:    len(snap.Activities),
	}

	files := map[string]any{
		MembersFile:      snap.Members,
		InteractionsFile: snap.Interactions,
		ActivitiesFile:   snap.Activities,
		ManifestFile:     manifest,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}
	return nil
}

// Read loads a snapshot from dir. The three collection files are required;
// the manifest is optional (nil when absent) so hand-built snapshots load
// too.
func Read(dir string) (*Snapshot, *Manifest, error) {
	var snap Snapshot
	if err := readJSON(filepath.Join(dir, MembersFile), &snap.Members); err != nil {
		return nil, nil, err
	}
	if err := readJSON(filepath.Join(dir, InteractionsFile), &snap.Interactions); err != nil {
		return nil, nil, err
	}
	if err := readJSON(filepath.Join(dir, ActivitiesFile), &snap.Activities); err != nil {
		return nil, nil, err
	}

	var manifest Manifest
	err := readJSON(filepath.Join(dir, ManifestFile), &manifest)
	if os.IsNotExist(err) {
		return &snap, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &snap, &manifest, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
