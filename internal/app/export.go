package app

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hearthside-labs/memberpulse/internal/config"
	"github.com/hearthside-labs/memberpulse/internal/snapshot"
)

var (
	exportMembers []string
	exportDir     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write JSON snapshots of the fetched collections",
	Long: `Export fetches member, interaction, and activity rows and dumps them as
JSON files without scoring or persisting anything. The resulting directory
can be inspected, edited, and fed back via 'analyze --from-snapshot'.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportMembers, "members", nil, "Member ID or comma-separated list (default: all members)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Target directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runID := uuid.New().String()
	log := newRunLogger(runID)

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snap := fetchCollections(db, exportMembers, log)

	dir := exportDir
	if dir == "" {
		dir = cfg.SnapshotDir
	}
	if err := snapshot.Write(dir, runID, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	fmt.Printf("Wrote snapshot to %s (%d members, %d interactions, %d activities)\n",
		dir, len(snap.Members), len(snap.Interactions), len(snap.Activities))
	return nil
}
