package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthside-labs/memberpulse/internal/config"
	"github.com/hearthside-labs/memberpulse/internal/engagement"
	"github.com/hearthside-labs/memberpulse/internal/output"
	"github.com/hearthside-labs/memberpulse/internal/store"
)

var reportLevel string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Display stored analysis records and batch summary",
	Long: `Report reads the analysis records produced by a previous analyze run and
renders them as a table with the batch-level summary, ordered by score.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportLevel, "level", "", "Only show members at this engagement level")
	rootCmd.AddCommand(reportCmd)
}

// reportRow is the JSON-serializable output for one member.
type reportRow struct {
	store.AnalysisRow
	ActivityPatterns engagement.PatternSummary `json:"activity_patterns"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	analyses, err := db.GetAnalyses()
	if err != nil {
		return fmt.Errorf("loading analyses: %w", err)
	}

	if reportLevel != "" {
		filtered := analyses[:0]
		for _, a := range analyses {
			if a.EngagementLevel == reportLevel {
				filtered = append(filtered, a)
			}
		}
		analyses = filtered
	}

	if len(analyses) == 0 {
		fmt.Println(output.StyleMuted.Render("No analysis records found. Run 'memberpulse analyze' first."))
		return nil
	}

	if flagJSON {
		return renderReportJSON(analyses)
	}
	renderReportTable(analyses)
	return nil
}

func renderReportJSON(analyses []store.AnalysisRow) error {
	rows := make([]reportRow, 0, len(analyses))
	for _, a := range analyses {
		patterns, err := a.Patterns()
		if err != nil {
			return err
		}
		a.ActivityPatterns = "" // replaced by the structured field
		rows = append(rows, reportRow{AnalysisRow: a, ActivityPatterns: patterns})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderReportTable(analyses []store.AnalysisRow) {
	fmt.Println(output.Section("Member Engagement Report"))
	fmt.Println()

	tbl := output.NewTable("Member", "Score", "Level", "Activities", "Last Active")
	for _, a := range analyses {
		activities := "0"
		if patterns, err := a.Patterns(); err == nil {
			activities = fmt.Sprintf("%d", patterns.TotalActivities)
		}

		lastActive := output.StyleMuted.Render("never")
		if a.LastActivityDate != nil {
			lastActive = formatRelativeTime(*a.LastActivityDate)
		}

		tbl.AddRow(
			a.MemberName,
			output.ScoreBar(a.EngagementScore, 10),
			output.LevelBadge(engagement.Level(a.EngagementLevel)),
			activities,
			lastActive,
		)
	}
	tbl.Print()
}

// formatRelativeTime converts an RFC3339 timestamp to a human-friendly
// relative time string like "2d ago", "12h ago", "just now".
func formatRelativeTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		// Try date-only format as fallback.
		t, err = time.Parse("2006-01-02", timestamp)
		if err != nil {
			return timestamp
		}
	}

	d := time.Since(t)
	switch {
	case d < time.Hour:
		return "just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
