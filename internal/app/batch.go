package app

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
	"github.com/hearthside-labs/memberpulse/internal/snapshot"
	"github.com/hearthside-labs/memberpulse/internal/store"
)

// BatchSummary is the run-level rollup printed after an analyze pass.
type BatchSummary struct {
	TotalMembers        int                      `json:"total_members"`
	TotalActivities     int                      `json:"total_activities"`
	AverageScore        float64                  `json:"average_engagement_score"`
	LevelDistribution   map[engagement.Level]int `json:"level_distribution"`
	HighEngagementCount int                      `json:"high_engagement_count"`
	AtRiskCount         int                      `json:"at_risk_count"`
}

// summarize rolls per-member analyses up into the batch summary. High
// engagement means active or above; at-risk means inactive.
func summarize(analyses []engagement.Analysis) BatchSummary {
	summary := BatchSummary{
		TotalMembers:      len(analyses),
		LevelDistribution: make(map[engagement.Level]int),
	}

	var totalScore float64
	for _, a := range analyses {
		totalScore += a.EngagementScore
		summary.TotalActivities += a.ActivityPatterns.TotalActivities
		summary.LevelDistribution[a.EngagementLevel]++

		switch a.EngagementLevel {
		case engagement.LevelHighlyActive, engagement.LevelActive:
			summary.HighEngagementCount++
		case engagement.LevelInactive:
			summary.AtRiskCount++
		}
	}

	if len(analyses) > 0 {
		summary.AverageScore = math.Round(totalScore/float64(len(analyses))*100) / 100
	}
	return summary
}

// resolveMembers splits a requested id list into the members present in the
// fetched set and the ids that were not found. An empty request selects every
// fetched member.
func resolveMembers(requested []string, fetched []store.MemberRow) (found []store.MemberRow, missing []string) {
	if len(requested) == 0 {
		return fetched, nil
	}

	byID := make(map[string]store.MemberRow, len(fetched))
	for _, m := range fetched {
		byID[m.ID] = m
	}

	for _, id := range requested {
		if m, ok := byID[id]; ok {
			found = append(found, m)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// groupRecords normalizes every interaction and activity row and groups the
// results by member id. Interactions and activities are interchangeable once
// normalized; only their field aliases differ.
func groupRecords(snap *snapshot.Snapshot, classify engagement.ClassifierFunc) map[string][]engagement.ActivityRecord {
	grouped := make(map[string][]engagement.ActivityRecord)

	for _, r := range snap.Interactions {
		raw := engagement.RawRecord{
			InteractionType: r.InteractionType,
			InteractionDate: r.InteractionDate,
			CreatedAt:       r.CreatedAt,
		}
		grouped[r.MemberID] = append(grouped[r.MemberID], engagement.Normalize(raw, classify))
	}

	for _, r := range snap.Activities {
		raw := engagement.RawRecord{
			ActivityType: r.ActivityType,
			CreatedAt:    r.CreatedAt,
		}
		grouped[r.MemberID] = append(grouped[r.MemberID], engagement.Normalize(raw, classify))
	}

	return grouped
}

// retryPolicy bounds the retries wrapped around store calls.
func retryPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second
	return backoff.WithMaxRetries(policy, 3)
}

// fetchCollections reads members, interactions, and activities concurrently.
// A collection that still fails after retries is logged and treated as zero
// rows so the batch can continue with partial data.
func fetchCollections(db *store.DB, memberIDs []string, log *logrus.Entry) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{}

	var g errgroup.Group
	g.Go(func() error {
		rows, err := fetchWithRetry(func() ([]store.MemberRow, error) {
			return db.GetMembers(memberIDs)
		})
		if err != nil {
			log.WithError(err).WithField("collection", "members").Error("fetch failed, continuing with zero rows")
			return nil
		}
		snap.Members = rows
		return nil
	})
	g.Go(func() error {
		rows, err := fetchWithRetry(func() ([]store.InteractionRow, error) {
			return db.GetInteractions(memberIDs)
		})
		if err != nil {
			log.WithError(err).WithField("collection", "member_interactions").Error("fetch failed, continuing with zero rows")
			return nil
		}
		snap.Interactions = rows
		return nil
	})
	g.Go(func() error {
		rows, err := fetchWithRetry(func() ([]store.ActivityRow, error) {
			return db.GetActivities(memberIDs)
		})
		if err != nil {
			log.WithError(err).WithField("collection", "member_activities").Error("fetch failed, continuing with zero rows")
			return nil
		}
		snap.Activities = rows
		return nil
	})

	// Fetch errors are downgraded above, so Wait never reports one.
	_ = g.Wait()
	return snap
}

func fetchWithRetry[T any](fetch func() ([]T, error)) ([]T, error) {
	var rows []T
	op := func() error {
		var err error
		rows, err = fetch()
		return err
	}
	if err := backoff.Retry(op, retryPolicy()); err != nil {
		return nil, err
	}
	return rows, nil
}
