package seeder

import (
	"context"
	"fmt"

	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/roster"
	"github.com/okian/halloffame/internal/domain/types"
	"github.com/okian/halloffame/pkg/logger"
)

// verifyResults checks that every accepted student is on the roster and
// that the served rankings match a local aggregation of that roster.
func verifyResults(ctx context.Context, log logger.Logger, client *HTTPClient, accepted []model.Student, stats *Stats) error {
	log.Info(ctx, "verifying results")

	var page types.RosterPage
	if err := client.getJSON(ctx, "/students", &page); err != nil {
		return err
	}
	var served []types.TeamEntry
	if err := client.getJSON(ctx, "/rankings", &served); err != nil {
		return err
	}

	students := make([]model.Student, len(page.Students))
	ids := make(map[string]struct{}, len(page.Students))
	for i, e := range page.Students {
		students[i] = e.Student
		ids[e.ID] = struct{}{}
	}
	for _, st := range accepted {
		if _, ok := ids[st.ID]; !ok {
			return fmt.Errorf("%w: %s (%s)", ErrMissing, st.Name, st.ID)
		}
	}

	expected := types.RankTeams(roster.ComputeTeamRankings(students), 0)
	if err := compareRankings(expected, served); err != nil {
		return err
	}

	stats.Teams = len(served)
	stats.Verified = true
	displayTopTeams(ctx, log, served)
	log.Info(ctx, "rankings verified", logger.Int("teams", len(served)))
	return nil
}

// compareRankings reports the first difference between two rankings.
func compareRankings(expected, served []types.TeamEntry) error {
	if len(expected) != len(served) {
		return fmt.Errorf("%w: expected %d teams, got %d", ErrMismatch, len(expected), len(served))
	}
	for i := range expected {
		if expected[i] != served[i] {
			return fmt.Errorf("%w: rank %d expected %+v, got %+v", ErrMismatch, i+1, expected[i], served[i])
		}
	}
	return nil
}

func displayTopTeams(ctx context.Context, log logger.Logger, entries []types.TeamEntry) {
	topN := 3
	if len(entries) < topN {
		topN = len(entries)
	}
	for _, e := range entries[:topN] {
		log.Info(ctx, "top team",
			logger.Int("rank", e.Rank),
			logger.String("team", e.TeamName),
			logger.Int("average", e.AverageScore),
			logger.Int("members", e.MemberCount),
		)
	}
}
