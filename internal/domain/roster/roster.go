// Package roster filters student records and aggregates them into team
// rankings. Every function is pure: inputs are never modified and results
// are freshly allocated, so callers may share a snapshot across goroutines.
package roster

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/halloffame/internal/domain/model"
)

// TeamRanking is the aggregate of all students sharing a team name.
type TeamRanking struct {
	TeamName     string `json:"team_name"`
	MemberCount  int    `json:"member_count"`
	TotalScore   int    `json:"total_score"`
	AverageScore int    `json:"average_score"`
}

// View is a filtered roster together with the counts behind the
// "N of M shown" indicator.
type View struct {
	Students []model.Student `json:"students"`
	Shown    int             `json:"shown"`
	Total    int             `json:"total"`
	Filtered bool            `json:"filtered"`
}

// FilterStudents returns the students matching every active predicate of c,
// in their original order.
func FilterStudents(records []model.Student, c Criteria) []model.Student {
	query := strings.ToLower(c.NameQuery)
	out := make([]model.Student, 0, len(records))
	for _, r := range records {
		if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		if c.Team != "" && r.TeamName != c.Team {
			continue
		}
		if !c.ScoreRange.Contains(r.Score) {
			continue
		}
		if c.Hackathon != nil && r.HackathonCount != *c.Hackathon {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DistinctTeams returns the non-empty team names in first-seen order.
func DistinctTeams(records []model.Student) []string {
	seen := make(map[string]struct{})
	teams := make([]string, 0)
	for _, r := range records {
		if r.TeamName == "" {
			continue
		}
		if _, ok := seen[r.TeamName]; ok {
			continue
		}
		seen[r.TeamName] = struct{}{}
		teams = append(teams, r.TeamName)
	}
	return teams
}

// ComputeTeamRankings groups records by exact team name and orders the
// groups by rounded average score, highest first. Teams with equal averages
// keep the order in which they were first seen.
func ComputeTeamRankings(records []model.Student) []TeamRanking {
	index := make(map[string]int)
	rankings := make([]TeamRanking, 0)
	for _, r := range records {
		i, ok := index[r.TeamName]
		if !ok {
			i = len(rankings)
			index[r.TeamName] = i
			rankings = append(rankings, TeamRanking{TeamName: r.TeamName})
		}
		rankings[i].MemberCount++
		rankings[i].TotalScore += r.Score
	}

	for i := range rankings {
		rankings[i].AverageScore = Average(rankings[i].TotalScore, rankings[i].MemberCount)
	}

	sort.SliceStable(rankings, func(a, b int) bool {
		return rankings[a].AverageScore > rankings[b].AverageScore
	})
	return rankings
}

// Average returns total/count rounded half away from zero. A zero count
// yields zero.
func Average(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// Summarize filters records and reports how many of them are shown.
func Summarize(records []model.Student, c Criteria) View {
	students := FilterStudents(records, c)
	return View{
		Students: students,
		Shown:    len(students),
		Total:    len(records),
		Filtered: c.Active(),
	}
}
