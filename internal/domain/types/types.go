// Package types contains the read shapes shared by the service and the API.
package types

import (
	"github.com/okian/halloffame/internal/domain/hackathon"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/roster"
)

// Medals awarded to the first three teams.
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

// TeamEntry is one row of the team leaderboard.
type TeamEntry struct {
	Rank         int    `json:"rank"`
	TeamName     string `json:"team_name"`
	MemberCount  int    `json:"member_count"`
	TotalScore   int    `json:"total_score"`
	AverageScore int    `json:"average_score"`
	Medal        string `json:"medal,omitempty"`
}

// StudentEntry is a student as rendered on a card.
type StudentEntry struct {
	model.Student
	HackathonName string `json:"hackathon_name,omitempty"`
}

// RosterPage is the response for a filtered roster.
type RosterPage struct {
	Students []StudentEntry `json:"students"`
	Shown    int            `json:"shown"`
	Total    int            `json:"total"`
	Filtered bool           `json:"filtered"`
}

// ImportIssue points at a CSV line that was not imported.
type ImportIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Added      int           `json:"added"`
	Duplicates int           `json:"duplicates"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Issues     []ImportIssue `json:"issues,omitempty"`
}

// MedalFor returns the medal for a 1-based rank, or "" past third place.
func MedalFor(rank int) string {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return ""
	}
}

// RankTeams numbers rankings from 1 and keeps at most limit entries.
// limit <= 0 keeps all.
func RankTeams(rankings []roster.TeamRanking, limit int) []TeamEntry {
	if limit <= 0 || limit > len(rankings) {
		limit = len(rankings)
	}
	out := make([]TeamEntry, limit)
	for i := 0; i < limit; i++ {
		r := rankings[i]
		out[i] = TeamEntry{
			Rank:         i + 1,
			TeamName:     r.TeamName,
			MemberCount:  r.MemberCount,
			TotalScore:   r.TotalScore,
			AverageScore: r.AverageScore,
			Medal:        MedalFor(i + 1),
		}
	}
	return out
}

// NewStudentEntry decorates s with its hackathon name.
func NewStudentEntry(s model.Student) StudentEntry {
	e := StudentEntry{Student: s}
	if s.HackathonCount > 0 {
		e.HackathonName = hackathon.Name(s.HackathonCount)
	}
	return e
}

// NewRosterPage converts an aggregator view for the API.
func NewRosterPage(v roster.View) RosterPage {
	students := make([]StudentEntry, len(v.Students))
	for i, s := range v.Students {
		students[i] = NewStudentEntry(s)
	}
	return RosterPage{
		Students: students,
		Shown:    v.Shown,
		Total:    v.Total,
		Filtered: v.Filtered,
	}
}
