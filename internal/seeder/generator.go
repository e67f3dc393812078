package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/halloffame/internal/domain/model"
)

const (
	maxScore     = 100
	hackathons   = 3
	shortIDChars = 8
)

var sampleTeams = []string{"Team Alpha", "Team Beta", "Team Gamma", "Team Delta", "Team Epsilon"}

// SampleStudents returns the showcase roster used to seed an empty store.
func SampleStudents() []model.NewStudent {
	return []model.NewStudent{
		{
			Name:           "John Doe",
			ImageURL:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=300&fit=crop&crop=face",
			Score:          85,
			TeamName:       "Team Alpha",
			ProjectLink:    "https://example.com/project1",
			HackathonCount: 1,
		},
		{
			Name:           "Jane Smith",
			ImageURL:       "https://images.unsplash.com/photo-1494790108755-2616b612b1b0?w=300&h=300&fit=crop&crop=face",
			Score:          92,
			TeamName:       "Team Beta",
			ProjectLink:    "https://example.com/project2",
			HackathonCount: 1,
		},
		{
			Name:           "Mike Johnson",
			ImageURL:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=300&fit=crop&crop=face",
			Score:          78,
			TeamName:       "Team Alpha",
			ProjectLink:    "https://example.com/project3",
			HackathonCount: 1,
		},
		{
			Name:           "Sarah Wilson",
			ImageURL:       "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=300&h=300&fit=crop&crop=face",
			Score:          96,
			TeamName:       "Team Gamma",
			ProjectLink:    "https://example.com/project4",
			HackathonCount: 2,
		},
		{
			Name:           "Alex Chen",
			ImageURL:       "https://images.unsplash.com/photo-1507591064344-4c6ce005b128?w=300&h=300&fit=crop&crop=face",
			Score:          89,
			TeamName:       "Team Beta",
			ProjectLink:    "https://example.com/project5",
			HackathonCount: 2,
		},
		{
			Name:           "Emily Davis",
			ImageURL:       "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=300&h=300&fit=crop&crop=face",
			Score:          94,
			TeamName:       "Team Gamma",
			ProjectLink:    "https://example.com/project6",
			HackathonCount: 3,
		},
	}
}

// Generate returns the sample roster followed by extra random students.
func Generate(extra int) []model.NewStudent {
	out := SampleStudents()
	for i := 0; i < extra; i++ {
		out = append(out, randomStudent())
	}
	return out
}

func randomStudent() model.NewStudent {
	id := uuid.NewString()[:shortIDChars]
	return model.NewStudent{
		Name:           "Student " + id,
		Score:          randomInt(maxScore + 1),
		TeamName:       sampleTeams[randomInt(len(sampleTeams))],
		ProjectLink:    fmt.Sprintf("https://example.com/projects/%s", id),
		HackathonCount: 1 + randomInt(hackathons),
	}
}

// randomInt returns a value in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
