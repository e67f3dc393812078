package roster

// Default score bounds used when a caller supplies no range.
const (
	DefaultMinScore = 0
	DefaultMaxScore = 100
)

// ScoreRange is an inclusive score interval.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether Min <= score <= Max. An inverted range contains
// nothing.
func (r ScoreRange) Contains(score int) bool {
	return r.Min <= score && score <= r.Max
}

// Criteria are the filter parameters applied to a roster. The zero value
// has ScoreRange{0, 0} and so matches only students scoring 0; callers
// build Criteria from DefaultCriteria and then narrow it.
type Criteria struct {
	// NameQuery is a case-insensitive substring of the student name.
	NameQuery string
	// Team is an exact team name; empty disables the team filter.
	Team string
	// ScoreRange bounds the score inclusively.
	ScoreRange ScoreRange
	// Hackathon, when set, selects students with that hackathon count.
	Hackathon *int
}

// DefaultCriteria matches every student whose score is within 0..100.
func DefaultCriteria() Criteria {
	return Criteria{ScoreRange: ScoreRange{Min: DefaultMinScore, Max: DefaultMaxScore}}
}

// Active reports whether any filter narrows the default view.
func (c Criteria) Active() bool {
	return c.NameQuery != "" ||
		c.Team != "" ||
		c.ScoreRange.Min > DefaultMinScore ||
		c.ScoreRange.Max < DefaultMaxScore ||
		c.Hackathon != nil
}
