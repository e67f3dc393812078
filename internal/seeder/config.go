package seeder

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string        // Base URL of the service
	Token   string        // Bearer token of an admin user
	Secret  string        // JWT secret used to mint a token when Token is empty
	UserID  string        // Subject of the minted token
	Extra   int           // Generated students on top of the sample roster
	Workers int           // Number of concurrent submitters
	Timeout time.Duration // HTTP request timeout
	Verify  bool          // Compare /rankings with a local aggregation afterwards
	Verbose bool          // Log every failed submission
}

// Stats holds the outcome of a seeding run.
type Stats struct {
	Generated  int
	Submitted  int
	Added      int
	Duplicates int
	Failed     int
	Teams      int
	Verified   bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Submission outcomes.
const (
	resultAdded     = "added"
	resultDuplicate = "duplicate"
	resultFailed    = "failed"
)

const (
	workerChannelMultiplier = 2
	tokenTTL                = time.Hour
	percentageMultiplier    = 100
)
