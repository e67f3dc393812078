package seeder

import "os"

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Hall of Fame Seeder
===================

Adds the sample roster, plus optional generated students, to a running
service and checks the served team rankings.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -token string
        Bearer token of an admin user
  -secret string
        JWT secret used to mint a token when -token is empty (default $HOF_JWT_SECRET)
  -user string
        Subject of the minted token (default "seeder")
  -extra int
        Generated students on top of the six sample ones (default 0)
  -workers int
        Number of concurrent workers (default CPU cores)
  -timeout duration
        HTTP request timeout (default 10s)
  -verify
        Compare /rankings with a local aggregation (default true)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed the sample roster with a minted token
  HOF_JWT_SECRET=dev go run ./cmd/seed -user admin

  # Add 500 generated students with 16 workers
  go run ./cmd/seed -token $TOKEN -extra 500 -workers 16
`)
}
