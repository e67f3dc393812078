package seeder

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/halloffame/internal/adapters/auth"
	"github.com/okian/halloffame/pkg/logger"
)

// Run seeds the service at config.BaseURL and returns the run statistics.
func Run(ctx context.Context, log logger.Logger, config *Config) (*Stats, error) {
	if log == nil {
		log = logger.Nop()
	}
	stats := &Stats{StartTime: time.Now()}

	token, err := resolveToken(config)
	if err != nil {
		return stats, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	client := newHTTPClient(config.BaseURL, token, config.Timeout)

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("extra", config.Extra),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verify", config.Verify),
	)

	if err := checkServiceHealth(ctx, log, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	students := Generate(config.Extra)
	stats.Generated = len(students)

	accepted := submitStudents(ctx, log, client, config, students, stats)

	if config.Verify {
		if err := verifyResults(ctx, log, client, accepted, stats); err != nil {
			return stats, fmt.Errorf("result verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return stats, nil
}

func resolveToken(config *Config) (string, error) {
	if config.Token != "" {
		return config.Token, nil
	}
	if config.Secret == "" {
		return "", ErrNoCredentials
	}
	return auth.IssueToken([]byte(config.Secret), config.UserID, "", tokenTTL)
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, log logger.Logger, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	log.Debug(ctx, "service is healthy")
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Added) / float64(stats.Submitted) * percentageMultiplier
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("added", stats.Added),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
		logger.Int("teams", stats.Teams),
		logger.Bool("verified", stats.Verified),
		logger.String("duration", stats.Duration.String()),
		logger.Any("successRate", successRate),
	)
}
