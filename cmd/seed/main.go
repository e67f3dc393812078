package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/halloffame/internal/seeder"
	"github.com/okian/halloffame/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		token   = flag.String("token", "", "Bearer token of an admin user")
		secret  = flag.String("secret", os.Getenv("HOF_JWT_SECRET"), "JWT secret used to mint a token when -token is empty")
		userID  = flag.String("user", "seeder", "Subject of the minted token")
		extra   = flag.Int("extra", 0, "Generated students on top of the six sample ones")
		workers = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verify  = flag.Bool("verify", true, "Compare /rankings with a local aggregation")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &seeder.Config{
		BaseURL: *baseURL,
		Token:   *token,
		Secret:  *secret,
		UserID:  *userID,
		Extra:   *extra,
		Workers: *workers,
		Timeout: *timeout,
		Verify:  *verify,
		Verbose: *verbose,
	}

	if _, err := seeder.Run(ctx, logger.Named("seeder"), config); err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
