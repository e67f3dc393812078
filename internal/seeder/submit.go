package seeder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/types"
	"github.com/okian/halloffame/pkg/logger"
)

// submitStudents posts students concurrently and returns the ones the
// service accepted.
func submitStudents(ctx context.Context, log logger.Logger, client *HTTPClient, config *Config, students []model.NewStudent, stats *Stats) []model.Student {
	log.Info(ctx, "submitting students",
		logger.Int("students", len(students)),
		logger.Int("workers", config.Workers),
	)

	var (
		added      int64
		duplicates int64
		failed     int64
		submitted  int64

		mu       sync.Mutex
		accepted = make([]model.Student, 0, len(students))
	)

	queue := make(chan model.NewStudent, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range queue {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				st, result := submitSingleStudent(ctx, client, in)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case resultAdded:
					atomic.AddInt64(&added, 1)
					mu.Lock()
					accepted = append(accepted, st)
					mu.Unlock()
				case resultDuplicate:
					atomic.AddInt64(&duplicates, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "submission failed", logger.String("name", in.Name))
					}
				}
			}
		}()
	}

feed:
	for _, in := range students {
		select {
		case <-ctx.Done():
			break feed
		case queue <- in:
		}
	}
	close(queue)
	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Added = int(atomic.LoadInt64(&added))
	stats.Duplicates = int(atomic.LoadInt64(&duplicates))
	stats.Failed = int(atomic.LoadInt64(&failed))

	log.Info(ctx, "submission completed",
		logger.Int("added", stats.Added),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
	)
	return accepted
}

// submitSingleStudent posts one student and classifies the response.
func submitSingleStudent(ctx context.Context, client *HTTPClient, in model.NewStudent) (model.Student, string) {
	resp, err := client.Post(ctx, "/admin/students", in)
	if err != nil {
		return model.Student{}, resultFailed
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusCreated:
		var entry types.StudentEntry
		if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
			return model.Student{}, resultFailed
		}
		return entry.Student, resultAdded
	case http.StatusConflict:
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.Student{}, resultDuplicate
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.Student{}, resultFailed
	}
}
