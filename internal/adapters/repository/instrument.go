package repository

import (
	"time"

	"github.com/okian/halloffame/pkg/metrics"
)

// observe records latency and failure of one store call.
func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOp(op, float64(time.Since(start).Microseconds())/1000.0, err)
}
