package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const defaultDetachedTimeout = 10 * time.Second

// Detacher runs side effects whose outcome must not change the caller's
// response. Failures are logged and counted, never returned.
type Detacher struct {
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDetacher(logger *zap.Logger, timeout time.Duration) *Detacher {
	if timeout <= 0 {
		timeout = defaultDetachedTimeout
	}
	return &Detacher{logger: utils.OrDefault(logger), timeout: timeout}
}

// Go runs fn in the background with the request's values but not its
// cancellation.
func (d *Detacher) Go(parent context.Context, operation string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), d.timeout)
		defer cancel()

		err := fn(ctx)
		metrics.Detached(operation, err)
		if err != nil {
			d.logger.Error("Detached operation failed", zap.String("operation", operation), zap.Error(err))
		}
	}()
}

// Timeout bounds how long a detached operation may run.
func (d *Detacher) Timeout() time.Duration { return d.timeout }

// Wait blocks until every started operation has finished.
func (d *Detacher) Wait() {
	d.wg.Wait()
}
