// Package resource bounds the I/O footprint of artifact downloads.
//
// Cache artifacts are fetched next to latency-sensitive query traffic, so
// fetches are throttled: a semaphore caps concurrent downloads and a token
// bucket caps aggregate download bandwidth.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentFetches is the maximum number of artifact downloads
	// running at once. If 0, defaults to 1.
	MaxConcurrentFetches int64

	// IOLimitBytesPerSec is the maximum aggregate download throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages fetch concurrency and download bandwidth.
type Controller struct {
	fetchSem  *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = 1
	}

	c := &Controller{
		fetchSem: semaphore.NewWeighted(cfg.MaxConcurrentFetches),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireFetch reserves a download slot, blocking until one is free or ctx
// is canceled. A nil controller imposes no limits.
func (c *Controller) AcquireFetch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fetchSem.Acquire(ctx, 1)
}

// ReleaseFetch releases a download slot.
func (c *Controller) ReleaseFetch() {
	if c == nil {
		return
	}
	c.fetchSem.Release(1)
}

// AcquireIO waits until the bandwidth limit allows the given number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	if burst := c.ioLimiter.Burst(); bytes > burst {
		// WaitN rejects requests above the burst size; pay in installments.
		for bytes > 0 {
			n := min(bytes, burst)
			if err := c.ioLimiter.WaitN(ctx, n); err != nil {
				return err
			}
			bytes -= n
		}
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
