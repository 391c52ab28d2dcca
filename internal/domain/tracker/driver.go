package tracker

import (
	"context"
	"log/slog"
	"time"
)

// Driver invokes Tick on the engine at a fixed interval. The host runs it
// while the app is foregrounded and cancels the context on background or
// shutdown; no in-flight work needs explicit cancellation because every
// persisted write is an idempotent full-snapshot replacement.
type Driver struct {
	engine   *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewDriver creates a tick driver. The accrual unit is one second; tests
// may pass a shorter interval.
func NewDriver(engine *Service, interval time.Duration, logger *slog.Logger) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{engine: engine, interval: interval, logger: logger}
}

// Run ticks until the context is cancelled. Tick failures are logged and
// the loop keeps going; every tick is independently re-triggerable.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.engine.Tick(ctx); err != nil {
				d.logger.Error("tick failed", "error", err)
			}
		}
	}
}
