package driver

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/dom"
)

var DefaultSet = wire.NewSet(
	New,
)

// Driver pumps the animation frames and timers of a document against the
// wall clock.
type Driver struct {
	interval time.Duration
	logger   zerolog.Logger
}

func New(config *config.Config, logger *zerolog.Logger) *Driver {
	return &Driver{
		interval: config.Preview.FrameInterval(),
		logger:   logger.With().Str("component", "driver").Logger(),
	}
}

// Run drives doc until ctx is done.
func (d *Driver) Run(ctx context.Context, doc *dom.Document) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	frames := 0

	d.logger.Info().Dur("interval", d.interval).Msg("driver started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Int("frames", frames).Msg("driver stopped")
			return nil
		case now := <-ticker.C:
			doc.Advance(now.Sub(last))
			doc.Tick(now.Sub(start))
			last = now
			frames++
		}
	}
}

// Pump runs n frames of step each without waiting, timers first.
func Pump(doc *dom.Document, n int, step time.Duration) {
	for i := 1; i <= n; i++ {
		doc.Advance(step)
		doc.Tick(time.Duration(i) * step)
	}
}
