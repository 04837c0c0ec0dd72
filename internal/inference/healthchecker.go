package inference

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ModelHealthChecker monitors the inference model server via GET /health.
type ModelHealthChecker struct {
	client       *Client
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewModelHealthChecker(c *Client, log zerolog.Logger, probeTimeout time.Duration) *ModelHealthChecker {
	hc := &ModelHealthChecker{client: c, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0) // start unhealthy until first successful probe
	return hc
}

func (hc *ModelHealthChecker) Name() string    { return "inference-model" }
func (hc *ModelHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

func (hc *ModelHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()
		if err := hc.client.HealthPing(checkCtx); err != nil {
			hc.healthy.Store(0)
			hc.log.Error().Str("checker", hc.Name()).Err(err).Msg("model health check failed")
			return
		}
		hc.healthy.Store(1)
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
