package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/divotmaker/ironsight/internal/metrics"
)

// startMetricsLogger periodically logs the local metrics snapshot at
// interval until ctx is cancelled. A no-op if interval <= 0.
func startMetricsLogger(ctx context.Context, interval time.Duration, l *slog.Logger, wg *sync.WaitGroup) {
	if interval <= 0 {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := metrics.Snap()
				l.Info("metrics_snapshot",
					"frames_sent", snap.FramesSent,
					"frames_received", snap.FramesReceived,
					"malformed", snap.Malformed,
					"errors", snap.Errors,
					"shots", snap.Shots,
					"handshakes", snap.Handshakes,
				)
			}
		}
	}()
}
