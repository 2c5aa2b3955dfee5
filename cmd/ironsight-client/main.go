// Command ironsight-client connects to a device over its factory TCP
// protocol, runs the six-phase handshake, and then keeps the bus warm:
// polling keepalive status while idle and driving the re-arm cycle after
// each shot. Decoded envelopes are fanned out through an in-process hub
// for any local subscriber (a display, a shot logger) to consume.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/internal/discover"
	"github.com/divotmaker/ironsight/internal/hub"
	"github.com/divotmaker/ironsight/internal/metrics"
	"github.com/divotmaker/ironsight/protocol"
	"github.com/divotmaker/ironsight/seq"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("ironsight-client %s (%s, %s)\n", version, commit, date)
		return
	}
	if cfg == nil {
		os.Exit(2)
	}

	l, err := setupLogger(cfg.logFormat, cfg.logLevel)
	if err != nil {
		fmt.Printf("logger setup: %v\n", err)
		os.Exit(2)
	}

	metrics.InitBuildInfo(version, commit, date)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup

	var metricsSrv interface{ Close() error }
	if cfg.metricsAddr != "" {
		srv := metrics.StartHTTP(cfg.metricsAddr)
		metricsSrv = srv
	}
	startMetricsLogger(ctx, cfg.logMetricsEvery, l, &wg)

	address := resolveAddress(ctx, cfg, l)

	connection, err := connectWithReadiness(address, l)
	if err != nil {
		l.Error("connect_failed", "address", address, "error", err)
		metrics.IncError(metrics.ErrConnect)
		shutdown(cancel, &wg, metricsSrv)
		os.Exit(1)
	}
	defer connection.Shutdown()

	h := hub.New()
	h.Policy = hub.PolicyDrop

	if err := runHandshake(connection, cfg, l); err != nil {
		l.Error("handshake_failed", "error", err)
		metrics.SetConnectionUp(false)
		shutdown(cancel, &wg, metricsSrv)
		os.Exit(1)
	}

	l.Info("armed", "address", address, "mode", cfg.mode)

	runLoop(ctx, connection, h, cfg, l)

	l.Info("shutting_down")
	metrics.SetConnectionUp(false)
	shutdown(cancel, &wg, metricsSrv)
}

func resolveAddress(ctx context.Context, cfg *appConfig, l *slog.Logger) string {
	if cfg.address != "" {
		return cfg.address
	}
	if !cfg.discover {
		return conn.DefaultAddr
	}
	found := discover.Default(ctx, cfg.discoverTimeout)
	l.Info("discovery_result", "address", found)
	return found
}

func connectWithReadiness(address string, l *slog.Logger) (*conn.Connection, error) {
	l.Info("connecting", "address", address)
	connection, err := conn.Dial(address, 5*time.Second)
	if err != nil {
		return nil, err
	}
	metrics.SetConnectionUp(true)
	metrics.SetReadinessFunc(func() bool { return true })
	return connection, nil
}

// runHandshake drives the six synchronization and configuration phases in
// order, recording handshake duration and phase-scoped protocol errors.
func runHandshake(connection *conn.Connection, cfg *appConfig, l *slog.Logger) error {
	start := time.Now()

	if _, err := seq.SyncDsp(connection); err != nil {
		metrics.IncProtocolError(metrics.PhaseDspSync)
		return fmt.Errorf("sync_dsp: %w", err)
	}
	l.Info("dsp_synced")

	if _, err := seq.SyncAvr(connection); err != nil {
		metrics.IncProtocolError(metrics.PhaseAvrSync)
		return fmt.Errorf("sync_avr: %w", err)
	}
	l.Info("avr_synced")

	piSync, err := seq.SyncPi(connection)
	if err != nil {
		metrics.IncProtocolError(metrics.PhasePiSync)
		return fmt.Errorf("sync_pi: %w", err)
	}
	l.Info("pi_synced", "ssid", piSync.SSID)

	avrSettings := seq.AvrSettings{
		Mode:     cfg.mode,
		Params:   nil,
		RadarCal: protocol.RadarCalCmd{RangeMM: 18000, HeightMM: 0},
	}
	if err := seq.ConfigureAvr(connection, avrSettings); err != nil {
		metrics.IncProtocolError(metrics.PhaseAvrConfig)
		return fmt.Errorf("configure_avr: %w", err)
	}
	l.Info("avr_configured", "mode", cfg.mode)

	if err := seq.ConfigureCamera(connection, piSync.CamConfig); err != nil {
		metrics.IncProtocolError(metrics.PhaseCamConfig)
		return fmt.Errorf("configure_camera: %w", err)
	}
	l.Info("camera_configured")

	if err := seq.Arm(connection); err != nil {
		metrics.IncProtocolError(metrics.PhaseArm)
		return fmt.Errorf("arm: %w", err)
	}

	metrics.IncHandshakesCompleted(time.Since(start).Seconds())
	return nil
}

// runLoop polls keepalive status while idle, watches for a processed shot
// via the decoded envelope stream, and drives the re-arm cycle after each
// one, until ctx is cancelled.
func runLoop(ctx context.Context, connection *conn.Connection, h *hub.Hub, cfg *appConfig, l *slog.Logger) {
	ticker := time.NewTicker(cfg.keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := seq.Keepalive(connection); err != nil {
				metrics.IncProtocolError(metrics.PhaseKeepalive)
				l.Warn("keepalive_failed", "error", err)
				continue
			}
			metrics.IncKeepalive()
		default:
		}

		env, err := connection.RecvTimeout(500 * time.Millisecond)
		if err != nil {
			continue
		}
		metrics.IncFramesReceived(env.Src.String())
		h.Broadcast(env)

		if shotText, ok := env.Message.(protocol.ShotText); ok && shotText.IsProcessed() {
			l.Info("shot_processed")
			if err := seq.CompleteShot(connection, func(msg string) { l.Info("complete_shot", "stage", msg) }); err != nil {
				metrics.IncProtocolError(metrics.PhaseCompleteShot)
				l.Warn("complete_shot_failed", "error", err)
				continue
			}
			metrics.IncShotsCompleted()
		}
	}
}

func shutdown(cancel context.CancelFunc, wg *sync.WaitGroup, metricsSrv interface{ Close() error }) {
	cancel()
	wg.Wait()
	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}
}

