package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/divotmaker/ironsight/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus counters and gauges.
var (
	FramesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ironsight_frames_sent_total",
		Help: "Total frames sent, by destination bus address.",
	}, []string{"dest"})
	FramesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ironsight_frames_received_total",
		Help: "Total frames received, by source bus address.",
	}, []string{"src"})
	MalformedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_malformed_frames_total",
		Help: "Total frames rejected at the checksum/framing layer.",
	})
	ProtocolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ironsight_protocol_errors_total",
		Help: "Total protocol violations observed, by handshake phase.",
	}, []string{"phase"})
	HandshakeDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ironsight_handshake_duration_seconds",
		Help: "Wall-clock duration of the most recently completed six-phase handshake.",
	})
	HandshakesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_handshakes_completed_total",
		Help: "Total handshakes that reached the armed state.",
	})
	ShotsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_shots_completed_total",
		Help: "Total shots that completed the post-shot re-arm cycle.",
	})
	KeepalivesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_keepalives_sent_total",
		Help: "Total keepalive status polls sent.",
	})
	ConnectionUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ironsight_connection_up",
		Help: "1 if the TCP connection to the device is currently established, else 0.",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build metadata (value is always 1).",
	}, []string{"version", "commit", "date"})
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "errors_total",
		Help: "Error counters by subsystem.",
	}, []string{"where"})

	HubDroppedEnvelopes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_hub_dropped_envelopes_total",
		Help: "Total decoded envelopes dropped by a slow local subscriber.",
	})
	HubKickedClients = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ironsight_hub_kicked_clients_total",
		Help: "Total local subscribers disconnected due to the kick backpressure policy.",
	})
	HubActiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ironsight_hub_active_clients",
		Help: "Current number of active local subscribers.",
	})
	HubBroadcastFanout = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ironsight_hub_broadcast_fanout",
		Help: "Number of subscribers targeted in the most recent broadcast.",
	})

	readinessMu sync.RWMutex
	readinessFn func() bool
)

// Handshake phase labels (stable values to bound cardinality).
const (
	PhaseDspSync      = "dsp_sync"
	PhaseAvrSync      = "avr_sync"
	PhasePiSync       = "pi_sync"
	PhaseAvrConfig    = "avr_config"
	PhaseCamConfig    = "cam_config"
	PhaseArm          = "arm"
	PhaseKeepalive    = "keepalive"
	PhaseCompleteShot = "complete_shot"
)

// Error label constants.
const (
	ErrConnect  = "connect"
	ErrRecv     = "recv"
	ErrSend     = "send"
	ErrDiscover = "discover"
)

// StartHTTP serves Prometheus metrics at /metrics on addr.
func StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if IsReady() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready\n"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready\n"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logging.L().Info("metrics_listen", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L().Error("metrics_http_error", "error", err)
		}
	}()
	return srv
}

// Local mirrored counters, for status logging without scraping Prometheus
// in-process.
var (
	localFramesSent     uint64
	localFramesReceived uint64
	localMalformed      uint64
	localErrors         uint64
	localShots          uint64
	localHandshakes     uint64
)

// Snapshot is a cheap copy of local counters.
type Snapshot struct {
	FramesSent     uint64
	FramesReceived uint64
	Malformed      uint64
	Errors         uint64
	Shots          uint64
	Handshakes     uint64
}

func Snap() Snapshot {
	return Snapshot{
		FramesSent:     atomic.LoadUint64(&localFramesSent),
		FramesReceived: atomic.LoadUint64(&localFramesReceived),
		Malformed:      atomic.LoadUint64(&localMalformed),
		Errors:         atomic.LoadUint64(&localErrors),
		Shots:          atomic.LoadUint64(&localShots),
		Handshakes:     atomic.LoadUint64(&localHandshakes),
	}
}

// IncFramesSent increments the sent-frame counter for dest.
func IncFramesSent(dest string) {
	FramesSent.WithLabelValues(dest).Inc()
	atomic.AddUint64(&localFramesSent, 1)
}

// IncFramesReceived increments the received-frame counter for src.
func IncFramesReceived(src string) {
	FramesReceived.WithLabelValues(src).Inc()
	atomic.AddUint64(&localFramesReceived, 1)
}

func IncMalformed() {
	MalformedFrames.Inc()
	atomic.AddUint64(&localMalformed, 1)
}

func IncProtocolError(phase string) {
	ProtocolErrors.WithLabelValues(phase).Inc()
}

func IncError(label string) {
	Errors.WithLabelValues(label).Inc()
	atomic.AddUint64(&localErrors, 1)
}

func IncShotsCompleted() {
	ShotsCompleted.Inc()
	atomic.AddUint64(&localShots, 1)
}

func IncHandshakesCompleted(durationSeconds float64) {
	HandshakesCompleted.Inc()
	HandshakeDurationSeconds.Set(durationSeconds)
	atomic.AddUint64(&localHandshakes, 1)
}

func IncKeepalive() { KeepalivesSent.Inc() }

func SetConnectionUp(up bool) {
	if up {
		ConnectionUp.Set(1)
		return
	}
	ConnectionUp.Set(0)
}

// InitBuildInfo sets the build info gauge and pre-registers error/phase
// label series so the first observation doesn't pay registration latency.
func InitBuildInfo(version, commit, date string) {
	BuildInfo.WithLabelValues(version, commit, date).Set(1)
	for _, lbl := range []string{ErrConnect, ErrRecv, ErrSend, ErrDiscover} {
		Errors.WithLabelValues(lbl).Add(0)
	}
	for _, phase := range []string{
		PhaseDspSync, PhaseAvrSync, PhasePiSync, PhaseAvrConfig,
		PhaseCamConfig, PhaseArm, PhaseKeepalive, PhaseCompleteShot,
	} {
		ProtocolErrors.WithLabelValues(phase).Add(0)
	}
}

// SetReadinessFunc registers a function used by /ready and IsReady.
func SetReadinessFunc(fn func() bool) { readinessMu.Lock(); readinessFn = fn; readinessMu.Unlock() }

// IsReady invokes the registered readiness function if present.
func IsReady() bool {
	readinessMu.RLock()
	fn := readinessFn
	readinessMu.RUnlock()
	if fn == nil {
		return true
	}
	return fn()
}

// Ready is a concise alias used at call sites.
func Ready() bool { return IsReady() }
