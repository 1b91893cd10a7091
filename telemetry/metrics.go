package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/orrery/renderer"
)

// Metrics exports frame and particle statistics to Prometheus. Each Metrics
// owns its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	frameSeconds prometheus.Histogram
	drawCalls    prometheus.Gauge
	stateCalls   *prometheus.CounterVec
	particles    *prometheus.GaugeVec
	cmeBursts    prometheus.Counter
	cmeDropped   prometheus.Counter
	pending      prometheus.Gauge

	lastBursts    int
	lastTruncated int

	server *http.Server
	addr   string
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_seconds",
			Help:    "Wall time spent on one frame",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 8),
		}),
		drawCalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_draw_calls",
			Help: "Draw calls issued in the last frame",
		}),
		stateCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_state_calls_total",
				Help: "Cached render state calls by outcome",
			},
			[]string{"result"},
		),
		particles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orrery_particles",
				Help: "Live particles by field",
			},
			[]string{"field"},
		),
		cmeBursts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_cme_bursts_total",
			Help: "Coronal mass ejection bursts spawned",
		}),
		cmeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_cme_dropped_total",
			Help: "CME particles not spawned because the pool was full",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_textures_pending",
			Help: "Texture slots still showing the placeholder",
		}),
	}

	m.registry.MustRegister(
		m.frameSeconds,
		m.drawCalls,
		m.stateCalls,
		m.particles,
		m.cmeBursts,
		m.cmeDropped,
		m.pending,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFrame updates the per-frame collectors. counts carries cumulative
// burst and truncation totals.
func (m *Metrics) RecordFrame(s renderer.Stats, frame time.Duration, counts ParticleCounts, texturesPending int) {
	if m == nil {
		return
	}
	m.frameSeconds.Observe(frame.Seconds())
	m.drawCalls.Set(float64(s.DrawCalls))
	m.stateCalls.WithLabelValues("issued").Add(float64(s.Issued()))
	m.stateCalls.WithLabelValues("skipped").Add(float64(s.Skipped()))
	m.particles.WithLabelValues("cme").Set(float64(counts.CME))
	m.particles.WithLabelValues("belts").Set(float64(counts.BeltSprites))
	if d := counts.Bursts - m.lastBursts; d > 0 {
		m.cmeBursts.Add(float64(d))
	}
	if d := counts.Truncated - m.lastTruncated; d > 0 {
		m.cmeDropped.Add(float64(d))
	}
	m.lastBursts, m.lastTruncated = counts.Bursts, counts.Truncated
	m.pending.Set(float64(texturesPending))
}

// Serve starts the metrics endpoint on addr in the background.
func (m *Metrics) Serve(addr, path string) error {
	if path == "" {
		path = "/metrics"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	m.addr = ln.Addr().String()

	slog.Info("metrics listening", "addr", m.addr, "path", path)
	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, empty until Serve succeeds.
func (m *Metrics) Addr() string {
	return m.addr
}

// Shutdown stops the endpoint if it was started.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
