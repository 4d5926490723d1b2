package network

import (
	"net/http"

	"github.com/lixenwraith/vi-life/board"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple engines never collide
// on the global one. It observes frames and board snapshots
type Metrics struct {
	registry *prometheus.Registry

	framesTotal   prometheus.Counter
	frameDuration prometheus.Histogram
	clockTick     prometheus.Histogram
	gameTime      prometheus.Gauge
	entities      prometheus.Gauge

	generation prometheus.Gauge
	population prometheus.Gauge
	snapshots  prometheus.Counter

	wsClients  prometheus.Gauge
	wsMessages prometheus.Counter
	wsDropped  prometheus.Counter
}

// NewMetrics creates the collectors on a fresh registry with Go and process collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		framesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "vilife_frames_total",
			Help: "Frames run by the game loop",
		}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vilife_frame_duration_seconds",
			Help:    "Wall time spent in update and draw",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.016, 0.033},
		}),
		clockTick: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vilife_clock_tick_seconds",
			Help:    "Game time added per frame after clamping",
			Buckets: []float64{0.005, 0.01, 0.016, 0.025, 0.033, 0.05},
		}),
		gameTime: f.NewGauge(prometheus.GaugeOpts{
			Name: "vilife_game_time_seconds",
			Help: "Accumulated game time",
		}),
		entities: f.NewGauge(prometheus.GaugeOpts{
			Name: "vilife_entities",
			Help: "Entities in the engine",
		}),
		generation: f.NewGauge(prometheus.GaugeOpts{
			Name: "vilife_board_generation",
			Help: "Current board generation",
		}),
		population: f.NewGauge(prometheus.GaugeOpts{
			Name: "vilife_board_population",
			Help: "Live cells on the board",
		}),
		snapshots: f.NewCounter(prometheus.CounterOpts{
			Name: "vilife_board_snapshots_total",
			Help: "Board snapshots published",
		}),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "vilife_websocket_clients",
			Help: "Connected websocket clients",
		}),
		wsMessages: f.NewCounter(prometheus.CounterOpts{
			Name: "vilife_websocket_messages_total",
			Help: "Snapshot messages queued to websocket clients",
		}),
		wsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "vilife_websocket_dropped_total",
			Help: "Snapshot messages dropped on full client queues",
		}),
	}
}

// ObserveFrame implements engine.FrameObserver
func (m *Metrics) ObserveFrame(s engine.FrameStats) {
	m.framesTotal.Inc()
	m.frameDuration.Observe(s.Duration.Seconds())
	m.clockTick.Observe(s.ClockTick)
	m.gameTime.Set(s.GameTime)
	m.entities.Set(float64(s.Entities))
}

// Publish implements board.SnapshotSink
func (m *Metrics) Publish(s board.Snapshot) {
	m.snapshots.Inc()
	m.generation.Set(float64(s.Generation))
	m.population.Set(float64(s.Population))
}

// Registry returns the backing registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) setClients(n int) {
	if m != nil {
		m.wsClients.Set(float64(n))
	}
}

func (m *Metrics) addMessages(sent, dropped int) {
	if m != nil {
		m.wsMessages.Add(float64(sent))
		m.wsDropped.Add(float64(dropped))
	}
}
