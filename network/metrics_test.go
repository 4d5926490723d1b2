package network

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/vi-life/engine"
)

// metricValue gathers the registry and returns the first sample of name
func metricValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name || len(f.GetMetric()) == 0 {
			continue
		}
		metric := f.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
		return metric.GetGauge().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestMetricsObserveFrame(t *testing.T) {
	m := NewMetrics()
	m.ObserveFrame(engine.FrameStats{Frame: 1, ClockTick: 0.016, GameTime: 1.5, Duration: time.Millisecond, Entities: 3})
	m.ObserveFrame(engine.FrameStats{Frame: 2, ClockTick: 0.016, GameTime: 1.516, Duration: time.Millisecond, Entities: 4})

	if got := metricValue(t, m, "vilife_frames_total"); got != 2 {
		t.Errorf("frames_total = %v, want 2", got)
	}
	if got := metricValue(t, m, "vilife_entities"); got != 4 {
		t.Errorf("entities = %v, want 4", got)
	}
	if got := metricValue(t, m, "vilife_game_time_seconds"); got != 1.516 {
		t.Errorf("game_time = %v, want 1.516", got)
	}
}

func TestMetricsPublish(t *testing.T) {
	m := NewMetrics()
	m.Publish(testSnapshot(7))

	if got := metricValue(t, m, "vilife_board_generation"); got != 7 {
		t.Errorf("generation = %v, want 7", got)
	}
	if got := metricValue(t, m, "vilife_board_population"); got != 3 {
		t.Errorf("population = %v, want 3", got)
	}
}

func TestMetricsHandlerExposition(t *testing.T) {
	m := NewMetrics()
	m.Publish(testSnapshot(1))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{"vilife_board_generation", "vilife_frames_total", "go_goroutines"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("exposition missing %s", name)
		}
	}
}

func TestMetricsNilSafeHelpers(t *testing.T) {
	var m *Metrics
	m.setClients(3)
	m.addMessages(1, 1)
}
