package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/angeloszaimis/booking-client/internal/metrics"
)

// Monitor runs the probe on an interval, keeps the latest report for
// the status endpoint, and feeds per-endpoint health into the metrics
// collector.
type Monitor struct {
	probe     *Probe
	interval  time.Duration
	collector *metrics.Collector
	logger    *slog.Logger

	mutex      sync.RWMutex
	latest     Report
	hasReport  bool
	wasHealthy bool
}

func NewMonitor(probe *Probe, interval time.Duration, collector *metrics.Collector, logger *slog.Logger) *Monitor {
	return &Monitor{
		probe:     probe,
		interval:  interval,
		collector: collector,
		logger:    logger,
	}
}

// Run probes immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.observe(m.probe.Check(ctx))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Health monitor stopped")
			return
		case <-ticker.C:
			m.observe(m.probe.Check(ctx))
		}
	}
}

// Latest returns the most recent report, if any round has completed.
func (m *Monitor) Latest() (Report, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.latest, m.hasReport
}

// Handler serves the latest report as JSON for the monitoring display.
func (m *Monitor) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := m.Latest()
		if !ok {
			http.Error(w, "no health report yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (m *Monitor) observe(report Report) {
	m.mutex.Lock()
	changed := !m.hasReport || report.Healthy != m.wasHealthy
	m.latest = report
	m.hasReport = true
	m.wasHealthy = report.Healthy
	m.mutex.Unlock()

	if changed {
		if report.Healthy {
			m.logger.Info("Backend is up",
				slog.Int64("response_time_ms", report.ResponseTimeMs))
		} else {
			m.logger.Warn("Backend is down",
				slog.Int("status_code", report.StatusCode),
				slog.String("error", report.Error))
		}
	}

	for name, status := range report.Endpoints {
		m.emit(metrics.Event{
			Type:      metrics.EventHealthChanged,
			Timestamp: report.CheckedAt,
			Endpoint:  name,
			Healthy:   status == StatusHealthy,
		})
	}
}

func (m *Monitor) emit(event metrics.Event) {
	if m.collector == nil {
		return
	}

	select {
	case m.collector.EventChannel() <- event:
	default:
	}
}
