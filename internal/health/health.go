package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Status classifies one probed endpoint.
type Status string

const (
	StatusHealthy   Status = "healthy"   // responded with status < 500
	StatusUnhealthy Status = "unhealthy" // responded with status >= 500
	StatusError     Status = "error"     // transport failure
)

// Report is the outcome of one probe round, consumed by the
// monitoring display.
type Report struct {
	Healthy        bool              `json:"is_healthy"`
	ResponseTimeMs int64             `json:"response_time_ms"`
	StatusCode     int               `json:"status_code"`
	Error          string            `json:"error,omitempty"`
	Endpoints      map[string]Status `json:"endpoints"`
	CheckedAt      time.Time         `json:"checked_at"`
}

// criticalPaths are the read endpoints probed alongside the liveness
// check, keyed by endpoint identifier.
var criticalPaths = map[string]string{
	"venues.list":   "/venues",
	"events.list":   "/events",
	"bookings.list": "/bookings",
	"stats.system":  "/stats",
}

// Probe checks backend liveness and the status of critical read
// endpoints. It deliberately bypasses the client's breaker, cache,
// and retries: monitoring must see the backend as it really is.
type Probe struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
}

func NewProbe(baseURL string, timeout time.Duration, logger *slog.Logger) (*Probe, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Probe{
		baseURL: u,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Check performs one probe round: a liveness call to /health plus one
// bounded call per critical endpoint.
func (p *Probe) Check(ctx context.Context) Report {
	report := Report{
		Endpoints: make(map[string]Status, len(criticalPaths)),
		CheckedAt: time.Now(),
	}

	start := time.Now()
	statusCode, err := p.get(ctx, "/health")
	report.ResponseTimeMs = time.Since(start).Milliseconds()

	if err != nil {
		report.Error = err.Error()
	} else {
		report.StatusCode = statusCode
		report.Healthy = statusCode == http.StatusOK
	}

	for name, path := range criticalPaths {
		report.Endpoints[name] = p.classify(ctx, path)
	}

	return report
}

func (p *Probe) get(ctx context.Context, path string) (int, error) {
	u := p.baseURL.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	return res.StatusCode, nil
}

func (p *Probe) classify(ctx context.Context, path string) Status {
	statusCode, err := p.get(ctx, path)
	if err != nil {
		return StatusError
	}
	if statusCode >= http.StatusInternalServerError {
		return StatusUnhealthy
	}

	return StatusHealthy
}
