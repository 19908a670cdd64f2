package metrics

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mutex         sync.RWMutex
	requests      map[string]int64
	degraded      map[string]int64
	responseTimes map[string][]time.Duration
	statusCodes   map[string]map[int]int64
	healthStatus  map[string]bool
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64                      `json:"total_requests"`
	TotalDegraded int64                      `json:"total_degraded"`
	Uptime        time.Duration              `json:"uptime"`
	BreakerState  string                     `json:"breaker_state"`
	Endpoints     map[string]EndpointMetrics `json:"endpoints"`
}

type EndpointMetrics struct {
	Requests    int64         `json:"requests"`
	Degraded    int64         `json:"degraded"`
	Healthy     bool          `json:"healthy"`
	AvgResponse time.Duration `json:"avg_response"`
	P50Response time.Duration `json:"p50_response"`
	P95Response time.Duration `json:"p95_response"`
	P99Response time.Duration `json:"p99_response"`
	StatusCodes map[int]int64 `json:"status_codes"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests:      make(map[string]int64),
		degraded:      make(map[string]int64),
		responseTimes: make(map[string][]time.Duration),
		statusCodes:   make(map[string]map[int]int64),
		healthStatus:  make(map[string]bool),
		startTime:     time.Now(),
	}
}

func (m *Metrics) RecordResponse(endpoint string, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.requests[endpoint]++
	m.responseTimes[endpoint] = append(m.responseTimes[endpoint], duration)

	// Copy when trimming so the backing array of the old slice can be
	// collected instead of growing for the process lifetime.
	if len(m.responseTimes[endpoint]) > 1000 {
		trimmed := make([]time.Duration, 1000)
		copy(trimmed, m.responseTimes[endpoint][1:])
		m.responseTimes[endpoint] = trimmed
	}

	if m.statusCodes[endpoint] == nil {
		m.statusCodes[endpoint] = make(map[int]int64)
	}
	m.statusCodes[endpoint][statusCode]++
}

func (m *Metrics) RecordDegraded(endpoint string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests[endpoint]++
	m.degraded[endpoint]++
}

func (m *Metrics) UpdateHealthStatus(endpoint string, healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.healthStatus[endpoint] = healthy
}

func (m *Metrics) Snapshot(breakerState string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:       time.Since(m.startTime),
		BreakerState: breakerState,
		Endpoints:    make(map[string]EndpointMetrics),
	}

	// Collect all endpoints that appear in any map
	allEndpoints := make(map[string]bool)
	for endpoint := range m.requests {
		allEndpoints[endpoint] = true
	}
	for endpoint := range m.degraded {
		allEndpoints[endpoint] = true
	}
	for endpoint := range m.healthStatus {
		allEndpoints[endpoint] = true
	}

	for endpoint := range allEndpoints {
		snap.TotalRequests += m.requests[endpoint]
		snap.TotalDegraded += m.degraded[endpoint]

		em := EndpointMetrics{
			Requests: m.requests[endpoint],
			Degraded: m.degraded[endpoint],
			Healthy:  m.healthStatus[endpoint],
		}

		// The snapshot must not share the live map: the collector
		// keeps writing to it while handlers encode the snapshot.
		if codes := m.statusCodes[endpoint]; len(codes) > 0 {
			em.StatusCodes = make(map[int]int64, len(codes))
			for code, count := range codes {
				em.StatusCodes[code] = count
			}
		}

		durations := m.responseTimes[endpoint]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			em.AvgResponse = average(sorted)
			em.P50Response = percentile(sorted, 0.50)
			em.P95Response = percentile(sorted, 0.95)
			em.P99Response = percentile(sorted, 0.99)
		}

		snap.Endpoints[endpoint] = em
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
