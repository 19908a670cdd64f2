package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventRequestCompleted EventType = "request_completed"
	EventRequestDegraded  EventType = "request_degraded"
	EventHealthChanged    EventType = "health_changed"
)

type Event struct {
	Type       EventType
	Timestamp  time.Time
	Endpoint   string
	Duration   time.Duration
	StatusCode int
	Healthy    bool
}

type Collector struct {
	eventCh chan Event
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan Event, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- Event {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event Event) {
	switch event.Type {
	case EventRequestCompleted:
		c.metrics.RecordResponse(event.Endpoint, event.Duration, event.StatusCode)

	case EventRequestDegraded:
		c.metrics.RecordDegraded(event.Endpoint)

	case EventHealthChanged:
		c.metrics.UpdateHealthStatus(event.Endpoint, event.Healthy)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(breakerState string) Snapshot {
	return c.metrics.Snapshot(breakerState)
}
