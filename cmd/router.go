package main

import (
	"net/http"

	"github.com/angeloszaimis/booking-client/internal/client"
	"github.com/angeloszaimis/booking-client/internal/health"
	"github.com/angeloszaimis/booking-client/internal/metrics"
)

func setupRouter(apiClient *client.Client, monitor *health.Monitor, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/status", monitor.Handler())
	mux.HandleFunc("/metrics", collector.Handler(func() string {
		return apiClient.BreakerState().String()
	}))

	return mux
}
