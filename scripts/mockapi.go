// Mockapi is a standalone booking backend used for exercising the
// client by hand. It serves a small in-memory dataset and can inject
// failures to drive the breaker through its states.
//
// Usage:
//
//	go run mockapi.go -port 8000 -fail-rate 0.2 -latency 50ms
//
// While running, POST /admin/down makes every endpoint return 500 and
// POST /admin/up restores normal behavior.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type store struct {
	mutex    sync.Mutex
	venues   []map[string]any
	events   []map[string]any
	bookings []map[string]any
	nextID   int
}

func newStore() *store {
	return &store{
		venues: []map[string]any{
			{"id": 1, "name": "Grand Arena", "capacity": 5000},
			{"id": 2, "name": "City Hall", "capacity": 800},
		},
		events: []map[string]any{
			{"id": 1, "venue_id": 1, "name": "Summer Concert"},
		},
		bookings: []map[string]any{
			{"id": 1, "event_id": 1, "status": "confirmed", "quantity": 2},
		},
		nextID: 100,
	}
}

func (s *store) add(list *[]map[string]any, item map[string]any) map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item["id"] = s.nextID
	s.nextID++
	*list = append(*list, item)
	return item
}

func (s *store) snapshot(list []map[string]any) []map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]map[string]any, len(list))
	copy(out, list)
	return out
}

func main() {
	port := flag.Int("port", 8000, "port to listen on")
	failRate := flag.Float64("fail-rate", 0, "probability of a 500 response per request")
	latency := flag.Duration("latency", 0, "artificial latency added to every response")
	flag.Parse()

	data := newStore()
	var down atomic.Bool

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}

	// wrap applies latency and failure injection before the real handler.
	wrap := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			log.Printf("request: method=%s path=%s from=%s", r.Method, r.URL.Path, r.RemoteAddr)
			if *latency > 0 {
				time.Sleep(*latency)
			}
			if down.Load() || rand.Float64() < *failRate {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "injected failure"})
				return
			}
			next(w, r)
		}
	}

	collection := func(get func() []map[string]any, create func(map[string]any) map[string]any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				writeJSON(w, http.StatusOK, get())
			case http.MethodPost:
				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid json"})
					return
				}
				writeJSON(w, http.StatusCreated, create(body))
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", wrap(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}))
	mux.HandleFunc("/venues", wrap(collection(
		func() []map[string]any { return data.snapshot(data.venues) },
		func(body map[string]any) map[string]any { return data.add(&data.venues, body) },
	)))
	mux.HandleFunc("/events", wrap(collection(
		func() []map[string]any { return data.snapshot(data.events) },
		func(body map[string]any) map[string]any { return data.add(&data.events, body) },
	)))
	mux.HandleFunc("/bookings", wrap(collection(
		func() []map[string]any { return data.snapshot(data.bookings) },
		func(body map[string]any) map[string]any { return data.add(&data.bookings, body) },
	)))
	mux.HandleFunc("/stats", wrap(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"overview": map[string]any{
				"total_venues":   len(data.snapshot(data.venues)),
				"total_events":   len(data.snapshot(data.events)),
				"total_bookings": len(data.snapshot(data.bookings)),
			},
			"revenue":                  map[string]any{"total_revenue": 1234.50},
			"booking_status_breakdown": map[string]any{"confirmed": 1},
		})
	}))

	mux.HandleFunc("/admin/down", func(w http.ResponseWriter, r *http.Request) {
		down.Store(true)
		log.Printf("backend switched to failing mode")
		writeJSON(w, http.StatusOK, map[string]string{"mode": "down"})
	})
	mux.HandleFunc("/admin/up", func(w http.ResponseWriter, r *http.Request) {
		down.Store(false)
		log.Printf("backend restored")
		writeJSON(w, http.StatusOK, map[string]string{"mode": "up"})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("mock booking API listening on %s (fail-rate=%.2f latency=%s)", addr, *failRate, *latency)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
