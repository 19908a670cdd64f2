package metrics

import (
	"encoding/json"
	"net/http"
)

// Handler serves the current snapshot as JSON. breakerState is read
// per request so the snapshot reflects the breaker's live state.
func (c *Collector) Handler(breakerState func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := c.metrics.Snapshot(breakerState())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}
