package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

var startTime = time.Now()

// Health reports liveness. It never calls the upstream API.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}
