package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Handler reports liveness for container probes. It is mounted outside the documented API.
func Handler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Status: "healthy", Version: version})
	}
}
