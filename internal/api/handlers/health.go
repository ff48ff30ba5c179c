package handlers

import (
	"net/http"
	"time"

	"github.com/harmoni-app/relay/pkg/httpext"
)

const healthMessage = "Harmoni server is running"

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth always reports OK; it never touches the upstream.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   healthMessage,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
