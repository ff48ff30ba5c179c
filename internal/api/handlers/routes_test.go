package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/harmoni-app/relay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "Harmoni server is running", body.Message)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err, "timestamp %q is not ISO-8601", body.Timestamp)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}

func TestRegisterRoutes(t *testing.T) {
	mockChat := new(MockChatService)
	router := mux.NewRouter()
	RegisterRoutes(router, mockChat, config.Default())

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedError  string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, ""},
		{"health head", http.MethodHead, "/health", http.StatusOK, ""},
		{"unknown path", http.MethodGet, "/unknown-path", http.StatusNotFound, "Endpoint not found"},
		{"root", http.MethodGet, "/", http.StatusNotFound, "Endpoint not found"},
		{"chat with GET", http.MethodGet, "/chat", http.StatusNotFound, "Endpoint not found"},
		{"health with POST", http.MethodPost, "/health", http.StatusNotFound, "Endpoint not found"},
		{"nested path", http.MethodPost, "/chat/completions", http.StatusNotFound, "Endpoint not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.JSONEq(t, `{"error":"`+tt.expectedError+`"}`, w.Body.String())
			}
		})
	}

	mockChat.AssertNotCalled(t, "ProcessChat", mock.Anything, mock.Anything)
}
