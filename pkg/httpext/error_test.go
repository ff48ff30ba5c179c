package httpext

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJsonError(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		code           int
		expectedStatus int
	}{
		{
			name:           "Bad request",
			message:        "messages array cannot be empty",
			code:           http.StatusBadRequest,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not found",
			message:        "Endpoint not found",
			code:           http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JsonError(w, tt.message, tt.code)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status code %d, got %d", tt.expectedStatus, w.Code)
			}

			if w.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response body: %v", err)
			}

			if response["error"] != tt.message {
				t.Errorf("Expected error message %q, got %v", tt.message, response["error"])
			}
			if _, ok := response["details"]; ok {
				t.Errorf("Expected no details field, got %v", response["details"])
			}
		})
	}
}

func TestJsonErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JsonErrorWithDetails(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Details: "connection refused",
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}

	if response.Error != "Internal server error" {
		t.Errorf("Expected error %q, got %q", "Internal server error", response.Error)
	}
	if response.Details != "connection refused" {
		t.Errorf("Expected details %q, got %q", "connection refused", response.Details)
	}
}

func TestJsonResponse(t *testing.T) {
	t.Run("encodes body", func(t *testing.T) {
		w := httptest.NewRecorder()
		JsonResponse(w, http.StatusOK, map[string]string{"status": "OK"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
		}
		if got := w.Body.String(); got != "{\"status\":\"OK\"}\n" {
			t.Errorf("Unexpected body %q", got)
		}
	})

	t.Run("unencodable value falls back to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		JsonResponse(w, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}
