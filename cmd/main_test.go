package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harmoni-app/relay/internal/config"
	"github.com/harmoni-app/relay/internal/services"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) (*httptest.Server, *services.Services) {
	t.Helper()

	fake := httptest.NewServer(upstream)
	t.Cleanup(fake.Close)

	cfg := config.Default()
	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.BaseURL = fake.URL + "/v1"

	svcs, err := services.InitializeServices(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	server := httptest.NewServer(setupRouter(svcs, cfg))
	t.Cleanup(server.Close)
	return server, svcs
}

func TestMainServer(t *testing.T) {
	server, svcs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`))
	})

	t.Run("chat endpoint", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/chat", "application/json", strings.NewReader(`{
			"messages": [{"role": "user", "content": "hello"}]
		}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID response header")
		}

		body, _ := io.ReadAll(resp.Body)
		if got, want := string(body), "{\"choices\":[{\"message\":{\"role\":\"assistant\",\"content\":\"hi\"}}]}\n"; got != want {
			t.Errorf("Expected body %q, got %q", want, got)
		}
	})

	t.Run("chat endpoint rejects empty messages", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/chat", "application/json", strings.NewReader(`{"messages": []}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("health endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}

		var health struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("Failed to decode health response: %v", err)
		}
		if health.Status != "OK" || health.Timestamp == "" {
			t.Errorf("Unexpected health response: %+v", health)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodOptions, server.URL+"/chat", nil)
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("Expected status code %d, got %d", http.StatusNoContent, resp.StatusCode)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
		}
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/invalid")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
		}

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["error"] != "Endpoint not found" {
			t.Errorf("Expected error %q, got %q", "Endpoint not found", body["error"])
		}
	})

	t.Run("metrics endpoint is not public", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})

	t.Run("metrics server", func(t *testing.T) {
		metricsSrv := setupMetricsServer(svcs, "127.0.0.1:0")
		w := httptest.NewRecorder()
		metricsSrv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
		}
		if !strings.Contains(w.Body.String(), `harmoni_upstream_requests_total{outcome="ok"} 1`) {
			t.Errorf("Expected upstream success to be counted, got:\n%s", w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `harmoni_http_requests_total{method="GET",route="/health",status="200"} 1`) {
			t.Errorf("Expected health request to be counted, got:\n%s", w.Body.String())
		}
	})
}
