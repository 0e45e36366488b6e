//go:build integration
// +build integration

package client_test

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestMain waits for the backend health endpoint before running tests.
func TestMain(m *testing.M) {
	waitForHealthy(backendURL(), 30*time.Second)
	os.Exit(m.Run())
}

func backendURL() string {
	if u := os.Getenv("TEST_BACKEND_URL"); u != "" {
		return u
	}
	return "http://localhost:5000/api"
}

func waitForHealthy(baseURL string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Status == "healthy" {
				_ = resp.Body.Close()
				return
			}
			_ = resp.Body.Close()
		}
		time.Sleep(200 * time.Millisecond)
	}
	// If not healthy within timeout, fail fast
	panic("backend not healthy at /health within timeout")
}
