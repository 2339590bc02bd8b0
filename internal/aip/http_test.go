package aip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, WithRetryInterval(time.Millisecond))
}

func TestGetRetriesTransientFailures(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(UserPage{Total: 1, Items: []User{{UserID: "u1"}}})
	})

	page, err := client.ListUsers(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListUsers failed after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (one failure, one retry)", attempts)
	}
	if page.Total != 1 {
		t.Errorf("total = %d, want 1", page.Total)
	}
}

func TestGetRetryBudget(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.ListUsers(context.Background(), 10, 0)
	if err == nil {
		t.Fatal("expected the persistent 502 to surface")
	}
	if attempts != 4 {
		t.Errorf("attempts = %d, want 4 (the initial call plus 3 retries)", attempts)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such agent"}`))
	})

	_, err := client.GetAgent(context.Background(), "user:0xabc", "ghost")
	if err == nil {
		t.Fatal("expected a platform error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx is final)", attempts)
	}

	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Status != 404 || apiErr.Message != "no such agent" {
		t.Errorf("APIError = %+v, want status 404 with the platform's message", apiErr)
	}
}

func TestMutatingCallsAreNotRetried(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})

	_, err := client.RegisterUser(context.Background(), "0xabc", "")
	if err == nil {
		t.Fatal("expected the 500 to surface")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (mutations are never retried)", attempts)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := NewHTTPClient(srv.URL,
		WithUserAgent("aip-skill-test"),
		WithMemoryCredentials("membase-acct", "membase-secret"),
	)
	if _, err := client.GetAgent(context.Background(), "user:0xabc", "agent-7"); err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}

	if got.Get("User-Agent") != "aip-skill-test" {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if got.Get("X-Membase-Account") != "membase-acct" || got.Get("X-Membase-Secret-Key") != "membase-secret" {
		t.Error("memory credential headers missing")
	}
}

func TestRunPostsInvocation(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(RunResult{Success: true, Status: "completed", Output: "sunny"})
	})

	result, err := client.Run(context.Background(), RunRequest{
		Objective: "forecast",
		Agent:     "weather_public",
		UserID:    "user:0xabc",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if gotPath != "/api/v1/runs" {
		t.Errorf("path = %q, want /api/v1/runs", gotPath)
	}
	if gotBody["objective"] != "forecast" || gotBody["agent"] != "weather_public" || gotBody["user_id"] != "user:0xabc" {
		t.Errorf("body = %v", gotBody)
	}
	if !result.Success || result.Output != "sunny" {
		t.Errorf("result = %+v", result)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
		healthy, err := client.HealthCheck(context.Background())
		if err != nil || !healthy {
			t.Errorf("HealthCheck = (%v, %v), want (true, nil)", healthy, err)
		}
	})

	t.Run("unhealthy status", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
		})
		healthy, err := client.HealthCheck(context.Background())
		if err != nil {
			t.Fatalf("a served error status is reachable, not an error: %v", err)
		}
		if healthy {
			t.Error("healthy = true for a 503")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		client := NewHTTPClient(srv.URL, WithRetryInterval(time.Millisecond), WithMaxRetries(0))

		healthy, err := client.HealthCheck(context.Background())
		if err == nil {
			t.Fatal("expected a transport error for a closed server")
		}
		if healthy {
			t.Error("healthy = true for an unreachable endpoint")
		}
	})
}

func TestAPIErrorMessageFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"detail field", `{"detail":"invalid wallet"}`, "invalid wallet"},
		{"opaque body", `<html>gateway</html>`, "platform returned status 418"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newAPIError(418, []byte(tt.body))
			if apiErr.Message != tt.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}
