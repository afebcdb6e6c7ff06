package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homework_status_bot/internal/domain/homework"
)

func TestFetchSubmissionsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "OAuth secret" {
			t.Errorf("Authorization = %q, want %q", got, "OAuth secret")
		}
		if got := r.URL.Query().Get("from_date"); got != "1700000000" {
			t.Errorf("from_date = %q, want 1700000000", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"homeworks":[{"homework_name":"proj1","status":"approved"}],"current_date":1700000100}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/api/user_api/homework_statuses/", "secret", server.Client())
	body, err := c.FetchSubmissions(context.Background(), 1700000000)
	if err != nil {
		t.Fatalf("FetchSubmissions() error: %v", err)
	}

	m, ok := body.(map[string]any)
	if !ok {
		t.Fatalf("body is %T, want map", body)
	}
	if got := m["current_date"]; got != json.Number("1700000100") {
		t.Errorf("current_date = %#v, want json.Number", got)
	}
	if hw, ok := m["homeworks"].([]any); !ok || len(hw) != 1 {
		t.Errorf("homeworks = %#v", m["homeworks"])
	}
}

func TestFetchSubmissionsKeepsEndpointQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lang") != "en" || q.Get("from_date") != "5" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"homeworks":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/?lang=en", "secret", nil)
	if _, err := c.FetchSubmissions(context.Background(), 5); err != nil {
		t.Fatalf("FetchSubmissions() error: %v", err)
	}
}

func TestFetchSubmissionsErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantStatus: 500},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"code":"not_authenticated"}`, wantStatus: 401},
		{name: "no content", status: http.StatusNoContent, wantStatus: 204},
		{name: "malformed body", status: http.StatusOK, body: `{"homeworks": [`, wantStatus: 200},
		{name: "html body", status: http.StatusOK, body: `<html>maintenance</html>`, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, "secret", server.Client())
			body, err := c.FetchSubmissions(context.Background(), 42)
			if body != nil {
				t.Errorf("body = %#v, want nil", body)
			}

			var he *homework.Error
			if !errors.As(err, &he) {
				t.Fatalf("FetchSubmissions() error = %v, want *homework.Error", err)
			}
			if he.Kind != homework.KindAPI {
				t.Errorf("Kind = %v, want %v", he.Kind, homework.KindAPI)
			}
			if he.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", he.StatusCode, tt.wantStatus)
			}
			if he.Endpoint != server.URL || he.Params.Get("from_date") != "42" {
				t.Errorf("error lacks request context: %v", he)
			}
		})
	}
}

func TestFetchSubmissionsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(addr, "secret", nil).FetchSubmissions(context.Background(), 1)
	if homework.KindOf(err) != homework.KindAPI {
		t.Fatalf("FetchSubmissions() error = %v, want ApiError", err)
	}
	if !strings.Contains(err.Error(), "request failed") {
		t.Errorf("error = %q, want transport failure", err)
	}
}

func TestFetchSubmissionsContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"homeworks":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(server.URL, "secret", nil).FetchSubmissions(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchSubmissions() error = %v, want context.Canceled", err)
	}
}
