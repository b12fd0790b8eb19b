package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

func TestStateClientFetchesSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/state" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ContestSnapshot{
			Contest: domain.ContestState{Status: domain.StatusActive, DurationMinutes: 60},
			Teams:   []domain.Team{{ID: "team-alpha"}},
		})
	}))
	defer server.Close()

	client := NewStateClient(server.URL+"/", time.Second)
	snap, err := client.FetchState(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Contest.Status != domain.StatusActive || len(snap.Teams) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestStateClientRejectsNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>service placeholder</html>"))
	}))
	defer server.Close()

	client := NewStateClient(server.URL, time.Second)
	if _, err := client.FetchState(context.Background()); err == nil {
		t.Fatalf("expected error for HTML body")
	}
}

func TestStateClientRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewStateClient(server.URL, time.Second)
	if _, err := client.FetchState(context.Background()); err == nil {
		t.Fatalf("expected error for 502")
	}
}
