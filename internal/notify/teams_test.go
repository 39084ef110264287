package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTeamsWebhook_Send(t *testing.T) {
	var got messageCard
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: want POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewTeamsWebhook(srv.URL, time.Second)
	if err := hook.Send(context.Background(), "title", "content"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "MessageCard" || got.Title != "title" || got.Text != "content" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestTeamsWebhook_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	hook := NewTeamsWebhook(srv.URL, time.Second)
	if err := hook.Send(context.Background(), "t", "c"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestTeamsWebhook_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	hook := NewTeamsWebhook(srv.URL, time.Second)
	if err := hook.Send(context.Background(), "t", "c"); err == nil {
		t.Fatal("expected transport error")
	}
}
