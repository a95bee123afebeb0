package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbe_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Storefront</title></head><body>ok</body></html>`))
	}))
	defer srv.Close()

	status, title, err := newPreflight("").probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("probe returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	if title != "Storefront" {
		t.Errorf("title = %q, want %q", title, "Storefront")
	}
}

func TestProbe_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	status, _, err := newPreflight("").probe(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", status, http.StatusServiceUnavailable)
	}
}

func TestProbe_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, _, err := newPreflight("").probe(context.Background(), url); err == nil {
		t.Fatal("expected error for closed server, got nil")
	}
}

func TestExtractTitle_NoTitle(t *testing.T) {
	if got := extractTitle([]byte(`<html><body>untitled</body></html>`)); got != "" {
		t.Errorf("extractTitle = %q, want empty", got)
	}
}
