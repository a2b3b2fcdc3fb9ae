package mtgio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetCardByName_ExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cards":[{"id":"abc","name":"Sol Ring","manaCost":"{1}","cmc":1,"type":"Artifact"}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	card, err := client.GetCardByName(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardByName failed: %v", err)
	}

	if card.Name != "Sol Ring" {
		t.Errorf("Expected card name 'Sol Ring', got '%s'", card.Name)
	}
	if card.TypeLine != "Artifact" {
		t.Errorf("Expected type 'Artifact', got '%s'", card.TypeLine)
	}
}

func TestClient_GetCardByName_FallsBackToLooseMatch(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		// Quoted exact match finds nothing; unquoted search succeeds.
		if requestCount == 1 {
			w.Write([]byte(`{"cards":[]}`))
			return
		}
		w.Write([]byte(`{"cards":[{"id":"abc","name":"Lightning Bolt"}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	card, err := client.GetCardByName(context.Background(), "Lightning")
	if err != nil {
		t.Fatalf("GetCardByName failed: %v", err)
	}

	if requestCount != 2 {
		t.Errorf("Expected 2 requests, got %d", requestCount)
	}
	if card.Name != "Lightning Bolt" {
		t.Errorf("Expected card name 'Lightning Bolt', got '%s'", card.Name)
	}
}

func TestClient_GetCardByName_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cards":[]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	_, err := client.GetCardByName(context.Background(), "Not A Card")
	if err == nil {
		t.Fatal("Expected error for missing card, got nil")
	}
}

func TestClient_GetCardByName_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	_, err := client.GetCardByName(context.Background(), "Sol Ring")
	if err == nil {
		t.Fatal("Expected error for server error, got nil")
	}
}
