package scryfall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}

	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}

	if client.userAgent == "" {
		t.Error("userAgent is empty")
	}

	if client.baseURL != defaultBaseURL {
		t.Errorf("Expected base URL %q, got %q", defaultBaseURL, client.baseURL)
	}
}

func TestClient_GetCardByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("exact"); got != "Lightning Bolt" {
			t.Errorf("Expected exact=Lightning Bolt, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "test-id",
			"name": "Lightning Bolt",
			"mana_cost": "{R}",
			"cmc": 1.0,
			"type_line": "Instant",
			"oracle_text": "Lightning Bolt deals 3 damage to any target."
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	card, err := client.GetCardByName(ctx, "Lightning Bolt")
	if err != nil {
		t.Fatalf("GetCardByName failed: %v", err)
	}

	if card.Name != "Lightning Bolt" {
		t.Errorf("Expected card name 'Lightning Bolt', got '%s'", card.Name)
	}

	if card.CMC != 1.0 {
		t.Errorf("Expected CMC 1.0, got %v", card.CMC)
	}
}

func TestClient_SearchCardFuzzy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fuzzy"); got != "litning blt" {
			t.Errorf("Expected fuzzy=litning blt, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"test-id","name":"Lightning Bolt"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	card, err := client.SearchCardFuzzy(context.Background(), "litning blt")
	if err != nil {
		t.Fatalf("SearchCardFuzzy failed: %v", err)
	}

	if card.Name != "Lightning Bolt" {
		t.Errorf("Expected card name 'Lightning Bolt', got '%s'", card.Name)
	}
}

func TestClient_NotFoundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"No card found"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	_, err := client.GetCardByName(context.Background(), "Not A Card")
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}

	if !IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got: %v", err)
	}
}

func TestClient_RateLimitRetry(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++

		if attemptCount < 2 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"object":"error","code":"rate_limit","status":429}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"test","name":"Test Card"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	var card Card
	err := client.doRequest(context.Background(), server.URL, &card)
	if err != nil {
		t.Fatalf("Expected success after retry, got error: %v", err)
	}

	if attemptCount < 2 {
		t.Errorf("Expected at least 2 attempts, got %d", attemptCount)
	}

	if card.Name != "Test Card" {
		t.Errorf("Expected card name 'Test Card', got '%s'", card.Name)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{invalid json}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	var card Card
	err := client.doRequest(context.Background(), server.URL, &card)
	if err == nil {
		t.Fatal("Expected error for invalid JSON, got nil")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var card Card
	err := client.doRequest(ctx, server.URL, &card)
	if err == nil {
		t.Fatal("Expected error from context cancellation, got nil")
	}
}

func TestClient_Headers(t *testing.T) {
	receivedUserAgent := ""
	receivedAccept := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUserAgent = r.Header.Get("User-Agent")
		receivedAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	var card Card
	client.doRequest(context.Background(), server.URL, &card)

	if receivedUserAgent != "deckwright/1.0" {
		t.Errorf("Expected User-Agent 'deckwright/1.0', got '%s'", receivedUserAgent)
	}

	if receivedAccept != "application/json" {
		t.Errorf("Expected Accept header 'application/json', got '%s'", receivedAccept)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "NotFoundError",
			err:      &NotFoundError{URL: "test"},
			expected: true,
		},
		{
			name:     "Other error",
			err:      &APIError{Status: 500},
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNotFound(tt.err)
			if result != tt.expected {
				t.Errorf("IsNotFound() = %v, want %v", result, tt.expected)
			}
		})
	}
}
