// Package mtgio implements a minimal client for the magicthegathering.io
// API, used as a fallback card source when Scryfall is unavailable.
package mtgio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.magicthegathering.io/v1"
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
)

// Card represents a card in the MTG.io wire format.
type Card struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ManaCost      string     `json:"manaCost,omitempty"`
	CMC           float64    `json:"cmc,omitempty"`
	TypeLine      string     `json:"type,omitempty"`
	Text          string     `json:"text,omitempty"`
	Power         string     `json:"power,omitempty"`
	Toughness     string     `json:"toughness,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"colorIdentity,omitempty"`
	SetCode       string     `json:"set,omitempty"`
	SetName       string     `json:"setName,omitempty"`
	Rarity        string     `json:"rarity,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Legalities    []Legality `json:"legalities,omitempty"`
}

// Legality is one format/legality pair; MTG.io returns these as a list
// rather than an object.
type Legality struct {
	Format   string `json:"format"`
	Legality string `json:"legality"`
}

type cardsResponse struct {
	Cards []Card `json:"cards"`
}

// NotFoundError indicates that no card matched the query.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("card not found: %s", e.Name)
}

// Client is an MTG.io API client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
}

// NewClient creates a new MTG.io API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		baseURL:     defaultBaseURL,
		userAgent:   "deckwright/1.0",
	}
}

// NewClientWithBaseURL creates a client pointed at an alternate API base.
func NewClientWithBaseURL(base string) *Client {
	c := NewClient()
	c.baseURL = base
	return c
}

// GetCardByName looks a card up by name. It first tries a quoted exact
// match, then falls back to MTG.io's substring matching.
func (c *Client) GetCardByName(ctx context.Context, name string) (*Card, error) {
	exact := fmt.Sprintf("%s/cards?name=%s", c.baseURL, url.QueryEscape(`"`+name+`"`))
	card, err := c.firstCard(ctx, exact, name)
	if err == nil {
		return card, nil
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	loose := fmt.Sprintf("%s/cards?name=%s", c.baseURL, url.QueryEscape(name))
	card, err = c.firstCard(ctx, loose, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find card %q on MTG.io: %w", name, err)
	}
	return card, nil
}

func (c *Client) firstCard(ctx context.Context, u, name string) (*Card, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("MTG.io API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var cards cardsResponse
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse MTG.io response: %w", err)
	}

	if len(cards.Cards) == 0 {
		return nil, &NotFoundError{Name: name}
	}

	return &cards.Cards[0], nil
}
