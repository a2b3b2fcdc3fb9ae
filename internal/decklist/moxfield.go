package decklist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	defaultMoxfieldBaseURL = "https://api2.moxfield.com/v2"
	moxfieldTimeout        = 30 * time.Second
)

var (
	deckIDOnlyRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	moxfieldURLRe = regexp.MustCompile(`moxfield\.com/decks/([a-zA-Z0-9_-]+)`)
)

// moxfieldDeck is the relevant subset of the Moxfield v2 deck response.
type moxfieldDeck struct {
	Name       string                   `json:"name"`
	Format     string                   `json:"format"`
	Mainboard  map[string]moxfieldEntry `json:"mainboard"`
	Sideboard  map[string]moxfieldEntry `json:"sideboard"`
	Commanders map[string]moxfieldEntry `json:"commanders"`
	Companions map[string]moxfieldEntry `json:"companions"`
	Maybeboard map[string]moxfieldEntry `json:"maybeboard"`
}

type moxfieldEntry struct {
	Quantity int              `json:"quantity"`
	Card     moxfieldCardData `json:"card"`
}

type moxfieldCardData struct {
	Name       string `json:"name"`
	ScryfallID string `json:"scryfall_id"`
}

// MoxfieldClient fetches decklists from the Moxfield API.
type MoxfieldClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewMoxfieldClient creates a Moxfield API client.
func NewMoxfieldClient() *MoxfieldClient {
	return &MoxfieldClient{
		httpClient: &http.Client{Timeout: moxfieldTimeout},
		baseURL:    defaultMoxfieldBaseURL,
		userAgent:  "deckwright/1.0",
	}
}

// NewMoxfieldClientWithBaseURL creates a client pointed at an alternate API base.
func NewMoxfieldClientWithBaseURL(base string) *MoxfieldClient {
	c := NewMoxfieldClient()
	c.baseURL = base
	return c
}

// ExtractDeckID pulls the deck ID out of a Moxfield URL, or returns the
// input unchanged when it already looks like a bare ID.
func ExtractDeckID(source string) (string, bool) {
	if deckIDOnlyRe.MatchString(source) {
		return source, true
	}
	if m := moxfieldURLRe.FindStringSubmatch(source); m != nil {
		return m[1], true
	}
	return "", false
}

// IsMoxfieldURL reports whether the source points at moxfield.com.
func IsMoxfieldURL(source string) bool {
	return moxfieldURLRe.MatchString(source)
}

// FetchDeck downloads a deck by URL or ID and converts it to a DeckList.
func (c *MoxfieldClient) FetchDeck(ctx context.Context, source string) (*DeckList, error) {
	deckID, ok := ExtractDeckID(source)
	if !ok {
		return nil, fmt.Errorf("invalid Moxfield URL or deck ID: %s", source)
	}

	url := fmt.Sprintf("%s/decks/all/%s", c.baseURL, deckID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck from Moxfield: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("moxfield API returned status %d: %s", resp.StatusCode, string(body))
	}

	var deck moxfieldDeck
	if err := json.NewDecoder(resp.Body).Decode(&deck); err != nil {
		return nil, fmt.Errorf("failed to parse Moxfield response: %w", err)
	}

	return convertMoxfieldDeck(&deck), nil
}

func convertMoxfieldDeck(deck *moxfieldDeck) *DeckList {
	list := New(SourceMoxfield)
	list.Name = deck.Name
	list.Format = deck.Format

	for _, entry := range deck.Commanders {
		list.AddEntry(entry.Quantity, entry.Card.Name, Commander)
	}
	// Companions sit outside the 100 like commanders do.
	for _, entry := range deck.Companions {
		list.AddEntry(entry.Quantity, entry.Card.Name, Commander)
	}
	for _, entry := range deck.Mainboard {
		list.AddEntry(entry.Quantity, entry.Card.Name, Mainboard)
	}
	for _, entry := range deck.Sideboard {
		list.AddEntry(entry.Quantity, entry.Card.Name, Sideboard)
	}
	for _, entry := range deck.Maybeboard {
		list.AddEntry(entry.Quantity, entry.Card.Name, Maybeboard)
	}

	return list
}
