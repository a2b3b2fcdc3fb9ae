package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deckwright/deckwright/internal/cards"
)

// DefaultCardTTL is how long cached card data stays fresh. Oracle text
// and prices drift slowly, so a month is plenty.
const DefaultCardTTL = 30 * 24 * time.Hour

// CardCache is a SQLite-backed card cache keyed by normalized card name.
// It implements cards.Cache.
type CardCache struct {
	db  *DB
	ttl time.Duration
}

// NewCardCache creates a card cache. A non-positive ttl falls back to
// DefaultCardTTL.
func NewCardCache(db *DB, ttl time.Duration) *CardCache {
	if ttl <= 0 {
		ttl = DefaultCardTTL
	}
	return &CardCache{db: db, ttl: ttl}
}

// Get returns the cached card for name, or (nil, nil) when the name is
// not cached or the entry has expired.
func (c *CardCache) Get(ctx context.Context, name string) (*cards.Card, error) {
	query := `
		SELECT payload, fetched_at
		FROM card_cache
		WHERE name_key = ?
	`

	var payload string
	var fetchedAt time.Time
	err := c.db.Conn().QueryRowContext(ctx, query, nameKey(name)).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached card: %w", err)
	}

	if time.Since(fetchedAt) > c.ttl {
		return nil, nil
	}

	var card cards.Card
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		return nil, fmt.Errorf("failed to decode cached card %q: %w", name, err)
	}
	return &card, nil
}

// Put stores or refreshes a card in the cache.
func (c *CardCache) Put(ctx context.Context, card *cards.Card) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to encode card %q: %w", card.Name, err)
	}

	query := `
		INSERT INTO card_cache (name_key, name, payload, fetched_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name_key) DO UPDATE SET
			name = excluded.name,
			payload = excluded.payload,
			fetched_at = CURRENT_TIMESTAMP
	`

	_, err = c.db.Conn().ExecContext(ctx, query, nameKey(card.Name), card.Name, string(payload))
	if err != nil {
		return fmt.Errorf("failed to cache card %q: %w", card.Name, err)
	}
	return nil
}

// Purge deletes entries older than the TTL and returns how many were
// removed.
func (c *CardCache) Purge(ctx context.Context) (int64, error) {
	seconds := int64(c.ttl.Seconds())
	query := `
		DELETE FROM card_cache
		WHERE unixepoch(fetched_at) <= unixepoch('now', '-' || ? || ' seconds')
	`

	res, err := c.db.Conn().ExecContext(ctx, query, seconds)
	if err != nil {
		return 0, fmt.Errorf("failed to purge card cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return n, nil
}

// Count returns the number of cached cards.
func (c *CardCache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM card_cache`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cached cards: %w", err)
	}
	return n, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
