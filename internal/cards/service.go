package cards

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/deckwright/deckwright/internal/mtgio"
	"github.com/deckwright/deckwright/internal/scryfall"
)

// fallbackConcurrency bounds the parallel per-name fallback lookups.
const fallbackConcurrency = 4

// Cache is the card cache consumed by the hydration service. A miss is
// reported as (nil, nil).
type Cache interface {
	Get(ctx context.Context, name string) (*Card, error)
	Put(ctx context.Context, card *Card) error
}

// BatchFetcher is the primary card source, normally the Scryfall client.
type BatchFetcher interface {
	GetCardsByNames(ctx context.Context, names []string) ([]scryfall.Card, []string, error)
}

// FallbackFetcher resolves single cards the primary source could not,
// normally the MTG.io client.
type FallbackFetcher interface {
	GetCardByName(ctx context.Context, name string) (*mtgio.Card, error)
}

// Service hydrates card names into full card data. Lookups go through the
// local cache first, then the batch API, then the per-name fallback API.
// Names that no source can resolve are reported back rather than failing
// the whole run.
type Service struct {
	cache    Cache
	fetcher  BatchFetcher
	fallback FallbackFetcher
	logger   *slog.Logger
}

// NewService creates a hydration service. cache and fallback may be nil to
// disable those layers.
func NewService(cache Cache, fetcher BatchFetcher, fallback FallbackFetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:    cache,
		fetcher:  fetcher,
		fallback: fallback,
		logger:   logger,
	}
}

// FetchAll resolves the given card names. The returned map is keyed by the
// requested name; the string slice lists names no source could resolve,
// sorted for stable output.
func (s *Service) FetchAll(ctx context.Context, names []string) (map[string]*Card, []string, error) {
	results := make(map[string]*Card, len(names))

	unique := dedupe(names)
	uncached := s.fromCache(ctx, unique, results)

	if len(uncached) == 0 {
		return results, nil, nil
	}

	unresolved := s.fromBatchAPI(ctx, uncached, results)
	missing, err := s.fromFallback(ctx, unresolved, results)
	if err != nil {
		return nil, nil, err
	}

	sort.Strings(missing)
	return results, missing, nil
}

// fromCache fills results from the cache and returns the names it missed.
func (s *Service) fromCache(ctx context.Context, names []string, results map[string]*Card) []string {
	if s.cache == nil {
		return names
	}

	var uncached []string
	for _, name := range names {
		card, err := s.cache.Get(ctx, name)
		if err != nil {
			s.logger.Warn("card cache lookup failed", "name", name, "error", err)
			uncached = append(uncached, name)
			continue
		}
		if card == nil {
			uncached = append(uncached, name)
			continue
		}
		results[name] = card
	}
	return uncached
}

// fromBatchAPI fetches names from the primary source and returns the names
// it could not resolve. A total batch failure degrades to the fallback
// source instead of aborting the run.
func (s *Service) fromBatchAPI(ctx context.Context, names []string, results map[string]*Card) []string {
	fetched, notFound, err := s.fetcher.GetCardsByNames(ctx, names)
	if err != nil {
		s.logger.Warn("batch card lookup failed, trying fallback source", "cards", len(names), "error", err)
		return names
	}

	// The API returns canonical names, which can differ from the request
	// in casing. Match results back to requests case-insensitively.
	byLower := make(map[string]*Card, len(fetched))
	for i := range fetched {
		card := FromScryfall(&fetched[i])
		byLower[strings.ToLower(card.Name)] = card
		s.store(ctx, card)
	}

	var unresolved []string
	for _, name := range names {
		if card, ok := byLower[strings.ToLower(name)]; ok {
			results[name] = card
		} else {
			unresolved = append(unresolved, name)
		}
	}

	if len(notFound) > 0 {
		s.logger.Debug("cards not found on primary source", "count", len(notFound))
	}

	return unresolved
}

// fromFallback resolves the stragglers one at a time with bounded
// concurrency and returns the names that remain missing.
func (s *Service) fromFallback(ctx context.Context, names []string, results map[string]*Card) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if s.fallback == nil {
		return names, nil
	}

	var mu sync.Mutex
	var missing []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fallbackConcurrency)

	for _, name := range names {
		name := name
		g.Go(func() error {
			wire, err := s.fallback.GetCardByName(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("card not found on any source", "name", name)
				mu.Lock()
				missing = append(missing, name)
				mu.Unlock()
				return nil
			}

			card := FromMTGIO(wire)
			s.store(gctx, card)

			mu.Lock()
			results[name] = card
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return missing, nil
}

func (s *Service) store(ctx context.Context, card *Card) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, card); err != nil {
		s.logger.Warn("failed to cache card", "name", card.Name, "error", err)
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
