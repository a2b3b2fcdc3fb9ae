package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/cards"
	"github.com/deckwright/deckwright/internal/config"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/decklist"
	"github.com/deckwright/deckwright/internal/export"
	"github.com/deckwright/deckwright/internal/llm"
	"github.com/deckwright/deckwright/internal/mtgio"
	"github.com/deckwright/deckwright/internal/scryfall"
	"github.com/deckwright/deckwright/internal/storage"
	"github.com/deckwright/deckwright/internal/version"
)

// app holds the state shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	configPath string
	debug      bool

	// export flags
	exportPath   string
	exportFormat string
	overwrite    bool

	// deck source flags
	moxfield     bool
	excludeLands bool

	db *storage.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "deckwright",
		Short:   "Deck building assistant for Magic: The Gathering",
		Long:    "deckwright analyzes decklists: mana base recommendations, curve analysis, and synergy detection.",
		Version: version.Version,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.exportPath, "export", "", "Write the result to this file instead of stdout")
	root.PersistentFlags().StringVar(&a.exportFormat, "export-format", "", "Export format: markdown or json (default: by file extension)")
	root.PersistentFlags().BoolVar(&a.overwrite, "overwrite", false, "Overwrite an existing export file")

	root.AddCommand(
		newManaCmd(a),
		newCurveCmd(a),
		newSynergyCmd(a),
		newCardCmd(a),
		newHistoryCmd(a),
		newStatusCmd(a),
	)

	return root
}

func (a *app) setup() error {
	var cfg *config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if a.debug || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
		a.db = nil
	}
}

// database opens the local database lazily. Returns nil when the cache
// is disabled.
func (a *app) database() (*storage.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}

	path := os.Getenv("DECKWRIGHT_DB_PATH")
	if path == "" {
		path = a.cfg.Cache.Path
	}
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	return db, nil
}

// cardService builds the hydration service: cache, Scryfall, MTG.io.
func (a *app) cardService() (*cards.Service, error) {
	var cache cards.Cache
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	if db != nil {
		ttl, _ := a.cfg.GetCacheTTL()
		cache = storage.NewCardCache(db, ttl)
	}

	return cards.NewService(cache, scryfall.NewClient(), mtgio.NewClient(), a.logger), nil
}

// loadDeck reads a decklist from a file path or a Moxfield deck.
func (a *app) loadDeck(ctx context.Context, source string) (*decklist.DeckList, error) {
	if a.moxfield || decklist.IsMoxfieldURL(source) {
		list, err := decklist.NewMoxfieldClient().FetchDeck(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch Moxfield deck: %w", err)
		}
		return list, nil
	}

	list, err := decklist.ParseFile(source)
	if err != nil {
		return nil, fmt.Errorf("parse decklist: %w", err)
	}
	return list, nil
}

// hydrate resolves card data for every entry, reporting unresolvable
// names without failing.
func (a *app) hydrate(ctx context.Context, list *decklist.DeckList) error {
	service, err := a.cardService()
	if err != nil {
		return err
	}

	resolved, missing, err := service.FetchAll(ctx, list.CardNames())
	if err != nil {
		return fmt.Errorf("fetch cards: %w", err)
	}
	list.Hydrate(resolved)

	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d cards could not be resolved: %s\n",
			len(missing), strings.Join(missing, ", "))
	}
	return nil
}

// outputFormat resolves the export format from the flag or the export
// file extension.
func (a *app) outputFormat() (export.Format, error) {
	if a.exportFormat != "" {
		format, ok := export.ParseFormat(a.exportFormat)
		if !ok {
			return "", fmt.Errorf("unknown export format: %s", a.exportFormat)
		}
		return format, nil
	}
	if strings.HasSuffix(a.exportPath, ".json") {
		return export.FormatJSON, nil
	}
	return export.FormatMarkdown, nil
}

// resolveFormat picks the deck format: flag, config default, then
// detection from the list.
func (a *app) resolveFormat(flagValue string, detect func() deck.Format) (deck.Format, error) {
	for _, candidate := range []string{flagValue, a.cfg.Defaults.Format} {
		if candidate == "" {
			continue
		}
		format, ok := deck.ParseFormat(strings.ToLower(candidate))
		if !ok {
			return deck.Custom, fmt.Errorf("unknown format: %s", candidate)
		}
		return format, nil
	}
	return detect(), nil
}

// resolveAlgorithm picks the mana base algorithm: flag then config.
func (a *app) resolveAlgorithm(flagValue string) (deck.Algorithm, error) {
	for _, candidate := range []string{flagValue, a.cfg.Defaults.Algorithm} {
		if candidate == "" {
			continue
		}
		algorithm, ok := deck.ParseAlgorithm(strings.ToLower(candidate))
		if !ok {
			return deck.Simple, fmt.Errorf("unknown algorithm: %s", candidate)
		}
		return algorithm, nil
	}
	return deck.Simple, nil
}

// ollamaClient builds an Ollama client from the config, or nil when LLM
// support is disabled.
func (a *app) ollamaClient() *llm.OllamaClient {
	if !a.cfg.LLM.Enabled {
		return nil
	}

	ollamaConfig := llm.DefaultOllamaConfig()
	if a.cfg.LLM.BaseURL != "" {
		ollamaConfig.BaseURL = a.cfg.LLM.BaseURL
	}
	if a.cfg.LLM.Model != "" {
		ollamaConfig.Model = a.cfg.LLM.Model
	}
	if timeout, err := a.cfg.GetLLMTimeout(); err == nil && timeout > 0 {
		ollamaConfig.InferenceTimeout = timeout
	}
	return llm.NewOllamaClient(ollamaConfig)
}

// explanationGenerator builds the commentary generator. Without LLM
// support in the config it produces template explanations only.
func (a *app) explanationGenerator() *llm.ExplanationGenerator {
	cfg := llm.DefaultExplanationConfig()
	client := a.ollamaClient()
	if client == nil {
		cfg.UseLLM = false
	}
	return llm.NewExplanationGenerator(client, cfg)
}

// saveAnalysis records the result when the cache database is available.
func (a *app) saveAnalysis(ctx context.Context, kind storage.AnalysisKind, deckName, deckFormat string, result any) {
	db, err := a.database()
	if err != nil || db == nil {
		return
	}
	repo := storage.NewAnalysisRepository(db)
	if _, err := repo.Save(ctx, kind, deckName, deckFormat, result); err != nil {
		a.logger.Warn("failed to save analysis", "kind", kind, "error", err)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
