// Package main is the deckwright CLI: mana base calculation, curve
// analysis, card lookup, and synergy detection for Magic decks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local overrides like DECKWRIGHT_DB_PATH.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
