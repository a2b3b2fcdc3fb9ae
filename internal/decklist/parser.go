package decklist

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	prefixQuantityRe = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)
	suffixQuantityRe = regexp.MustCompile(`^(.+?)\s+x(\d+)$`)
)

// ParseFile reads and parses a plain text decklist file.
func ParseFile(path string) (*DeckList, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decklist %s: %w", path, err)
	}
	return ParseText(string(content)), nil
}

// ParseText parses a plain text decklist. Supported card line formats:
//
//	4 Lightning Bolt
//	4x Lightning Bolt
//	Lightning Bolt x4
//	Lightning Bolt
//
// Section headers ("// Commander", "Sideboard:") switch the current
// section; lines starting with '#' are comments.
func ParseText(content string) *DeckList {
	list := New(SourceText)
	current := Mainboard

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "//") || strings.HasSuffix(trimmed, ":") {
			if section, ok := parseSectionHeader(trimmed); ok {
				current = section
			}
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if qty, name, ok := parseCardLine(trimmed); ok {
			list.AddEntry(qty, name, current)
		}
	}

	return list
}

// parseSectionHeader recognizes section headers like "// Commander" and
// "Sideboard:".
func parseSectionHeader(line string) (Section, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(line), "//"))
	trimmed = strings.TrimSuffix(trimmed, ":")

	switch {
	case strings.HasPrefix(trimmed, "commander"):
		return Commander, true
	case strings.HasPrefix(trimmed, "mainboard"), strings.HasPrefix(trimmed, "main"):
		return Mainboard, true
	case strings.HasPrefix(trimmed, "sideboard"), strings.HasPrefix(trimmed, "side"):
		return Sideboard, true
	case strings.HasPrefix(trimmed, "maybeboard"), strings.HasPrefix(trimmed, "maybe"):
		return Maybeboard, true
	default:
		return Mainboard, false
	}
}

// parseCardLine extracts (quantity, name) from a card line. Bare card
// names default to quantity 1.
func parseCardLine(line string) (int, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return 0, "", false
	}

	if m := prefixQuantityRe.FindStringSubmatch(trimmed); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err == nil && qty > 0 {
			return qty, strings.TrimSpace(m[2]), true
		}
	}

	if m := suffixQuantityRe.FindStringSubmatch(trimmed); m != nil {
		qty, err := strconv.Atoi(m[2])
		if err == nil && qty > 0 {
			return qty, strings.TrimSpace(m[1]), true
		}
	}

	return 1, trimmed, true
}
