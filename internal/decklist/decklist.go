// Package decklist holds the decklist model and its parsers: a plain text
// parser and a Moxfield API fetcher.
package decklist

import (
	"strings"

	"github.com/deckwright/deckwright/internal/cards"
)

// Section is the part of the deck an entry belongs to.
type Section int

const (
	Mainboard Section = iota
	Commander
	Sideboard
	Maybeboard
)

// String returns the section's display name.
func (s Section) String() string {
	switch s {
	case Commander:
		return "Commander"
	case Sideboard:
		return "Sideboard"
	case Maybeboard:
		return "Maybeboard"
	default:
		return "Mainboard"
	}
}

// Entry is a single line in a decklist. Card is nil until the entry has
// been hydrated.
type Entry struct {
	Quantity int
	Name     string
	Card     *cards.Card
	Section  Section
}

// SourceKind describes where a decklist came from.
type SourceKind int

const (
	SourceText SourceKind = iota
	SourceMoxfield
	SourceManual
)

// DeckList is a parsed decklist with metadata.
type DeckList struct {
	Name    string
	Format  string
	Entries []Entry
	Source  SourceKind

	// ExcludesLands marks lists that intentionally omit basic lands,
	// common when exporting a work-in-progress deck from Moxfield.
	ExcludesLands bool
}

// New creates an empty decklist.
func New(source SourceKind) *DeckList {
	return &DeckList{Source: source}
}

// AddEntry appends an unhydrated entry.
func (d *DeckList) AddEntry(quantity int, name string, section Section) {
	d.Entries = append(d.Entries, Entry{Quantity: quantity, Name: name, Section: section})
}

// MainboardEntries returns mainboard entries, commanders included.
func (d *DeckList) MainboardEntries() []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Section == Mainboard || e.Section == Commander {
			out = append(out, e)
		}
	}
	return out
}

// Commanders returns the commander entries.
func (d *DeckList) Commanders() []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Section == Commander {
			out = append(out, e)
		}
	}
	return out
}

// TotalCards returns the sum of all quantities.
func (d *DeckList) TotalCards() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Quantity
	}
	return total
}

// UniqueCards returns the number of distinct entries.
func (d *DeckList) UniqueCards() int {
	return len(d.Entries)
}

// CardNames returns every entry's card name, for hydration.
func (d *DeckList) CardNames() []string {
	names := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Hydrate attaches card data to entries by name, case-insensitively.
func (d *DeckList) Hydrate(byName map[string]*cards.Card) {
	lookup := make(map[string]*cards.Card, len(byName))
	for name, card := range byName {
		lookup[strings.ToLower(name)] = card
	}
	for i := range d.Entries {
		if card, ok := lookup[strings.ToLower(d.Entries[i].Name)]; ok {
			d.Entries[i].Card = card
		}
	}
}

// CountLands sums mainboard quantities whose hydrated type line mentions
// "land". Unhydrated entries are not counted.
func (d *DeckList) CountLands() int {
	total := 0
	for _, e := range d.MainboardEntries() {
		if e.Card != nil && strings.Contains(strings.ToLower(e.Card.TypeLine), "land") {
			total += e.Quantity
		}
	}
	return total
}
