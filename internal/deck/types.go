// Package deck defines the color, format, and mana base types shared by the
// calculator and curve analysis packages.
package deck

import "fmt"

// Color represents one of the five Magic colors, or colorless.
type Color int

// Colors in canonical WUBRG display order. Colorless sorts last.
const (
	White Color = iota
	Blue
	Black
	Red
	Green
	Colorless
)

// Symbol returns the one-letter mana symbol for the color.
func (c Color) Symbol() string {
	switch c {
	case White:
		return "W"
	case Blue:
		return "U"
	case Black:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	case Colorless:
		return "C"
	}
	return "?"
}

// Name returns the display name for the color.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Blue:
		return "Blue"
	case Black:
		return "Black"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Colorless:
		return "Colorless"
	}
	return "Unknown"
}

// BasicLand returns the basic land name that produces this color.
func (c Color) BasicLand() string {
	switch c {
	case White:
		return "Plains"
	case Blue:
		return "Island"
	case Black:
		return "Swamp"
	case Red:
		return "Mountain"
	case Green:
		return "Forest"
	case Colorless:
		return "Wastes"
	}
	return "Unknown"
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Name()
}

// MarshalText implements encoding.TextMarshaler so colors serialize by name,
// including when used as JSON map keys.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	for _, candidate := range []Color{White, Blue, Black, Red, Green, Colorless} {
		if candidate.Name() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown color %q", string(text))
}

// ColorFromSymbol parses a one-letter mana symbol into a Color.
func ColorFromSymbol(s string) (Color, bool) {
	switch s {
	case "W", "w":
		return White, true
	case "U", "u":
		return Blue, true
	case "B", "b":
		return Black, true
	case "R", "r":
		return Red, true
	case "G", "g":
		return Green, true
	case "C", "c":
		return Colorless, true
	}
	return 0, false
}

// AllColors returns the five colors in display order, excluding colorless.
func AllColors() []Color {
	return []Color{White, Blue, Black, Red, Green}
}

// DualLand represents a group of lands producing more than one color of mana.
type DualLand struct {
	Name   string  `json:"name"`
	Colors []Color `json:"colors"`
	Count  int     `json:"count"`
}

// NewDualLand creates a dual land group.
func NewDualLand(name string, colors []Color, count int) DualLand {
	return DualLand{Name: name, Colors: colors, Count: count}
}

// Format represents a deck construction format.
type Format int

// Supported formats.
const (
	Commander Format = iota
	Standard
	Modern
	Limited
	Custom
)

// DefaultCards returns the typical deck size for the format.
func (f Format) DefaultCards() int {
	switch f {
	case Commander:
		return 100
	case Limited:
		return 40
	default:
		return 60
	}
}

// DefaultLands returns the typical land count for the format.
func (f Format) DefaultLands() int {
	switch f {
	case Commander:
		return 38
	case Limited:
		return 17
	default:
		return 24
	}
}

// RecommendedLandRange returns the usual low/high land counts for the format.
func (f Format) RecommendedLandRange() (low, high int) {
	switch f {
	case Commander:
		return 36, 40
	case Limited:
		return 16, 18
	case Custom:
		return 20, 30
	default:
		return 20, 26
	}
}

// Name returns the display name for the format.
func (f Format) Name() string {
	switch f {
	case Commander:
		return "Commander"
	case Standard:
		return "Standard"
	case Modern:
		return "Modern"
	case Limited:
		return "Limited"
	case Custom:
		return "Custom"
	}
	return "Unknown"
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return fmt.Sprintf("%s (%d cards)", f.Name(), f.DefaultCards())
}

// ParseFormat maps a format string to a Format. Unrecognized strings map to
// Custom with ok=false.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "commander", "edh":
		return Commander, true
	case "standard":
		return Standard, true
	case "modern":
		return Modern, true
	case "limited", "draft", "sealed":
		return Limited, true
	case "custom":
		return Custom, true
	}
	return Custom, false
}

// Deck is the input to the mana base calculator: an aggregate view of a
// deck's color requirements rather than a card list.
type Deck struct {
	Format       Format
	TotalCards   int
	TargetLands  int
	Colors       []Color
	ManaSymbols  map[Color]int // total pips of each color across the deck
	PipIntensity map[Color]int // cards with 2+ pips of a color
	DualLands    []DualLand
}

// NewDeck creates a Deck with the format's default card and land counts.
func NewDeck(format Format) *Deck {
	return &Deck{
		Format:       format,
		TotalCards:   format.DefaultCards(),
		TargetLands:  format.DefaultLands(),
		ManaSymbols:  make(map[Color]int),
		PipIntensity: make(map[Color]int),
	}
}

// TotalManaSymbols returns the total pip count across all colors.
func (d *Deck) TotalManaSymbols() int {
	total := 0
	for _, n := range d.ManaSymbols {
		total += n
	}
	return total
}

// DualLandCount returns the total number of dual lands across all groups.
func (d *Deck) DualLandCount() int {
	total := 0
	for _, dual := range d.DualLands {
		total += dual.Count
	}
	return total
}

// BasicLandSlots returns the land slots left for basics after duals,
// saturating at zero when duals exceed the target.
func (d *Deck) BasicLandSlots() int {
	slots := d.TargetLands - d.DualLandCount()
	if slots < 0 {
		return 0
	}
	return slots
}

// ManaBase is the calculator's recommendation: basic land counts per color
// plus the inputs used to derive them.
type ManaBase struct {
	Basics           map[Color]int     `json:"basics"`
	Duals            []DualLand        `json:"duals"`
	Recommendations  []string          `json:"recommendations"`
	ColorPercentages map[Color]float64 `json:"color_percentages"`
}

// NewManaBase creates an empty ManaBase.
func NewManaBase() *ManaBase {
	return &ManaBase{
		Basics:           make(map[Color]int),
		ColorPercentages: make(map[Color]float64),
	}
}

// TotalBasics returns the sum of all recommended basic land counts.
func (m *ManaBase) TotalBasics() int {
	total := 0
	for _, n := range m.Basics {
		total += n
	}
	return total
}

// TotalDuals returns the number of multicolor lands already in the deck.
func (m *ManaBase) TotalDuals() int {
	total := 0
	for _, d := range m.Duals {
		total += d.Count
	}
	return total
}

// Algorithm selects the mana base calculation strategy.
type Algorithm int

// Available algorithms. Hypergeometric is reserved; it currently falls back
// to Simple.
const (
	Simple Algorithm = iota
	CMCWeighted
	Hypergeometric
)

// Name returns the CLI name for the algorithm.
func (a Algorithm) Name() string {
	switch a {
	case Simple:
		return "simple"
	case CMCWeighted:
		return "cmc"
	case Hypergeometric:
		return "hypergeo"
	}
	return "unknown"
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return a.Name()
}

// ParseAlgorithm maps a CLI algorithm name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "simple":
		return Simple, true
	case "cmc", "cmc-weighted":
		return CMCWeighted, true
	case "hypergeo", "hypergeometric":
		return Hypergeometric, true
	}
	return Simple, false
}

var guildNames = map[[2]Color]string{
	{White, Blue}:  "Azorius",
	{White, Black}: "Orzhov",
	{White, Red}:   "Boros",
	{White, Green}: "Selesnya",
	{Blue, Black}:  "Dimir",
	{Blue, Red}:    "Izzet",
	{Blue, Green}:  "Simic",
	{Black, Red}:   "Rakdos",
	{Black, Green}: "Golgari",
	{Red, Green}:   "Gruul",
}

// GuildName returns the guild name for a two-color pair, if one exists.
func GuildName(colors []Color) (string, bool) {
	if len(colors) != 2 {
		return "", false
	}
	a, b := colors[0], colors[1]
	if a > b {
		a, b = b, a
	}
	name, ok := guildNames[[2]Color{a, b}]
	return name, ok
}
