// Package cards defines the normalized card model shared by the analysis
// packages, plus a hydration service that resolves card names against the
// local cache and the remote card APIs.
package cards

import (
	"fmt"
	"strings"

	"github.com/deckwright/deckwright/internal/mtgio"
	"github.com/deckwright/deckwright/internal/scryfall"
)

// Face is a single face of a double-faced or split card.
type Face struct {
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	TypeLine   string   `json:"type_line,omitempty"`
	OracleText string   `json:"oracle_text,omitempty"`
	Power      string   `json:"power,omitempty"`
	Toughness  string   `json:"toughness,omitempty"`
	Colors     []string `json:"colors,omitempty"`
}

// Prices holds card prices in the currencies Scryfall reports.
type Prices struct {
	USD     string `json:"usd,omitempty"`
	USDFoil string `json:"usd_foil,omitempty"`
	EUR     string `json:"eur,omitempty"`
	TIX     string `json:"tix,omitempty"`
}

// Card is the normalized card model used throughout the analyzers,
// independent of which API the card came from.
type Card struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text,omitempty"`
	Power         string            `json:"power,omitempty"`
	Toughness     string            `json:"toughness,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"color_identity"`
	SetCode       string            `json:"set"`
	SetName       string            `json:"set_name"`
	Rarity        string            `json:"rarity"`
	Prices        *Prices           `json:"prices,omitempty"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	ImageURL      string            `json:"image_url,omitempty"`
	ScryfallURI   string            `json:"scryfall_uri,omitempty"`
	Faces         []Face            `json:"card_faces,omitempty"`
	Layout        string            `json:"layout,omitempty"`
}

// PowerToughness returns "P/T" when both stats are present.
func (c *Card) PowerToughness() (string, bool) {
	if c.Power == "" || c.Toughness == "" {
		return "", false
	}
	return fmt.Sprintf("%s/%s", c.Power, c.Toughness), true
}

// AllOracleText returns the card's oracle text plus the text of every
// face, so double-faced and split cards are fully searchable.
func (c *Card) AllOracleText() []string {
	var texts []string
	if c.OracleText != "" {
		texts = append(texts, c.OracleText)
	}
	for _, face := range c.Faces {
		if face.OracleText != "" {
			texts = append(texts, face.OracleText)
		}
	}
	return texts
}

// AllTypeLines returns the card's type line plus the type line of every face.
func (c *Card) AllTypeLines() []string {
	var types []string
	if c.TypeLine != "" {
		types = append(types, c.TypeLine)
	}
	for _, face := range c.Faces {
		if face.TypeLine != "" {
			types = append(types, face.TypeLine)
		}
	}
	return types
}

// FromScryfall converts a Scryfall wire card into the normalized model.
func FromScryfall(sc *scryfall.Card) *Card {
	card := &Card{
		ID:            sc.ID,
		Name:          sc.Name,
		ManaCost:      sc.ManaCost,
		CMC:           sc.CMC,
		TypeLine:      sc.TypeLine,
		OracleText:    sc.OracleText,
		Power:         sc.Power,
		Toughness:     sc.Toughness,
		Colors:        sc.Colors,
		ColorIdentity: sc.ColorIdentity,
		SetCode:       sc.SetCode,
		SetName:       sc.SetName,
		Rarity:        sc.Rarity,
		Legalities:    sc.Legalities,
		ScryfallURI:   sc.ScryfallURI,
		Layout:        sc.Layout,
	}

	if sc.ImageURIs != nil {
		card.ImageURL = sc.ImageURIs.Normal
	}

	prices := Prices{
		USD:     deref(sc.Prices.USD),
		USDFoil: deref(sc.Prices.USDFoil),
		EUR:     deref(sc.Prices.EUR),
		TIX:     deref(sc.Prices.TIX),
	}
	if prices != (Prices{}) {
		card.Prices = &prices
	}

	for _, face := range sc.CardFaces {
		card.Faces = append(card.Faces, Face{
			Name:       face.Name,
			ManaCost:   face.ManaCost,
			TypeLine:   face.TypeLine,
			OracleText: face.OracleText,
			Power:      face.Power,
			Toughness:  face.Toughness,
			Colors:     face.Colors,
		})
	}

	return card
}

// FromMTGIO converts an MTG.io wire card into the normalized model.
// MTG.io provides no prices, faces, or layout information.
func FromMTGIO(mc *mtgio.Card) *Card {
	legalities := make(map[string]string, len(mc.Legalities))
	for _, l := range mc.Legalities {
		legalities[strings.ToLower(l.Format)] = strings.ToLower(l.Legality)
	}

	return &Card{
		ID:            mc.ID,
		Name:          mc.Name,
		ManaCost:      mc.ManaCost,
		CMC:           mc.CMC,
		TypeLine:      mc.TypeLine,
		OracleText:    mc.Text,
		Power:         mc.Power,
		Toughness:     mc.Toughness,
		Colors:        mc.Colors,
		ColorIdentity: mc.ColorIdentity,
		SetCode:       mc.SetCode,
		SetName:       mc.SetName,
		Rarity:        mc.Rarity,
		Legalities:    legalities,
		ImageURL:      mc.ImageURL,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
