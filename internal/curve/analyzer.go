package curve

import (
	"math"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/decklist"
)

// Analyze builds the mana curve for a decklist. Only hydrated mainboard
// entries count, commanders included; lands are excluded. Unhydrated
// entries are skipped silently so a partially resolved deck still
// produces a curve.
func Analyze(list *decklist.DeckList) *Analysis {
	analysis := &Analysis{
		DeckName:     list.Name,
		DeckFormat:   list.Format,
		TotalCards:   list.TotalCards(),
		UniqueCards:  list.UniqueCards(),
		PipBreakdown: make(PipBreakdown),
		PipIntensity: make(map[deck.Color]int),
	}

	byCMC := make(map[int]*Bucket)
	var allCMCs []float64

	for _, entry := range list.MainboardEntries() {
		card := entry.Card
		if card == nil {
			continue
		}
		if isLand(card.TypeLine) {
			continue
		}

		cmc := int(math.Round(card.CMC))
		creature := isCreature(card.TypeLine)

		// Quantity-weighted for the statistics.
		for i := 0; i < entry.Quantity; i++ {
			allCMCs = append(allCMCs, card.CMC)
		}

		if card.ManaCost != "" {
			perCard := countColorPips(card.ManaCost, 1)
			for color, pips := range perCard {
				analysis.PipBreakdown[color] += pips * float64(entry.Quantity)
				if pips >= 2 {
					analysis.PipIntensity[color] += entry.Quantity
				}
			}
		}

		bucket, ok := byCMC[cmc]
		if !ok {
			bucket = &Bucket{CMC: cmc}
			byCMC[cmc] = bucket
		}

		bucket.TotalCount += entry.Quantity
		bucket.CardNames = append(bucket.CardNames, card.Name)
		if creature {
			bucket.CreatureCount += entry.Quantity
			bucket.CreatureNames = append(bucket.CreatureNames, card.Name)
		} else {
			bucket.NonCreatureCount += entry.Quantity
			bucket.NonCreatureNames = append(bucket.NonCreatureNames, card.Name)
		}
	}

	buckets := make([]Bucket, 0, len(byCMC))
	for _, b := range byCMC {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].CMC < buckets[j].CMC })

	analysis.Buckets = buckets
	analysis.Stats = calculateStats(buckets, allCMCs)

	for _, b := range buckets {
		if b.CMC > analysis.MaxCMC {
			analysis.MaxCMC = b.CMC
		}
		if b.TotalCount > analysis.MaxCount {
			analysis.MaxCount = b.TotalCount
		}
	}

	return analysis
}

func isLand(typeLine string) bool {
	return strings.Contains(strings.ToLower(typeLine), "land")
}

func isCreature(typeLine string) bool {
	return strings.Contains(strings.ToLower(typeLine), "creature")
}

// countColorPips parses a mana cost like "{2}{U}{B}" into per-color pip
// counts, scaled by quantity. Hybrid symbols like "{W/U}" contribute 0.5
// to each side; generic costs, X, and Phyrexian markers are skipped.
func countColorPips(manaCost string, quantity int) PipBreakdown {
	breakdown := make(PipBreakdown)

	for _, symbol := range splitManaSymbols(manaCost) {
		if strings.Contains(symbol, "/") {
			for _, part := range strings.Split(symbol, "/") {
				addPip(breakdown, part, 0.5)
			}
		} else {
			addPip(breakdown, symbol, 1.0)
		}
	}

	qty := float64(quantity)
	for color := range breakdown {
		breakdown[color] *= qty
	}

	return breakdown
}

// splitManaSymbols extracts the contents of each {...} group.
func splitManaSymbols(manaCost string) []string {
	var symbols []string
	for {
		open := strings.IndexByte(manaCost, '{')
		if open < 0 {
			return symbols
		}
		end := strings.IndexByte(manaCost[open:], '}')
		if end < 0 {
			return symbols
		}
		symbols = append(symbols, manaCost[open+1:open+end])
		manaCost = manaCost[open+end+1:]
	}
}

func addPip(breakdown PipBreakdown, symbol string, amount float64) {
	if color, ok := deck.ColorFromSymbol(strings.ToUpper(symbol)); ok {
		breakdown[color] += amount
	}
}

func calculateStats(buckets []Bucket, allCMCs []float64) Stats {
	if len(allCMCs) == 0 {
		return Stats{}
	}

	sum := 0.0
	for _, cmc := range allCMCs {
		sum += cmc
	}

	sorted := append([]float64(nil), allCMCs...)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	// Mode: the fullest bucket; ties go to the lowest CMC since buckets
	// arrive sorted.
	mode := 0
	modeCount := 0
	for _, b := range buckets {
		if b.TotalCount > modeCount {
			mode = b.CMC
			modeCount = b.TotalCount
		}
	}

	totalCreatures := 0
	totalNonCreatures := 0
	for _, b := range buckets {
		totalCreatures += b.CreatureCount
		totalNonCreatures += b.NonCreatureCount
	}

	total := len(allCMCs)
	stats := Stats{
		AverageCMC:              sum / float64(total),
		MedianCMC:               median,
		ModeCMC:                 mode,
		TotalNonlandCards:       total,
		TotalCreatures:          totalCreatures,
		TotalNonCreatures:       totalNonCreatures,
		CMCDistribution:         make(map[int]float64, len(buckets)),
		CreatureDistribution:    make(map[int]float64),
		NonCreatureDistribution: make(map[int]float64),
	}

	for _, b := range buckets {
		stats.CMCDistribution[b.CMC] = float64(b.TotalCount) / float64(total)
		if totalCreatures > 0 {
			stats.CreatureDistribution[b.CMC] = float64(b.CreatureCount) / float64(totalCreatures)
		}
		if totalNonCreatures > 0 {
			stats.NonCreatureDistribution[b.CMC] = float64(b.NonCreatureCount) / float64(totalNonCreatures)
		}
	}

	return stats
}
