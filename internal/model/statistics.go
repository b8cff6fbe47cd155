package model

import "time"

// DeckStatistics is the derived per-deck aggregate persisted in the
// `deck_statistics` table. It is recomputed on demand rather than
// kept transactionally consistent with deck-card mutations, so
// CalculatedAt tells the reader how fresh the numbers are.
type DeckStatistics struct {
	DeckID            uint64         // deck_statistics.deck_id
	TotalCards        int            // deck_statistics.total_cards
	AvgManaCost       *float64       // deck_statistics.avg_mana_cost (null for empty decks)
	ColorDistribution map[string]int // deck_statistics.color_distribution (JSON)
	ManaCurve         map[string]int // deck_statistics.mana_curve (JSON)
	TypeDistribution  map[string]int // deck_statistics.type_distribution (JSON)
	CalculatedAt      time.Time      // deck_statistics.calculated_at
}
