package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/deckforge/deckforge/internal/model"
)

// StatisticsRepo persists the derived per-deck aggregates. The JSON
// columns hold the distribution maps verbatim; calculated_at is the
// freshness marker since statistics are recomputed on demand rather
// than with every mutation.
type StatisticsRepo struct{ DB *sql.DB }

func NewStatisticsRepo(db *sql.DB) *StatisticsRepo { return &StatisticsRepo{DB: db} }

// Upsert writes the recomputed statistics for a deck, replacing any
// previous snapshot.
func (r *StatisticsRepo) Upsert(ctx context.Context, s model.DeckStatistics) error {
	colors, err := json.Marshal(s.ColorDistribution)
	if err != nil {
		return err
	}
	curve, err := json.Marshal(s.ManaCurve)
	if err != nil {
		return err
	}
	types, err := json.Marshal(s.TypeDistribution)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO deck_statistics (deck_id, total_cards, avg_mana_cost, color_distribution, mana_curve, type_distribution, calculated_at)
		VALUES (?,?,?,?,?,?,NOW())
		ON DUPLICATE KEY UPDATE
			total_cards=VALUES(total_cards),
			avg_mana_cost=VALUES(avg_mana_cost),
			color_distribution=VALUES(color_distribution),
			mana_curve=VALUES(mana_curve),
			type_distribution=VALUES(type_distribution),
			calculated_at=NOW()`,
		s.DeckID, s.TotalCards, s.AvgManaCost, colors, curve, types)
	return translate(err)
}

// Get reads the stored snapshot for a deck.
func (r *StatisticsRepo) Get(ctx context.Context, deckID uint64) (model.DeckStatistics, error) {
	var (
		s      model.DeckStatistics
		avg    sql.NullFloat64
		colors []byte
		curve  []byte
		types  []byte
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT deck_id, total_cards, avg_mana_cost, color_distribution, mana_curve, type_distribution, calculated_at
		FROM deck_statistics WHERE deck_id=? LIMIT 1`, deckID).
		Scan(&s.DeckID, &s.TotalCards, &avg, &colors, &curve, &types, &s.CalculatedAt)
	if err != nil {
		return s, translate(err)
	}
	if avg.Valid {
		s.AvgManaCost = &avg.Float64
	}
	if len(colors) > 0 {
		if err := json.Unmarshal(colors, &s.ColorDistribution); err != nil {
			return s, err
		}
	}
	if len(curve) > 0 {
		if err := json.Unmarshal(curve, &s.ManaCurve); err != nil {
			return s, err
		}
	}
	if len(types) > 0 {
		if err := json.Unmarshal(types, &s.TypeDistribution); err != nil {
			return s, err
		}
	}
	return s, nil
}
