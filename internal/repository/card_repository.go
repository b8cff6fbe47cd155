package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// CardRepo manages the local card store: a minimal projection of
// catalog cards keyed by scryfall_id so deck entries reference stable
// local rows instead of hitting the external catalog repeatedly.
type CardRepo struct{ DB *sql.DB }

func NewCardRepo(db *sql.DB) *CardRepo { return &CardRepo{DB: db} }

const cardColumns = "id, scryfall_id, name, mana_cost, type, rarity, image_url, created_at"

func scanCard(row *sql.Row) (model.Card, error) {
	var (
		c        model.Card
		manaCost sql.NullString
		imageURL sql.NullString
	)
	err := row.Scan(&c.ID, &c.ScryfallID, &c.Name, &manaCost, &c.Type, &c.Rarity, &imageURL, &c.CreatedAt)
	if err != nil {
		return c, translate(err)
	}
	if manaCost.Valid {
		c.ManaCost = &manaCost.String
	}
	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	return c, nil
}

// GetByID fetches a card by its local id.
func (r *CardRepo) GetByID(ctx context.Context, id uint64) (model.Card, error) {
	return scanCard(r.DB.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE id=? LIMIT 1", id))
}

// FindByScryfallID fetches a card by its external catalog id.
func (r *CardRepo) FindByScryfallID(ctx context.Context, scryfallID string) (model.Card, error) {
	return scanCard(r.DB.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE scryfall_id=? LIMIT 1", scryfallID))
}

// NewCard carries the fields needed to insert a card projection.
type NewCard struct {
	ScryfallID string
	Name       string
	ManaCost   *string
	Type       string
	Rarity     string
	ImageURL   *string
}

// CreateOrGet inserts a card keyed by scryfall_id, or returns the
// existing row unchanged when one is already stored. The lookup before
// the insert is an optimization; the unique key on scryfall_id is the
// actual guarantee, so a lost race falls through to a re-read instead
// of surfacing a duplicate error. The second return value reports
// whether a new row was created.
func (r *CardRepo) CreateOrGet(ctx context.Context, in NewCard) (model.Card, bool, error) {
	existing, err := r.FindByScryfallID(ctx, in.ScryfallID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Card{}, false, err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO cards (scryfall_id, name, mana_cost, type, rarity, image_url) VALUES (?,?,?,?,?,?)",
		in.ScryfallID, in.Name, in.ManaCost, in.Type, in.Rarity, in.ImageURL)
	if err != nil {
		if errors.Is(translate(err), ErrDuplicate) {
			// Lost the check-then-insert race; the winner's row is authoritative.
			card, ferr := r.FindByScryfallID(ctx, in.ScryfallID)
			return card, false, ferr
		}
		return model.Card{}, false, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Card{}, false, err
	}
	card, err := r.GetByID(ctx, uint64(id))
	return card, true, err
}

// CardPatch carries optional corrective updates for a stored card.
// Nil fields are left untouched.
type CardPatch struct {
	Name     *string
	ManaCost *string
	Type     *string
	Rarity   *string
	ImageURL *string
}

// Update applies a corrective patch to a card.
func (r *CardRepo) Update(ctx context.Context, id uint64, p CardPatch) (model.Card, error) {
	sets := []string{}
	args := []any{}
	if p.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *p.Name)
	}
	if p.ManaCost != nil {
		sets = append(sets, "mana_cost=?")
		args = append(args, *p.ManaCost)
	}
	if p.Type != nil {
		sets = append(sets, "type=?")
		args = append(args, *p.Type)
	}
	if p.Rarity != nil {
		sets = append(sets, "rarity=?")
		args = append(args, *p.Rarity)
	}
	if p.ImageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, *p.ImageURL)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cards SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Card{}, translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "no-op update on identical values".
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return model.Card{}, gerr
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a card. Cards still referenced by deck entries are
// protected by the foreign key and yield ErrConflict.
func (r *CardRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cards WHERE id=?", id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
