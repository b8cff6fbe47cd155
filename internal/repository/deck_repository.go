package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// DeckRepo provides CRUD operations for decks. Every mutating
// operation carries the owner's id in its WHERE clause so the
// ownership check happens at operation time inside the database, not
// against a possibly stale earlier read.
type DeckRepo struct{ DB *sql.DB }

func NewDeckRepo(db *sql.DB) *DeckRepo { return &DeckRepo{DB: db} }

const deckColumns = "id, user_id, name, description, format, deck_size, created_at, last_modified"

func scanDeck(row *sql.Row) (model.Deck, error) {
	var (
		d    model.Deck
		desc sql.NullString
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &desc, &d.Format, &d.DeckSize, &d.CreatedAt, &d.LastModified)
	if err != nil {
		return d, translate(err)
	}
	if desc.Valid {
		d.Description = &desc.String
	}
	return d, nil
}

// Create inserts a deck with deck_size 0 and both timestamps set to
// the same instant by the database defaults.
func (r *DeckRepo) Create(ctx context.Context, userID uint64, name string, description *string, format string) (model.Deck, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO decks (user_id, name, description, format) VALUES (?,?,?,?)",
		userID, name, description, format)
	if err != nil {
		return model.Deck{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Deck{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a deck without an ownership filter. Callers that act
// on behalf of a user should prefer GetByIDAndOwner.
func (r *DeckRepo) GetByID(ctx context.Context, id uint64) (model.Deck, error) {
	return scanDeck(r.DB.QueryRowContext(ctx,
		"SELECT "+deckColumns+" FROM decks WHERE id=? LIMIT 1", id))
}

// GetByIDAndOwner fetches a deck only when it belongs to the given
// user. A deck that exists but is owned by someone else comes back as
// ErrNotFound; missing and forbidden are deliberately the same outcome.
func (r *DeckRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (model.Deck, error) {
	return scanDeck(r.DB.QueryRowContext(ctx,
		"SELECT "+deckColumns+" FROM decks WHERE id=? AND user_id=? LIMIT 1", id, userID))
}

// DeckPatch carries optional deck updates. Nil fields are untouched.
// Description uses a double pointer so the patch can distinguish
// "leave alone" (nil) from "clear" (*nil).
type DeckPatch struct {
	Name        *string
	Description **string
	Format      *string
}

// Update applies a patch to a deck owned by userID and refreshes
// last_modified. The owner id in the predicate is the authorization
// check.
func (r *DeckRepo) Update(ctx context.Context, id, userID uint64, p DeckPatch) (model.Deck, error) {
	sets := []string{"last_modified=NOW()"}
	args := []any{}
	if p.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *p.Description)
	}
	if p.Format != nil {
		sets = append(sets, "format=?")
		args = append(args, *p.Format)
	}
	args = append(args, id, userID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE decks SET "+strings.Join(sets, ", ")+" WHERE id=? AND user_id=?", args...)
	if err != nil {
		return model.Deck{}, translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// The driver counts changed rows, so a patch that re-sends the
		// current values within the same DATETIME second also lands
		// here. Re-read before concluding the deck is missing.
		return r.GetByIDAndOwner(ctx, id, userID)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a deck owned by userID. deck_cards and
// deck_statistics rows go with it via ON DELETE CASCADE; there is no
// application-level iteration.
func (r *DeckRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM decks WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
