package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// DeckCardRepo manages deck composition: the join rows between decks
// and cards. All mutations run in a transaction that also recomputes
// the owning deck's denormalized deck_size and refreshes
// last_modified, so the deck row never drifts from its entries.
//
// The UNIQUE(deck_id, card_id, is_sideboard) key is the authoritative
// duplicate guard; whichever of two racing inserts loses receives
// ErrDuplicate from the database even when both passed the pre-check.
type DeckCardRepo struct{ DB *sql.DB }

func NewDeckCardRepo(db *sql.DB) *DeckCardRepo { return &DeckCardRepo{DB: db} }

// DeckCardEntry is a deck_cards row joined with the projection of the
// card it references, as returned to clients.
type DeckCardEntry struct {
	model.DeckCard
	Card model.Card
}

const deckCardJoin = `SELECT dc.id, dc.deck_id, dc.card_id, dc.quantity, dc.is_sideboard, dc.notes, dc.added_at,
	c.id, c.scryfall_id, c.name, c.mana_cost, c.type, c.rarity, c.image_url, c.created_at
	FROM deck_cards dc JOIN cards c ON c.id = dc.card_id`

type deckCardScanner interface {
	Scan(dest ...any) error
}

func scanDeckCardEntry(row deckCardScanner) (DeckCardEntry, error) {
	var (
		e        DeckCardEntry
		notes    sqlNullString
		manaCost sqlNullString
		imageURL sqlNullString
	)
	err := row.Scan(
		&e.ID, &e.DeckID, &e.CardID, &e.Quantity, &e.IsSideboard, &notes, &e.AddedAt,
		&e.Card.ID, &e.Card.ScryfallID, &e.Card.Name, &manaCost, &e.Card.Type, &e.Card.Rarity, &imageURL, &e.Card.CreatedAt,
	)
	if err != nil {
		return e, translate(err)
	}
	e.Notes = notes.ptr()
	e.Card.ManaCost = manaCost.ptr()
	e.Card.ImageURL = imageURL.ptr()
	return e, nil
}

// ListByDeck returns one page of a deck's entries, newest added first,
// optionally filtered to one section, plus the total count under the
// same filter.
func (r *DeckCardRepo) ListByDeck(ctx context.Context, deckID uint64, sideboard *bool, page, pageSize int) ([]DeckCardEntry, int64, error) {
	cond := "dc.deck_id = ?"
	args := []any{deckID}
	if sideboard != nil {
		cond += " AND dc.is_sideboard = ?"
		args = append(args, *sideboard)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM deck_cards dc WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	limit := pageSize
	offset := (page - 1) * pageSize
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		deckCardJoin+" WHERE "+cond+" ORDER BY dc.added_at DESC, dc.id DESC LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	out := make([]DeckCardEntry, 0, limit)
	for rows.Next() {
		e, err := scanDeckCardEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAllByDeck returns every entry of a deck without pagination. Used
// to embed the full card list in deck detail responses and to feed the
// statistics engine.
func (r *DeckCardRepo) ListAllByDeck(ctx context.Context, deckID uint64) ([]DeckCardEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		deckCardJoin+" WHERE dc.deck_id = ? ORDER BY dc.added_at DESC, dc.id DESC", deckID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []DeckCardEntry
	for rows.Next() {
		e, err := scanDeckCardEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// NewDeckCard carries the fields needed to add a card to a deck.
type NewDeckCard struct {
	CardID      uint64
	Quantity    int
	Notes       *string
	IsSideboard bool
}

// Add inserts a deck entry. Adding a (card, section) pair that is
// already present is a conflict, not a quantity merge.
func (r *DeckCardRepo) Add(ctx context.Context, deckID uint64, in NewDeckCard) (DeckCardEntry, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return DeckCardEntry{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO deck_cards (deck_id, card_id, quantity, is_sideboard, notes) VALUES (?,?,?,?,?)",
		deckID, in.CardID, in.Quantity, in.IsSideboard, in.Notes)
	if err != nil {
		return DeckCardEntry{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return DeckCardEntry{}, err
	}

	if err := refreshDeckSize(ctx, tx, deckID); err != nil {
		return DeckCardEntry{}, err
	}

	entry, err := scanDeckCardEntry(tx.QueryRowContext(ctx, deckCardJoin+" WHERE dc.id = ?", id))
	if err != nil {
		return DeckCardEntry{}, err
	}
	return entry, tx.Commit()
}

// DeckCardPatch carries optional deck-entry updates. Nil fields are
// untouched. Notes uses a double pointer to distinguish "leave alone"
// from "clear".
type DeckCardPatch struct {
	Quantity    *int
	Notes       **string
	IsSideboard *bool
}

// resolveEntryID pins the mutation target to a single row before any
// write. Without a section selector a card sitting in both sections
// resolves to its main-board entry, leaving the sideboard copy alone.
func resolveEntryID(ctx context.Context, tx *sql.Tx, deckID, cardID uint64, section *bool) (uint64, error) {
	q := "SELECT id FROM deck_cards WHERE deck_id=? AND card_id=?"
	args := []any{deckID, cardID}
	if section != nil {
		q += " AND is_sideboard=?"
		args = append(args, *section)
	}
	var id uint64
	if err := tx.QueryRowContext(ctx, q+" ORDER BY is_sideboard ASC LIMIT 1", args...).Scan(&id); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// Update patches exactly one entry for a deck+card pair. When the same
// card sits in both sections, the optional section selector narrows
// the target; otherwise the main-board entry is updated. Moving an
// entry into an occupied section surfaces as ErrDuplicate from the
// unique key.
func (r *DeckCardRepo) Update(ctx context.Context, deckID, cardID uint64, section *bool, p DeckCardPatch) (DeckCardEntry, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return DeckCardEntry{}, err
	}
	defer tx.Rollback()

	entryID, err := resolveEntryID(ctx, tx, deckID, cardID, section)
	if err != nil {
		return DeckCardEntry{}, err
	}

	sets := []string{}
	args := []any{}
	if p.Quantity != nil {
		sets = append(sets, "quantity=?")
		args = append(args, *p.Quantity)
	}
	if p.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *p.Notes)
	}
	if p.IsSideboard != nil {
		sets = append(sets, "is_sideboard=?")
		args = append(args, *p.IsSideboard)
	}
	args = append(args, entryID)

	if _, err := tx.ExecContext(ctx,
		"UPDATE deck_cards SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
		return DeckCardEntry{}, translate(err)
	}

	if err := refreshDeckSize(ctx, tx, deckID); err != nil {
		return DeckCardEntry{}, err
	}

	entry, err := scanDeckCardEntry(tx.QueryRowContext(ctx, deckCardJoin+" WHERE dc.id = ?", entryID))
	if err != nil {
		return DeckCardEntry{}, err
	}
	return entry, tx.Commit()
}

// Remove deletes exactly one entry for a deck+card pair, the
// main-board one unless the section selector says otherwise.
func (r *DeckCardRepo) Remove(ctx context.Context, deckID, cardID uint64, section *bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entryID, err := resolveEntryID(ctx, tx, deckID, cardID, section)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM deck_cards WHERE id=?", entryID); err != nil {
		return translate(err)
	}
	if err := refreshDeckSize(ctx, tx, deckID); err != nil {
		return err
	}
	return tx.Commit()
}

// refreshDeckSize recomputes the deck's denormalized card count (main
// deck plus sideboard) and bumps last_modified, inside the caller's
// transaction.
func refreshDeckSize(ctx context.Context, tx *sql.Tx, deckID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE decks SET
			deck_size = (SELECT COALESCE(SUM(quantity), 0) FROM deck_cards WHERE deck_id = ?),
			last_modified = NOW()
		WHERE id = ?`, deckID, deckID)
	return translate(err)
}
