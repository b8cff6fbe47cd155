package model

import "time"

// Deck is a named, user-owned collection of card entries for a
// specific play format. DeckSize is a denormalized sum of the
// quantities of all entries (main deck and sideboard) and is
// maintained transactionally with every deck-card mutation.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owner of the deck.
//  Name         – deck name, 1-100 characters.
//  Description  – optional free text, up to 500 characters.
//  Format       – play format (standard, modern, commander, ...).
//  DeckSize     – denormalized total card count.
//  CreatedAt    – creation timestamp.
//  LastModified – refreshed on every mutating operation.
type Deck struct {
	ID           uint64    // decks.id
	UserID       uint64    // decks.user_id
	Name         string    // decks.name
	Description  *string   // decks.description (nullable)
	Format       string    // decks.format
	DeckSize     int       // decks.deck_size
	CreatedAt    time.Time // decks.created_at
	LastModified time.Time // decks.last_modified
}

// DeckCard joins a deck to a card with a quantity. The sideboard is
// tracked by a boolean flag rather than a separate entity, so a card
// can appear at most once per (deck, card, section) triple.
//
// Fields:
//  ID          – primary key identifier.
//  DeckID      – parent deck.
//  CardID      – referenced card.
//  Quantity    – number of copies, 1-99.
//  IsSideboard – true when the entry belongs to the sideboard.
//  Notes       – optional free text, up to 500 characters.
//  AddedAt     – when the entry was created.
type DeckCard struct {
	ID          uint64    // deck_cards.id
	DeckID      uint64    // deck_cards.deck_id
	CardID      uint64    // deck_cards.card_id
	Quantity    int       // deck_cards.quantity
	IsSideboard bool      // deck_cards.is_sideboard
	Notes       *string   // deck_cards.notes (nullable)
	AddedAt     time.Time // deck_cards.added_at
}
