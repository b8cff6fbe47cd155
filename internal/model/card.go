package model

import "time"

// Card is a local projection of a catalog card, keyed by its stable
// Scryfall identifier. Rows are created lazily the first time a
// catalog card is added to any deck and shared by every deck entry
// referencing it afterwards.
//
// Fields:
//  ID         – primary key identifier.
//  ScryfallID – unique external catalog identifier.
//  Name       – card name.
//  ManaCost   – mana cost string like "{2}{R}{R}" (null for lands).
//  Type       – full type line, e.g. "Legendary Creature — Dragon".
//  Rarity     – common, uncommon, rare or mythic.
//  ImageURL   – preferred card image, if any.
//  CreatedAt  – timestamp of creation.
type Card struct {
	ID         uint64    // cards.id
	ScryfallID string    // cards.scryfall_id
	Name       string    // cards.name
	ManaCost   *string   // cards.mana_cost (nullable)
	Type       string    // cards.type
	Rarity     string    // cards.rarity
	ImageURL   *string   // cards.image_url (nullable)
	CreatedAt  time.Time // cards.created_at
}
