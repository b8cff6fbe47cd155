// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// Deck activity actions.
const (
	ActionDeckCreated = "deck.created"
	ActionDeckUpdated = "deck.updated"
	ActionDeckDeleted = "deck.deleted"
	ActionCardAdded   = "card.added"
	ActionCardUpdated = "card.updated"
	ActionCardRemoved = "card.removed"
)

// DeckActivityEvent is published whenever a deck or its card list
// changes. It carries enough detail for downstream consumers to build
// an activity feed without querying the primary database.
type DeckActivityEvent struct {
	Action     string `json:"action"`
	DeckID     uint64 `json:"deck_id"`
	UserID     uint64 `json:"user_id"`
	DeckName   string `json:"deck_name"`
	Format     string `json:"format"`
	CardID     uint64 `json:"card_id,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	DeckSize   int    `json:"deck_size"`
	OccurredAt string `json:"occurred_at"`
}
