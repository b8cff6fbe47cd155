package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/middleware"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/queue"
	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/validation"
)

// DeckCardHandler serves deck composition: the entries tying cards
// into a deck's main board and sideboard. Every route re-verifies that
// the caller owns the deck before touching its entries.
type DeckCardHandler struct {
	Decks     *repository.DeckRepo
	DeckCards *repository.DeckCardRepo
	Cards     *repository.CardRepo
}

func NewDeckCardHandler(d *repository.DeckRepo, dc *repository.DeckCardRepo, cards *repository.CardRepo) *DeckCardHandler {
	return &DeckCardHandler{Decks: d, DeckCards: dc, Cards: cards}
}

// ownedDeck loads the deck while enforcing ownership. Missing and
// foreign decks are indistinguishable to the caller. When ok is false
// the error response has already been written.
func (h *DeckCardHandler) ownedDeck(c echo.Context) (model.Deck, uint64, bool) {
	uid, authed := middleware.UserID(c)
	if !authed {
		_ = fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return model.Deck{}, 0, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return model.Deck{}, 0, false
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	deck, err := h.Decks.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		_ = failRepo(c, err, "deck")
		return model.Deck{}, 0, false
	}
	return deck, uid, true
}

// List returns one page of a deck's entries, optionally narrowed to
// the main board or the sideboard.
func (h *DeckCardHandler) List(c echo.Context) error {
	deck, _, ok := h.ownedDeck(c)
	if !ok {
		return nil
	}
	q, errs := validation.ParseDeckCardsQuery(c.QueryParams())
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, total, err := h.DeckCards.ListByDeck(ctx, deck.ID, q.IsSideboard, q.Page, q.Limit)
	if err != nil {
		return failRepo(c, err, "deck")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"cards":      toDeckCardJSONs(entries),
		"pagination": paginate(q.Page, q.Limit, total),
	})
}

// Add inserts a card into a deck section. The same card already
// sitting in that section is a conflict; the client adjusts quantity
// through an update instead.
func (h *DeckCardHandler) Add(c echo.Context) error {
	deck, uid, ok := h.ownedDeck(c)
	if !ok {
		return nil
	}
	var req validation.AddDeckCardRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.DeckCards.Add(ctx, deck.ID, repository.NewDeckCard{
		CardID:      req.CardID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		IsSideboard: req.IsSideboard,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return fail(c, http.StatusConflict, "conflict", "card is already in this deck section")
		case errors.Is(err, repository.ErrInvalidReference):
			return fail(c, http.StatusNotFound, "not_found", "card not found")
		}
		return failRepo(c, err, "deck card")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionCardAdded,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
		CardID:   entry.CardID,
		CardName: entry.Card.Name,
		Quantity: entry.Quantity,
		DeckSize: deck.DeckSize + entry.Quantity,
	})
	return c.JSON(http.StatusCreated, echo.Map{"deck_card": toDeckCardJSON(entry)})
}

// Update patches an entry identified by deck and card, optionally
// narrowed by is_sideboard when the card sits in both sections.
// Flipping an entry into an occupied section is a conflict.
func (h *DeckCardHandler) Update(c echo.Context) error {
	deck, uid, ok := h.ownedDeck(c)
	if !ok {
		return nil
	}
	cardID, ok := pathID(c, "cardId")
	if !ok {
		return nil
	}
	var req validation.UpdateDeckCardRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	section, errs := sectionParam(c)
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	patch := repository.DeckCardPatch{Quantity: req.Quantity, IsSideboard: req.IsSideboard}
	if req.Notes != nil {
		patch.Notes = &req.Notes
	}
	entry, err := h.DeckCards.Update(ctx, deck.ID, cardID, section, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, http.StatusConflict, "conflict", "card is already in the target deck section")
		}
		return failRepo(c, err, "deck card")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionCardUpdated,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
		CardID:   entry.CardID,
		CardName: entry.Card.Name,
		Quantity: entry.Quantity,
	})
	return c.JSON(http.StatusOK, echo.Map{"deck_card": toDeckCardJSON(entry)})
}

// Remove deletes an entry, again optionally narrowed by section.
func (h *DeckCardHandler) Remove(c echo.Context) error {
	deck, uid, ok := h.ownedDeck(c)
	if !ok {
		return nil
	}
	cardID, ok := pathID(c, "cardId")
	if !ok {
		return nil
	}
	section, errs := sectionParam(c)
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.DeckCards.Remove(ctx, deck.ID, cardID, section); err != nil {
		return failRepo(c, err, "deck card")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionCardRemoved,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
		CardID:   cardID,
	})
	return c.NoContent(http.StatusNoContent)
}

// sectionParam reads the optional is_sideboard query parameter used to
// disambiguate a card present in both sections.
func sectionParam(c echo.Context) (*bool, validation.Errors) {
	errs := validation.Errors{}
	switch c.QueryParam("is_sideboard") {
	case "":
		return nil, errs
	case "true", "1":
		v := true
		return &v, errs
	case "false", "0":
		v := false
		return &v, errs
	default:
		errs.Add("is_sideboard", "is_sideboard must be true or false")
		return nil, errs
	}
}
