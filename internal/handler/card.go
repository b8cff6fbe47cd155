package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/validation"
)

// CardHandler serves the local card store, the lazily-populated
// projection of catalog cards referenced by deck entries.
type CardHandler struct {
	Cards *repository.CardRepo
}

func NewCardHandler(cards *repository.CardRepo) *CardHandler {
	return &CardHandler{Cards: cards}
}

// Create stores a card projection keyed by its catalog identifier.
// The operation is idempotent: re-posting a known scryfall_id returns
// the stored row unchanged with 200 instead of 201.
func (h *CardHandler) Create(c echo.Context) error {
	var req validation.CreateCardRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	card, created, err := h.Cards.CreateOrGet(ctx, repository.NewCard{
		ScryfallID: req.ScryfallID,
		Name:       req.Name,
		ManaCost:   req.ManaCost,
		Type:       req.Type,
		Rarity:     req.Rarity,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return failRepo(c, err, "card")
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"card": toCardJSON(card)})
}

// Get returns one stored card.
func (h *CardHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		return failRepo(c, err, "card")
	}
	return c.JSON(http.StatusOK, echo.Map{"card": toCardJSON(card)})
}

// Update applies a corrective patch to a stored projection, for when
// the upstream catalog entry was imported wrong or has changed.
func (h *CardHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req validation.UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	card, err := h.Cards.Update(ctx, id, repository.CardPatch{
		Name:     req.Name,
		ManaCost: req.ManaCost,
		Type:     req.Type,
		Rarity:   req.Rarity,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return failRepo(c, err, "card")
	}
	return c.JSON(http.StatusOK, echo.Map{"card": toCardJSON(card)})
}

// Delete removes a stored card. A card still referenced by any deck
// entry cannot be deleted; the foreign key reports the conflict.
func (h *CardHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Cards.Delete(ctx, id); err != nil {
		return failRepo(c, err, "card")
	}
	return c.NoContent(http.StatusNoContent)
}

// Search queries the local store. The set facet only applies to the
// external catalog; locally it is accepted and ignored since the
// projection does not record set codes.
func (h *CardHandler) Search(c echo.Context) error {
	q, errs := validation.ParseCardSearchQuery(c.QueryParams())
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cards, total, err := h.Cards.Search(ctx, repository.CardSearchQuery{
		Q:        q.Q,
		Colors:   q.Colors,
		ManaCost: q.ManaCost,
		Types:    q.Types,
		Rarities: q.Rarities,
		Page:     q.Page,
		PageSize: q.Limit,
		Sort:     q.Sort,
		Order:    q.Order,
	})
	if err != nil {
		return failRepo(c, err, "card")
	}

	out := make([]cardJSON, 0, len(cards))
	for _, card := range cards {
		out = append(out, toCardJSON(card))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cards":      out,
		"pagination": paginate(q.Page, q.Limit, total),
	})
}
