package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/middleware"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/queue"
	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/service"
	"github.com/deckforge/deckforge/internal/stats"
	"github.com/deckforge/deckforge/internal/validation"
)

// DeckHandler serves the deck aggregate: CRUD over decks plus the
// derived statistics endpoint.
type DeckHandler struct {
	Decks     *repository.DeckRepo
	DeckCards *repository.DeckCardRepo
	Stats     *repository.StatisticsRepo
}

func NewDeckHandler(d *repository.DeckRepo, dc *repository.DeckCardRepo, s *repository.StatisticsRepo) *DeckHandler {
	return &DeckHandler{Decks: d, DeckCards: dc, Stats: s}
}

// publishActivity fires a deck.activity event without holding up the
// response. Failures are logged inside the publisher and dropped.
func publishActivity(ev queue.DeckActivityEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = service.PublishDeckActivity(ctx, ev)
	}()
}

// List returns one page of the caller's decks.
func (h *DeckHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	q, errs := validation.ParseDeckListQuery(c.QueryParams())
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	decks, total, err := h.Decks.Search(ctx, uid, repository.DeckSearchQuery{
		Search:   q.Search,
		Format:   q.Format,
		Page:     q.Page,
		PageSize: q.Limit,
		Sort:     q.Sort,
		Order:    q.Order,
	})
	if err != nil {
		return failRepo(c, err, "deck")
	}

	out := make([]deckJSON, 0, len(decks))
	for _, d := range decks {
		out = append(out, toDeckJSON(d))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"decks":      out,
		"pagination": paginate(q.Page, q.Limit, total),
	})
}

// Create inserts a new empty deck for the caller.
func (h *DeckHandler) Create(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	var req validation.CreateDeckRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	deck, err := h.Decks.Create(ctx, uid, req.Name, req.Description, req.Format)
	if err != nil {
		return failRepo(c, err, "deck")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionDeckCreated,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
	})
	return c.JSON(http.StatusCreated, echo.Map{"deck": toDeckJSON(deck)})
}

// Get returns one deck with its full card list embedded. A deck that
// does not exist and a deck owned by someone else are both 404.
func (h *DeckHandler) Get(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	deck, err := h.Decks.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return failRepo(c, err, "deck")
	}
	entries, err := h.DeckCards.ListAllByDeck(ctx, id)
	if err != nil {
		return failRepo(c, err, "deck")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"deck":  toDeckJSON(deck),
		"cards": toDeckCardJSONs(entries),
	})
}

// Update applies a partial patch to a deck the caller owns.
func (h *DeckHandler) Update(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req validation.UpdateDeckRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	patch := repository.DeckPatch{Name: req.Name, Format: req.Format}
	if req.Description != nil {
		patch.Description = &req.Description
	}
	deck, err := h.Decks.Update(ctx, id, uid, patch)
	if err != nil {
		return failRepo(c, err, "deck")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionDeckUpdated,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
		DeckSize: deck.DeckSize,
	})
	return c.JSON(http.StatusOK, echo.Map{"deck": toDeckJSON(deck)})
}

// Delete removes a deck; entries and statistics go with it via the
// foreign key cascade.
func (h *DeckHandler) Delete(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	deck, err := h.Decks.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return failRepo(c, err, "deck")
	}
	if err := h.Decks.Delete(ctx, id, uid); err != nil {
		return failRepo(c, err, "deck")
	}

	publishActivity(queue.DeckActivityEvent{
		Action:   queue.ActionDeckDeleted,
		DeckID:   deck.ID,
		UserID:   uid,
		DeckName: deck.Name,
		Format:   deck.Format,
		DeckSize: deck.DeckSize,
	})
	return c.NoContent(http.StatusNoContent)
}

// Statistics recomputes the deck aggregate from its current entries,
// persists the snapshot and returns it. Recompute-on-read keeps the
// numbers correct without coupling every card mutation to the engine.
func (h *DeckHandler) Statistics(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Decks.GetByIDAndOwner(ctx, id, uid); err != nil {
		return failRepo(c, err, "deck")
	}
	entries, err := h.DeckCards.ListAllByDeck(ctx, id)
	if err != nil {
		return failRepo(c, err, "deck")
	}

	in := make([]stats.Entry, 0, len(entries))
	for _, e := range entries {
		in = append(in, stats.Entry{ManaCost: e.Card.ManaCost, Type: e.Card.Type, Quantity: e.Quantity})
	}
	sum := stats.Compute(in)

	snapshot := model.DeckStatistics{
		DeckID:            id,
		TotalCards:        sum.TotalCards,
		AvgManaCost:       sum.AvgManaCost,
		ColorDistribution: sum.ColorDistribution,
		ManaCurve:         sum.ManaCurve,
		TypeDistribution:  sum.TypeDistribution,
		CalculatedAt:      time.Now().UTC(),
	}
	if err := h.Stats.Upsert(ctx, snapshot); err != nil {
		return failRepo(c, err, "statistics")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"statistics": echo.Map{
			"deck_id":            snapshot.DeckID,
			"total_cards":        snapshot.TotalCards,
			"avg_mana_cost":      snapshot.AvgManaCost,
			"color_distribution": snapshot.ColorDistribution,
			"mana_curve":         snapshot.ManaCurve,
			"type_distribution":  snapshot.TypeDistribution,
			"calculated_at":      snapshot.CalculatedAt,
		},
	})
}
