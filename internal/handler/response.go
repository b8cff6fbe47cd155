// Package handler implements the HTTP endpoints of the API. Handlers
// bind and validate input, call the repository layer with a
// request-scoped timeout, and render JSON. Errors use one shape
// everywhere: {error, message, status}, plus a field-keyed errors
// object on validation failures.
package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/validation"
)

const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context for repository calls from the
// incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{
		"error":   code,
		"message": message,
		"status":  status,
	})
}

func failValidation(c echo.Context, errs validation.Errors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":   "validation_failed",
		"message": "request validation failed",
		"status":  http.StatusBadRequest,
		"errors":  errs,
	})
}

func failBind(c echo.Context) error {
	return fail(c, http.StatusBadRequest, "invalid_body", "request body could not be parsed")
}

// failRepo maps repository sentinels onto HTTP statuses. The resource
// name feeds the not-found message so callers read "deck not found"
// rather than a generic phrase.
func failRepo(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusConflict, "conflict", resource+" already exists")
	case errors.Is(err, repository.ErrConflict):
		return fail(c, http.StatusConflict, "conflict", resource+" is referenced by other records")
	case errors.Is(err, repository.ErrInvalidReference):
		return fail(c, http.StatusBadRequest, "invalid_reference", "referenced record does not exist")
	case errors.Is(err, context.DeadlineExceeded):
		return fail(c, http.StatusGatewayTimeout, "timeout", "operation timed out")
	default:
		c.Logger().Errorf("%s: %v", c.Path(), err)
		return fail(c, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

// pathID parses a numeric path parameter, rejecting zero and garbage.
// On failure the 400 response is already written and ok is false; the
// caller just returns nil.
func pathID(c echo.Context, name string) (id uint64, ok bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		_ = fail(c, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// pagination is the page descriptor attached to every list response.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func paginate(page, limit int, total int64) pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ----- resource projections -----

type userJSON struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserJSON(u model.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

type deckJSON struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Format       string    `json:"format"`
	DeckSize     int       `json:"deck_size"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

func toDeckJSON(d model.Deck) deckJSON {
	return deckJSON{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         d.Name,
		Description:  d.Description,
		Format:       d.Format,
		DeckSize:     d.DeckSize,
		CreatedAt:    d.CreatedAt,
		LastModified: d.LastModified,
	}
}

type cardJSON struct {
	ID         uint64    `json:"id"`
	ScryfallID string    `json:"scryfall_id"`
	Name       string    `json:"name"`
	ManaCost   *string   `json:"mana_cost"`
	Type       string    `json:"type"`
	Rarity     string    `json:"rarity"`
	ImageURL   *string   `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCardJSON(card model.Card) cardJSON {
	return cardJSON{
		ID:         card.ID,
		ScryfallID: card.ScryfallID,
		Name:       card.Name,
		ManaCost:   card.ManaCost,
		Type:       card.Type,
		Rarity:     card.Rarity,
		ImageURL:   card.ImageURL,
		CreatedAt:  card.CreatedAt,
	}
}

type deckCardJSON struct {
	ID          uint64    `json:"id"`
	DeckID      uint64    `json:"deck_id"`
	CardID      uint64    `json:"card_id"`
	Quantity    int       `json:"quantity"`
	IsSideboard bool      `json:"is_sideboard"`
	Notes       *string   `json:"notes"`
	AddedAt     time.Time `json:"added_at"`
	Card        cardJSON  `json:"card"`
}

func toDeckCardJSON(e repository.DeckCardEntry) deckCardJSON {
	return deckCardJSON{
		ID:          e.ID,
		DeckID:      e.DeckID,
		CardID:      e.CardID,
		Quantity:    e.Quantity,
		IsSideboard: e.IsSideboard,
		Notes:       e.Notes,
		AddedAt:     e.AddedAt,
		Card:        toCardJSON(e.Card),
	}
}

func toDeckCardJSONs(entries []repository.DeckCardEntry) []deckCardJSON {
	out := make([]deckCardJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDeckCardJSON(e))
	}
	return out
}
