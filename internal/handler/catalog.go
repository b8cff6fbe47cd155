package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/scryfall"
	"github.com/deckforge/deckforge/internal/validation"
)

// CatalogHandler proxies searches against the external Scryfall
// catalog. Results are global and unauthenticated; the Redis response
// cache in front of the route keeps repeated queries off the upstream.
type CatalogHandler struct {
	Catalog *scryfall.Client
}

func NewCatalogHandler(client *scryfall.Client) *CatalogHandler {
	return &CatalogHandler{Catalog: client}
}

// Search runs a catalog search with the same facet grammar as the
// local card search. An empty page is a normal response.
func (h *CatalogHandler) Search(c echo.Context) error {
	q, errs := validation.ParseCardSearchQuery(c.QueryParams())
	if !errs.Empty() {
		return failValidation(c, errs)
	}

	res, err := h.Catalog.Search(c.Request().Context(), scryfall.SearchParams{
		Query:    q.Q,
		Colors:   q.Colors,
		ManaCost: q.ManaCost,
		Types:    q.Types,
		Rarities: q.Rarities,
		Set:      q.Set,
		Page:     q.Page,
		Sort:     catalogSort(q.Sort),
		Order:    q.Order,
	})
	if err != nil {
		c.Logger().Errorf("catalog search: %v", err)
		return fail(c, http.StatusBadGateway, "catalog_unavailable", "the card catalog could not be reached")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"cards":       res.Cards,
		"total_cards": res.TotalCards,
		"has_more":    res.HasMore,
	})
}

// Card fetches one catalog card by its Scryfall identifier.
func (h *CatalogHandler) Card(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "invalid_id", "id is required")
	}

	card, err := h.Catalog.GetCard(c.Request().Context(), id)
	if err != nil {
		if scryfall.IsNotFound(err) {
			return fail(c, http.StatusNotFound, "not_found", "card not found in catalog")
		}
		c.Logger().Errorf("catalog get card: %v", err)
		return fail(c, http.StatusBadGateway, "catalog_unavailable", "the card catalog could not be reached")
	}
	return c.JSON(http.StatusOK, echo.Map{"card": card})
}

// Random returns a random catalog card.
func (h *CatalogHandler) Random(c echo.Context) error {
	card, err := h.Catalog.RandomCard(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("catalog random card: %v", err)
		return fail(c, http.StatusBadGateway, "catalog_unavailable", "the card catalog could not be reached")
	}
	return c.JSON(http.StatusOK, echo.Map{"card": card})
}

// catalogSort maps the API's sort keys onto the catalog's order keys.
// created_at has no catalog equivalent and falls back to name.
func catalogSort(sort string) string {
	switch sort {
	case "name", "rarity":
		return sort
	default:
		return "name"
	}
}
