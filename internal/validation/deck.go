package validation

import (
	"net/url"
	"strings"
)

// Bounds shared by the deck schemas. Quantity and notes each had two
// competing caps at different entry points historically; they are
// resolved to a single bound here and applied uniformly.
const (
	DeckNameMax    = 100
	DeckDescMax    = 500
	DeckFormatMax  = 50
	DeckNotesMax   = 500
	DeckQtyMin     = 1
	DeckQtyMax     = 99
	DeckListMaxLim = 100
)

// CreateDeckRequest is the body of POST /v1/decks.
type CreateDeckRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Format      string  `json:"format"`
}

func (r *CreateDeckRequest) Validate() Errors {
	errs := Errors{}
	r.Name = strings.TrimSpace(r.Name)
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))

	if r.Name == "" {
		errs.Add("name", "name is required")
	} else if len(r.Name) > DeckNameMax {
		errs.Add("name", "name cannot exceed 100 characters")
	}
	if r.Description != nil && len(*r.Description) > DeckDescMax {
		errs.Add("description", "description cannot exceed 500 characters")
	}
	if r.Format == "" {
		errs.Add("format", "format is required")
	} else if len(r.Format) > DeckFormatMax {
		errs.Add("format", "format cannot exceed 50 characters")
	}
	return errs
}

// UpdateDeckRequest is the body of PUT /v1/decks/:id. All fields are
// optional but at least one must be present.
type UpdateDeckRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Format      *string `json:"format"`
}

func (r *UpdateDeckRequest) Validate() Errors {
	errs := Errors{}
	if r.Name == nil && r.Description == nil && r.Format == nil {
		errs.Add("body", "at least one field must be provided for update")
		return errs
	}
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if *r.Name == "" {
			errs.Add("name", "name is required")
		} else if len(*r.Name) > DeckNameMax {
			errs.Add("name", "name cannot exceed 100 characters")
		}
	}
	if r.Description != nil && len(*r.Description) > DeckDescMax {
		errs.Add("description", "description cannot exceed 500 characters")
	}
	if r.Format != nil {
		*r.Format = strings.ToLower(strings.TrimSpace(*r.Format))
		if *r.Format == "" {
			errs.Add("format", "format is required")
		} else if len(*r.Format) > DeckFormatMax {
			errs.Add("format", "format cannot exceed 50 characters")
		}
	}
	return errs
}

// DeckListQuery is the parsed query string of GET /v1/decks.
type DeckListQuery struct {
	Search string
	Format string
	Page   int
	Limit  int
	Sort   string
	Order  string
}

// ParseDeckListQuery coerces and bounds the deck list parameters.
func ParseDeckListQuery(q url.Values) (DeckListQuery, Errors) {
	errs := Errors{}
	out := DeckListQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Format: strings.ToLower(strings.TrimSpace(q.Get("format"))),
		Page:   parsePage(q.Get("page"), 0, errs),
		Limit:  parseLimit(q.Get("limit"), 20, DeckListMaxLim, errs),
		Sort:   parseEnum("sort", q.Get("sort"), "created_at", []string{"created_at", "last_modified", "name"}, errs),
		Order:  parseEnum("order", q.Get("order"), "desc", []string{"asc", "desc"}, errs),
	}
	if len(out.Format) > DeckFormatMax {
		errs.Add("format", "format cannot exceed 50 characters")
	}
	return out, errs
}

// AddDeckCardRequest is the body of POST /v1/decks/:id/cards.
type AddDeckCardRequest struct {
	CardID      uint64  `json:"card_id"`
	Quantity    int     `json:"quantity"`
	Notes       *string `json:"notes"`
	IsSideboard bool    `json:"is_sideboard"`
}

func (r *AddDeckCardRequest) Validate() Errors {
	errs := Errors{}
	if r.CardID == 0 {
		errs.Add("card_id", "card_id is required")
	}
	if r.Quantity < DeckQtyMin || r.Quantity > DeckQtyMax {
		errs.Add("quantity", "quantity must be between 1 and 99")
	}
	if r.Notes != nil && len(*r.Notes) > DeckNotesMax {
		errs.Add("notes", "notes cannot exceed 500 characters")
	}
	return errs
}

// UpdateDeckCardRequest is the body of PUT /v1/decks/:id/cards/:cardId.
type UpdateDeckCardRequest struct {
	Quantity    *int    `json:"quantity"`
	Notes       *string `json:"notes"`
	IsSideboard *bool   `json:"is_sideboard"`
}

func (r *UpdateDeckCardRequest) Validate() Errors {
	errs := Errors{}
	if r.Quantity == nil && r.Notes == nil && r.IsSideboard == nil {
		errs.Add("body", "at least one field must be provided for update")
		return errs
	}
	if r.Quantity != nil && (*r.Quantity < DeckQtyMin || *r.Quantity > DeckQtyMax) {
		errs.Add("quantity", "quantity must be between 1 and 99")
	}
	if r.Notes != nil && len(*r.Notes) > DeckNotesMax {
		errs.Add("notes", "notes cannot exceed 500 characters")
	}
	return errs
}

// DeckCardsQuery is the parsed query string of GET /v1/decks/:id/cards.
type DeckCardsQuery struct {
	IsSideboard *bool
	Page        int
	Limit       int
}

func ParseDeckCardsQuery(q url.Values) (DeckCardsQuery, Errors) {
	errs := Errors{}
	out := DeckCardsQuery{
		Page:  parsePage(q.Get("page"), 0, errs),
		Limit: parseLimit(q.Get("limit"), 100, DeckListMaxLim, errs),
	}
	switch q.Get("is_sideboard") {
	case "":
	case "true", "1":
		v := true
		out.IsSideboard = &v
	case "false", "0":
		v := false
		out.IsSideboard = &v
	default:
		errs.Add("is_sideboard", "is_sideboard must be true or false")
	}
	return out, errs
}
