package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Rarity is a closed enumeration in card schemas; input is accepted
// case-insensitively and normalized to lower case.
var rarities = map[string]bool{
	"common":   true,
	"uncommon": true,
	"rare":     true,
	"mythic":   true,
}

var colorCodes = map[string]bool{
	"W": true, "U": true, "B": true, "R": true, "G": true, "C": true,
}

var (
	queryRe    = regexp.MustCompile(`^[a-zA-Z0-9\s\-_',]+$`)
	manaCostRe = regexp.MustCompile(`^[0-9XWUBRG{}/\s-]+$`)
	setRe      = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
)

// CreateCardRequest is the body of POST /v1/cards: the projection of a
// catalog card to store locally, keyed by its external id.
type CreateCardRequest struct {
	ScryfallID string  `json:"scryfall_id"`
	Name       string  `json:"name"`
	ManaCost   *string `json:"mana_cost"`
	Type       string  `json:"type"`
	Rarity     string  `json:"rarity"`
	ImageURL   *string `json:"image_url"`
}

func (r *CreateCardRequest) Validate() Errors {
	errs := Errors{}
	r.ScryfallID = strings.TrimSpace(r.ScryfallID)
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	r.Rarity = strings.ToLower(strings.TrimSpace(r.Rarity))

	if r.ScryfallID == "" {
		errs.Add("scryfall_id", "scryfall_id is required")
	} else if len(r.ScryfallID) > 64 {
		errs.Add("scryfall_id", "scryfall_id cannot exceed 64 characters")
	}
	if r.Name == "" {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name cannot exceed 255 characters")
	}
	if r.Type == "" {
		errs.Add("type", "type is required")
	} else if len(r.Type) > 255 {
		errs.Add("type", "type cannot exceed 255 characters")
	}
	if !rarities[r.Rarity] {
		errs.Add("rarity", "rarity must be one of: common, uncommon, rare, mythic")
	}
	if r.ImageURL != nil && len(*r.ImageURL) > 2048 {
		errs.Add("image_url", "image_url cannot exceed 2048 characters")
	}
	return errs
}

// UpdateCardRequest is the body of PUT /v1/cards/:id, a corrective
// patch. All fields optional, at least one required.
type UpdateCardRequest struct {
	Name     *string `json:"name"`
	ManaCost *string `json:"mana_cost"`
	Type     *string `json:"type"`
	Rarity   *string `json:"rarity"`
	ImageURL *string `json:"image_url"`
}

func (r *UpdateCardRequest) Validate() Errors {
	errs := Errors{}
	if r.Name == nil && r.ManaCost == nil && r.Type == nil && r.Rarity == nil && r.ImageURL == nil {
		errs.Add("body", "at least one field must be provided for update")
		return errs
	}
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if *r.Name == "" || len(*r.Name) > 255 {
			errs.Add("name", "name must be 1-255 characters")
		}
	}
	if r.Type != nil {
		*r.Type = strings.TrimSpace(*r.Type)
		if *r.Type == "" || len(*r.Type) > 255 {
			errs.Add("type", "type must be 1-255 characters")
		}
	}
	if r.Rarity != nil {
		*r.Rarity = strings.ToLower(strings.TrimSpace(*r.Rarity))
		if !rarities[*r.Rarity] {
			errs.Add("rarity", "rarity must be one of: common, uncommon, rare, mythic")
		}
	}
	if r.ImageURL != nil && len(*r.ImageURL) > 2048 {
		errs.Add("image_url", "image_url cannot exceed 2048 characters")
	}
	return errs
}

// CardSearchQuery is the parsed query string of GET /v1/cards/search
// and GET /v1/catalog/search.
type CardSearchQuery struct {
	Q        string
	Colors   []string
	ManaCost string
	Types    []string
	Rarities []string
	Set      string
	Page     int
	Limit    int
	Sort     string
	Order    string
}

// ParseCardSearchQuery coerces and bounds the card search parameters.
func ParseCardSearchQuery(q url.Values) (CardSearchQuery, Errors) {
	errs := Errors{}
	out := CardSearchQuery{
		Q:        strings.TrimSpace(q.Get("q")),
		ManaCost: strings.TrimSpace(q.Get("mana_cost")),
		Set:      strings.TrimSpace(q.Get("set")),
		Page:     parsePage(q.Get("page"), 1000, errs),
		Limit:    parseLimit(q.Get("limit"), 20, 100, errs),
		Sort:     parseEnum("sort", q.Get("sort"), "name", []string{"name", "rarity", "created_at"}, errs),
		Order:    parseEnum("order", q.Get("order"), "asc", []string{"asc", "desc"}, errs),
	}

	if len(out.Q) > 100 {
		errs.Add("q", "query string too long")
	} else if out.Q != "" && !queryRe.MatchString(out.Q) {
		errs.Add("q", "query contains invalid characters")
	}

	for _, c := range splitList(q.Get("colors")) {
		c = strings.ToUpper(c)
		if !colorCodes[c] {
			errs.Add("colors", "invalid color codes, use W, U, B, R, G, C")
			continue
		}
		out.Colors = append(out.Colors, c)
	}
	if len(out.Colors) > 5 {
		errs.Add("colors", "maximum 5 colors allowed")
	}

	if len(out.ManaCost) > 20 {
		errs.Add("mana_cost", "mana cost string too long")
	} else if out.ManaCost != "" && !manaCostRe.MatchString(out.ManaCost) {
		errs.Add("mana_cost", "invalid mana cost format")
	}

	out.Types = splitList(q.Get("type"))
	if len(out.Types) > 10 {
		errs.Add("type", "maximum 10 types allowed")
	}
	for _, t := range out.Types {
		if len(t) > 50 {
			errs.Add("type", "type strings must be at most 50 characters")
			break
		}
	}

	for _, r := range splitList(q.Get("rarity")) {
		r = strings.ToLower(r)
		if !rarities[r] {
			errs.Add("rarity", "rarity must be one of: common, uncommon, rare, mythic")
			continue
		}
		out.Rarities = append(out.Rarities, r)
	}

	if len(out.Set) > 50 {
		errs.Add("set", "set name too long")
	} else if out.Set != "" && !setRe.MatchString(out.Set) {
		errs.Add("set", "set name contains invalid characters")
	}

	return out, errs
}
