package scryfall

import (
	"fmt"
	"strings"
)

// SearchParams are the internal search facets that get translated into
// a single Scryfall query expression. Within a facet the values are
// alternatives (OR); across facets the clauses conjoin (AND).
type SearchParams struct {
	Query    string   // free text
	Colors   []string // subset of W,U,B,R,G,C
	ManaCost string   // "3" for exact, "1-3" for an inclusive range
	Types    []string
	Rarities []string
	Set      string
	Page     int    // 1-based, Scryfall pages are 175 cards
	Sort     string // Scryfall order key: name, cmc, rarity, ...
	Order    string // asc or desc
}

// BuildQuery renders the facets into one Scryfall fulltext expression,
// e.g. `bolt (color=R OR color=U) cmc>=1 cmc<=3 (type:instant) set:m21`.
func BuildQuery(p SearchParams) string {
	var parts []string

	if p.Query != "" {
		parts = append(parts, p.Query)
	}
	if len(p.Colors) > 0 {
		group := make([]string, 0, len(p.Colors))
		for _, c := range p.Colors {
			group = append(group, "color="+c)
		}
		parts = append(parts, orGroup(group))
	}
	if p.ManaCost != "" {
		if lo, hi, ok := strings.Cut(p.ManaCost, "-"); ok {
			parts = append(parts, fmt.Sprintf("cmc>=%s cmc<=%s", lo, hi))
		} else {
			parts = append(parts, "cmc="+p.ManaCost)
		}
	}
	if len(p.Types) > 0 {
		group := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			group = append(group, "type:"+t)
		}
		parts = append(parts, orGroup(group))
	}
	if len(p.Rarities) > 0 {
		group := make([]string, 0, len(p.Rarities))
		for _, r := range p.Rarities {
			group = append(group, "rarity:"+strings.ToLower(r))
		}
		parts = append(parts, orGroup(group))
	}
	if p.Set != "" {
		parts = append(parts, "set:"+p.Set)
	}

	return strings.Join(parts, " ")
}

func orGroup(clauses []string) string {
	if len(clauses) == 1 {
		return "(" + clauses[0] + ")"
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}
