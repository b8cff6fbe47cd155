package repository

import (
	"context"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// CardSearchQuery defines filters & pagination for searching the local
// card store. Slices are OR groups within a facet; facets combine with
// AND.
type CardSearchQuery struct {
	Q        string
	Colors   []string
	ManaCost string
	Types    []string
	Rarities []string
	Page     int
	PageSize int
	Sort     string
	Order    string
}

// cardSortColumns whitelists sortable columns so request input never
// reaches the ORDER BY clause directly.
var cardSortColumns = map[string]string{
	"name":       "name",
	"rarity":     "rarity",
	"created_at": "created_at",
}

// Search filters the local card store and returns one page plus the
// total match count.
func (r *CardRepo) Search(ctx context.Context, q CardSearchQuery) ([]model.Card, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Q)+"%")
	}
	if q.ManaCost != "" {
		where = append(where, "mana_cost LIKE ?")
		args = append(args, "%"+q.ManaCost+"%")
	}
	if len(q.Types) > 0 {
		// The type column holds full type lines ("Legendary Creature — Dragon"),
		// so each requested type matches as a substring.
		group := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			group = append(group, "type LIKE ?")
			args = append(args, "%"+t+"%")
		}
		where = append(where, "("+strings.Join(group, " OR ")+")")
	}
	if len(q.Rarities) > 0 {
		ph := make([]string, 0, len(q.Rarities))
		for _, rar := range q.Rarities {
			ph = append(ph, "?")
			args = append(args, strings.ToLower(rar))
		}
		where = append(where, "rarity IN ("+strings.Join(ph, ",")+")")
	}
	if len(q.Colors) > 0 {
		// Colors are matched against mana cost symbols; "C" selects rows
		// whose cost carries no colored symbol at all.
		group := make([]string, 0, len(q.Colors))
		for _, col := range q.Colors {
			if col == "C" {
				group = append(group, "(mana_cost IS NULL OR mana_cost NOT REGEXP '\\\\{[WUBRG]')")
				continue
			}
			group = append(group, "mana_cost LIKE ?")
			args = append(args, "%{"+col+"}%")
		}
		where = append(where, "("+strings.Join(group, " OR ")+")")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cards WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	sortCol, ok := cardSortColumns[q.Sort]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		dir = "ASC"
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE "+cond+
			" ORDER BY "+sortCol+" "+dir+" LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	out := make([]model.Card, 0, limit)
	for rows.Next() {
		var (
			c        model.Card
			manaCost sqlNullString
			imageURL sqlNullString
		)
		if err := rows.Scan(&c.ID, &c.ScryfallID, &c.Name, &manaCost, &c.Type, &c.Rarity, &imageURL, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		c.ManaCost = manaCost.ptr()
		c.ImageURL = imageURL.ptr()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
