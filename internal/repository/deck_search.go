package repository

import (
	"context"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// DeckSearchQuery defines filters & pagination for listing a user's
// decks.
type DeckSearchQuery struct {
	Search   string
	Format   string
	Page     int
	PageSize int
	Sort     string
	Order    string
}

var deckSortColumns = map[string]string{
	"created_at":    "created_at",
	"last_modified": "last_modified",
	"name":          "name",
}

// Search returns one page of the user's decks plus the total match
// count. Name matching is a case-insensitive substring; format is an
// exact match.
func (r *DeckRepo) Search(ctx context.Context, userID uint64, q DeckSearchQuery) ([]model.Deck, int64, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if q.Search != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}
	if q.Format != "" {
		where = append(where, "format = ?")
		args = append(args, q.Format)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM decks WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	sortCol, ok := deckSortColumns[q.Sort]
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
		"SELECT "+deckColumns+" FROM decks WHERE "+cond+
			" ORDER BY "+sortCol+" "+dir+" LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	out := make([]model.Deck, 0, limit)
	for rows.Next() {
		var (
			d    model.Deck
			desc sqlNullString
		)
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &desc, &d.Format, &d.DeckSize, &d.CreatedAt, &d.LastModified); err != nil {
			return nil, 0, err
		}
		d.Description = desc.ptr()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
