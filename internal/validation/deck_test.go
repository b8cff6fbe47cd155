package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestCreateDeckRequestValidate(t *testing.T) {
	t.Run("valid, format lowercased", func(t *testing.T) {
		req := CreateDeckRequest{Name: " Burn ", Format: " Modern "}
		errs := req.Validate()
		assert.True(t, errs.Empty())
		assert.Equal(t, "Burn", req.Name)
		assert.Equal(t, "modern", req.Format)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := CreateDeckRequest{}
		errs := req.Validate()
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "format")
	})

	t.Run("overlong values", func(t *testing.T) {
		long := strings.Repeat("x", 501)
		req := CreateDeckRequest{
			Name:        strings.Repeat("n", 101),
			Description: &long,
			Format:      strings.Repeat("f", 51),
		}
		errs := req.Validate()
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "description")
		assert.Contains(t, errs, "format")
	})
}

func TestUpdateDeckRequestValidate(t *testing.T) {
	t.Run("requires at least one field", func(t *testing.T) {
		req := UpdateDeckRequest{}
		errs := req.Validate()
		assert.Contains(t, errs, "body")
	})

	t.Run("single field is enough", func(t *testing.T) {
		req := UpdateDeckRequest{Name: strp("New Name")}
		assert.True(t, req.Validate().Empty())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		req := UpdateDeckRequest{Name: strp("   ")}
		errs := req.Validate()
		assert.Contains(t, errs, "name")
	})
}

func TestParseDeckListQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, errs := ParseDeckListQuery(url.Values{})
		require.True(t, errs.Empty())
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 20, q.Limit)
		assert.Equal(t, "created_at", q.Sort)
		assert.Equal(t, "desc", q.Order)
	})

	t.Run("explicit values", func(t *testing.T) {
		q, errs := ParseDeckListQuery(url.Values{
			"search": {" burn "},
			"format": {"Modern"},
			"page":   {"3"},
			"limit":  {"50"},
			"sort":   {"name"},
			"order":  {"asc"},
		})
		require.True(t, errs.Empty())
		assert.Equal(t, "burn", q.Search)
		assert.Equal(t, "modern", q.Format)
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 50, q.Limit)
		assert.Equal(t, "name", q.Sort)
		assert.Equal(t, "asc", q.Order)
	})

	t.Run("bad sort and limit", func(t *testing.T) {
		_, errs := ParseDeckListQuery(url.Values{"sort": {"deck_size"}, "limit": {"0"}})
		assert.Contains(t, errs, "sort")
		assert.Contains(t, errs, "limit")
	})
}

func TestAddDeckCardRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := AddDeckCardRequest{CardID: 7, Quantity: 4}
		assert.True(t, req.Validate().Empty())
	})

	t.Run("quantity bounds", func(t *testing.T) {
		for _, qty := range []int{0, -1, 100} {
			req := AddDeckCardRequest{CardID: 7, Quantity: qty}
			errs := req.Validate()
			assert.Contains(t, errs, "quantity", "quantity %d", qty)
		}
		req := AddDeckCardRequest{CardID: 7, Quantity: 99}
		assert.True(t, req.Validate().Empty())
	})

	t.Run("missing card id", func(t *testing.T) {
		req := AddDeckCardRequest{Quantity: 1}
		errs := req.Validate()
		assert.Contains(t, errs, "card_id")
	})

	t.Run("overlong notes", func(t *testing.T) {
		long := strings.Repeat("n", 501)
		req := AddDeckCardRequest{CardID: 7, Quantity: 1, Notes: &long}
		errs := req.Validate()
		assert.Contains(t, errs, "notes")
	})
}

func TestUpdateDeckCardRequestValidate(t *testing.T) {
	req := UpdateDeckCardRequest{}
	errs := req.Validate()
	assert.Contains(t, errs, "body")

	req = UpdateDeckCardRequest{Quantity: intp(3)}
	assert.True(t, req.Validate().Empty())

	req = UpdateDeckCardRequest{Quantity: intp(0)}
	errs = req.Validate()
	assert.Contains(t, errs, "quantity")
}

func TestParseDeckCardsQuery(t *testing.T) {
	q, errs := ParseDeckCardsQuery(url.Values{"is_sideboard": {"true"}})
	require.True(t, errs.Empty())
	require.NotNil(t, q.IsSideboard)
	assert.True(t, *q.IsSideboard)

	q, errs = ParseDeckCardsQuery(url.Values{})
	require.True(t, errs.Empty())
	assert.Nil(t, q.IsSideboard)

	_, errs = ParseDeckCardsQuery(url.Values{"is_sideboard": {"maybe"}})
	assert.Contains(t, errs, "is_sideboard")
}
