package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCardRequestValidate(t *testing.T) {
	t.Run("valid, rarity normalized", func(t *testing.T) {
		req := CreateCardRequest{
			ScryfallID: " abc-123 ",
			Name:       "Lightning Bolt",
			Type:       "Instant",
			Rarity:     " Common ",
		}
		errs := req.Validate()
		assert.True(t, errs.Empty())
		assert.Equal(t, "abc-123", req.ScryfallID)
		assert.Equal(t, "common", req.Rarity)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := CreateCardRequest{}
		errs := req.Validate()
		assert.Contains(t, errs, "scryfall_id")
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "type")
		assert.Contains(t, errs, "rarity")
	})

	t.Run("unknown rarity", func(t *testing.T) {
		req := CreateCardRequest{ScryfallID: "a", Name: "n", Type: "t", Rarity: "legendary"}
		errs := req.Validate()
		assert.Contains(t, errs, "rarity")
	})

	t.Run("overlong image url", func(t *testing.T) {
		long := "https://img/" + strings.Repeat("x", 2048)
		req := CreateCardRequest{ScryfallID: "a", Name: "n", Type: "t", Rarity: "rare", ImageURL: &long}
		errs := req.Validate()
		assert.Contains(t, errs, "image_url")
	})
}

func TestUpdateCardRequestValidate(t *testing.T) {
	req := UpdateCardRequest{}
	errs := req.Validate()
	assert.Contains(t, errs, "body")

	req = UpdateCardRequest{Rarity: strp("MYTHIC")}
	errs = req.Validate()
	assert.True(t, errs.Empty())
	assert.Equal(t, "mythic", *req.Rarity)
}

func TestParseCardSearchQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, errs := ParseCardSearchQuery(url.Values{})
		require.True(t, errs.Empty())
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 20, q.Limit)
		assert.Equal(t, "name", q.Sort)
		assert.Equal(t, "asc", q.Order)
	})

	t.Run("colors parsed and uppercased", func(t *testing.T) {
		q, errs := ParseCardSearchQuery(url.Values{"colors": {"r, u"}})
		require.True(t, errs.Empty())
		assert.Equal(t, []string{"R", "U"}, q.Colors)
	})

	t.Run("invalid color code", func(t *testing.T) {
		_, errs := ParseCardSearchQuery(url.Values{"colors": {"W,Q"}})
		assert.Contains(t, errs, "colors")
	})

	t.Run("query charset", func(t *testing.T) {
		q, errs := ParseCardSearchQuery(url.Values{"q": {"Serra's Angel"}})
		require.True(t, errs.Empty())
		assert.Equal(t, "Serra's Angel", q.Q)

		_, errs = ParseCardSearchQuery(url.Values{"q": {"bolt; DROP TABLE"}})
		assert.Contains(t, errs, "q")
	})

	t.Run("mana cost charset", func(t *testing.T) {
		_, errs := ParseCardSearchQuery(url.Values{"mana_cost": {"{2}{R}"}})
		assert.True(t, errs.Empty())

		_, errs = ParseCardSearchQuery(url.Values{"mana_cost": {"{Q!}"}})
		assert.Contains(t, errs, "mana_cost")
	})

	t.Run("rarity list filtered", func(t *testing.T) {
		q, errs := ParseCardSearchQuery(url.Values{"rarity": {"Rare,mythic"}})
		require.True(t, errs.Empty())
		assert.Equal(t, []string{"rare", "mythic"}, q.Rarities)
	})

	t.Run("page cap", func(t *testing.T) {
		_, errs := ParseCardSearchQuery(url.Values{"page": {"1001"}})
		assert.Contains(t, errs, "page")
	})
}
