package scryfall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/search", r.URL.Path)
		assert.Equal(t, "bolt", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		resp := searchResponse{
			Object:     "list",
			TotalCards: 1,
			HasMore:    false,
			Data: []Card{{
				ID:       "abc-123",
				Name:     "Lightning Bolt",
				ManaCost: "{R}",
				CMC:      1,
				TypeLine: "Instant",
				Rarity:   "common",
				SetCode:  "m21",
				SetName:  "Core Set 2021",
				ImageURIs: &ImageURIs{
					Small:  "https://img/small.jpg",
					Normal: "https://img/normal.jpg",
					Large:  "https://img/large.jpg",
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Search(context.Background(), SearchParams{Query: "bolt", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalCards)
	assert.False(t, res.HasMore)
	require.Len(t, res.Cards, 1)

	card := res.Cards[0]
	assert.Equal(t, "abc-123", card.ScryfallID)
	assert.Equal(t, "Lightning Bolt", card.Name)
	assert.Equal(t, "{R}", card.ManaCost)
	assert.Equal(t, "Instant", card.Type)
	// normal wins over large and small
	assert.Equal(t, "https://img/normal.jpg", card.ImageURL)
}

func TestClientSearchNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object":"error","code":"not_found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Search(context.Background(), SearchParams{Query: "zzzzzz"})
	require.NoError(t, err)
	assert.Empty(t, res.Cards)
	assert.Equal(t, 0, res.TotalCards)
}

func TestClientSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), SearchParams{Query: "bolt"})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestClientGetCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/abc-123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Card{
			ID:       "abc-123",
			Name:     "Lightning Bolt",
			TypeLine: "Instant",
			Rarity:   "common",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	card, err := c.GetCard(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", card.Name)
}

func TestClientGetCardNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object":"error"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetCard(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestPickImageFaceFallback(t *testing.T) {
	card := Card{
		CardFaces: []CardFace{
			{ImageURIs: &ImageURIs{Large: "https://img/face-large.jpg"}},
			{ImageURIs: &ImageURIs{Normal: "https://img/back.jpg"}},
		},
	}
	assert.Equal(t, "https://img/face-large.jpg", pickImage(card))
	assert.Equal(t, "", pickImage(Card{}))
}
