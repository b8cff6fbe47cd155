package scryfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	cases := []struct {
		name   string
		params SearchParams
		want   string
	}{
		{
			name:   "empty",
			params: SearchParams{},
			want:   "",
		},
		{
			name:   "free text only",
			params: SearchParams{Query: "lightning bolt"},
			want:   "lightning bolt",
		},
		{
			name:   "single color",
			params: SearchParams{Colors: []string{"R"}},
			want:   "(color=R)",
		},
		{
			name:   "color or group",
			params: SearchParams{Colors: []string{"R", "U"}},
			want:   "(color=R OR color=U)",
		},
		{
			name:   "exact cmc",
			params: SearchParams{ManaCost: "3"},
			want:   "cmc=3",
		},
		{
			name:   "cmc range",
			params: SearchParams{ManaCost: "1-3"},
			want:   "cmc>=1 cmc<=3",
		},
		{
			name:   "rarity is lowercased",
			params: SearchParams{Rarities: []string{"Mythic"}},
			want:   "(rarity:mythic)",
		},
		{
			name: "all facets conjoin",
			params: SearchParams{
				Query:    "bolt",
				Colors:   []string{"R", "U"},
				ManaCost: "1-3",
				Types:    []string{"instant"},
				Set:      "m21",
			},
			want: "bolt (color=R OR color=U) cmc>=1 cmc<=3 (type:instant) set:m21",
		},
		{
			name:   "type or group",
			params: SearchParams{Types: []string{"creature", "artifact"}},
			want:   "(type:creature OR type:artifact)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildQuery(tc.params))
		})
	}
}
