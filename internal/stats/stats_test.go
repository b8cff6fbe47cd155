package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestManaValue(t *testing.T) {
	cases := []struct {
		cost string
		want int
	}{
		{"", 0},
		{"{R}", 1},
		{"{2}{R}{R}", 4},
		{"{10}", 10},
		{"{X}{X}{R}", 1},
		{"{W/U}{W/U}", 2},
		{"{2/W}{2/W}", 4},
		{"{W/P}", 1},
		{"{1}{W} // {2}{U}", 2},
		{"no braces at all", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ManaValue(tc.cost), "cost %q", tc.cost)
	}
}

func TestColors(t *testing.T) {
	assert.Equal(t, []string{"C"}, Colors(""))
	assert.Equal(t, []string{"C"}, Colors("{3}"))
	assert.Equal(t, []string{"R"}, Colors("{2}{R}{R}"))
	assert.Equal(t, []string{"W", "U"}, Colors("{W}{U}"))
	assert.Equal(t, []string{"W", "U"}, Colors("{W/U}{W/U}"))
	assert.Equal(t, []string{"W", "U", "B", "R", "G"}, Colors("{W}{U}{B}{R}{G}"))
}

func TestPrimaryType(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"Creature — Elf Druid", "Creature"},
		{"Legendary Creature — Dragon", "Creature"},
		{"Artifact Creature — Golem", "Creature"},
		{"Instant", "Instant"},
		{"Basic Land — Forest", "Land"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PrimaryType(tc.line), "line %q", tc.line)
	}
}

func TestIsLand(t *testing.T) {
	assert.True(t, IsLand("Basic Land — Island"))
	assert.True(t, IsLand("Land"))
	assert.False(t, IsLand("Creature — Elf"))
}

func TestComputeEmptyDeck(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, 0, s.TotalCards)
	assert.Nil(t, s.AvgManaCost)
	// Maps must serialize as {}, not null.
	assert.NotNil(t, s.ColorDistribution)
	assert.NotNil(t, s.ManaCurve)
	assert.NotNil(t, s.TypeDistribution)
}

func TestCompute(t *testing.T) {
	entries := []Entry{
		{ManaCost: strp("{R}"), Type: "Instant", Quantity: 4},                      // mv 1
		{ManaCost: strp("{2}{R}{R}"), Type: "Creature — Dragon", Quantity: 2},      // mv 4
		{ManaCost: strp("{8}{G}"), Type: "Creature — Wurm", Quantity: 1},           // mv 9
		{ManaCost: nil, Type: "Basic Land — Mountain", Quantity: 20},               // land
		{ManaCost: strp("{X}{R}"), Type: "Sorcery", Quantity: 3},                   // mv 1
	}

	s := Compute(entries)

	assert.Equal(t, 30, s.TotalCards)

	// Lands are excluded from curve and average but not from totals.
	assert.Equal(t, map[string]int{"1": 7, "4": 2, "7+": 1}, s.ManaCurve)

	require.NotNil(t, s.AvgManaCost)
	// (4*1 + 2*4 + 1*9 + 3*1) / 10
	assert.InDelta(t, 2.4, *s.AvgManaCost, 1e-9)

	assert.Equal(t, map[string]int{"R": 9, "G": 1, "C": 20}, s.ColorDistribution)
	assert.Equal(t, map[string]int{"Instant": 4, "Creature": 3, "Land": 20, "Sorcery": 3}, s.TypeDistribution)
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	s := Compute([]Entry{
		{ManaCost: strp("{R}"), Type: "Instant", Quantity: 0},
		{ManaCost: strp("{R}"), Type: "Instant", Quantity: -3},
	})
	assert.Equal(t, 0, s.TotalCards)
	assert.Nil(t, s.AvgManaCost)
}
