// Package stats computes deck aggregates from card projections. All
// functions are pure; persistence and freshness are the caller's
// concern.
package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one deck line as the engine sees it: the card's mana cost
// and type line plus how many copies the deck runs.
type Entry struct {
	ManaCost *string
	Type     string
	Quantity int
}

// Summary is the computed aggregate for one deck. Distribution maps
// are never nil so they serialize as {} rather than null.
type Summary struct {
	TotalCards        int
	AvgManaCost       *float64
	ColorDistribution map[string]int
	ManaCurve         map[string]int
	TypeDistribution  map[string]int
}

// Compute aggregates all entries of a deck. Lands are excluded from
// the mana curve and the average mana value, since they have no cost
// to speak of; they still count toward totals and type distribution.
func Compute(entries []Entry) Summary {
	s := Summary{
		ColorDistribution: map[string]int{},
		ManaCurve:         map[string]int{},
		TypeDistribution:  map[string]int{},
	}

	var costSum float64
	var costCount int

	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		s.TotalCards += e.Quantity
		s.TypeDistribution[PrimaryType(e.Type)] += e.Quantity

		cost := ""
		if e.ManaCost != nil {
			cost = *e.ManaCost
		}
		for _, c := range Colors(cost) {
			s.ColorDistribution[c] += e.Quantity
		}

		if IsLand(e.Type) {
			continue
		}
		mv := ManaValue(cost)
		s.ManaCurve[curveBucket(mv)] += e.Quantity
		costSum += float64(mv) * float64(e.Quantity)
		costCount += e.Quantity
	}

	if costCount > 0 {
		avg := costSum / float64(costCount)
		s.AvgManaCost = &avg
	}
	return s
}

// ManaValue converts a mana cost string like "{2}{R}{R}" into its
// total converted cost. Numeric symbols contribute their value, {X}
// contributes zero, and every other symbol (colored, hybrid, phyrexian)
// contributes one. Split costs like "{1}{W} // {2}{U}" count the first
// face only.
func ManaValue(cost string) int {
	if i := strings.Index(cost, "//"); i >= 0 {
		cost = cost[:i]
	}
	total := 0
	for _, sym := range symbols(cost) {
		switch {
		case sym == "X" || sym == "Y" || sym == "Z":
			// X is zero outside the stack
		case isNumeric(sym):
			n, _ := strconv.Atoi(sym)
			total += n
		case strings.Contains(sym, "/") && isNumeric(strings.SplitN(sym, "/", 2)[0]):
			// "2/W"-style hybrid counts its generic half
			n, _ := strconv.Atoi(strings.SplitN(sym, "/", 2)[0])
			total += n
		default:
			total++
		}
	}
	return total
}

// Colors reports which of the five colors appear in a mana cost. A
// cost with no colored symbols (including an empty one) is colorless,
// reported as "C".
func Colors(cost string) []string {
	seen := map[string]bool{}
	order := []string{}
	for _, sym := range symbols(cost) {
		for _, c := range []string{"W", "U", "B", "R", "G"} {
			if strings.Contains(sym, c) && !seen[c] {
				seen[c] = true
				order = append(order, c)
			}
		}
	}
	if len(order) == 0 {
		return []string{"C"}
	}
	return order
}

// IsLand reports whether a type line describes a land.
func IsLand(typeLine string) bool {
	return strings.Contains(typeLine, "Land")
}

// PrimaryType extracts the bucketing type from a full type line: the
// segment before the em dash, reduced to its last word so that
// "Legendary Creature — Dragon" and "Artifact Creature — Golem" both
// bucket as "Creature".
func PrimaryType(typeLine string) string {
	if i := strings.Index(typeLine, "—"); i >= 0 {
		typeLine = typeLine[:i]
	}
	fields := strings.Fields(typeLine)
	if len(fields) == 0 {
		return "Unknown"
	}
	return fields[len(fields)-1]
}

// curveBucket maps a mana value onto the curve keys "0".."6" and "7+".
func curveBucket(mv int) string {
	if mv >= 7 {
		return "7+"
	}
	return fmt.Sprintf("%d", mv)
}

// symbols splits a cost string into its brace-delimited symbols.
// Anything outside braces is ignored.
func symbols(cost string) []string {
	var out []string
	for {
		open := strings.IndexByte(cost, '{')
		if open < 0 {
			return out
		}
		close := strings.IndexByte(cost[open:], '}')
		if close < 0 {
			return out
		}
		out = append(out, cost[open+1:open+close])
		cost = cost[open+close+1:]
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
