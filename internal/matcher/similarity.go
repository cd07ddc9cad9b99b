package matcher

import "strings"

// Similarity scores how alike two strings are on a [0,1] scale. Callers are
// expected to lowercase both inputs beforehand. The heuristic is deliberately
// cheap: exact equality wins, then substring containment, then token overlap
// where only tokens longer than three characters count.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return 0.8
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)

	matches := 0
	for _, ta := range tokensA {
		if len(ta) <= 3 {
			continue
		}
		for _, tb := range tokensB {
			if strings.Contains(tb, ta) || strings.Contains(ta, tb) {
				matches++
				break
			}
		}
	}

	denom := len(tokensA)
	if denom < 1 {
		denom = 1
	}
	score := float64(matches) / float64(denom)
	if score > 1.0 {
		score = 1.0
	}
	return score
}
