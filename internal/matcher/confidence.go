package matcher

import (
	"math"
	"strings"

	"bank-reconciliation/internal/domain"
)

// Factor weights. The score is normalized by the weight of the factors
// actually evaluated, so a disabled factor (or a missing optional field)
// redistributes importance among the rest instead of penalizing the pair.
const (
	amountWeight      = 0.4
	dateWeight        = 0.3
	descriptionWeight = 0.2
	referenceWeight   = 0.1
)

// Confidence scores a candidate bank/book pair on a [0,1] scale. The amount
// factor is all-or-nothing on exact equality; the date factor decays linearly
// from full weight at zero days to nothing at the tolerance boundary; the
// description and reference factors apply Similarity over lowercased text and
// only participate when both sides carry the field.
func Confidence(bank, book domain.Transaction, settings domain.Settings) float64 {
	s := settings.WithDefaults()

	var score, totalWeight float64

	if *s.MatchByAmount {
		totalWeight += amountWeight
		if bank.Amount.Equal(book.Amount) {
			score += amountWeight
		}
	}

	if *s.MatchByDate {
		totalWeight += dateWeight
		tolerance := float64(*s.DateTolerance)
		dayDiff := math.Abs(bank.Date.Sub(book.Date).Hours() / 24)
		switch {
		case tolerance == 0:
			if dayDiff == 0 {
				score += dateWeight
			}
		case dayDiff <= tolerance:
			score += dateWeight * (1 - dayDiff/tolerance)
		}
	}

	if *s.MatchByDescription && bank.Description != "" && book.Description != "" {
		totalWeight += descriptionWeight
		score += descriptionWeight * Similarity(
			strings.ToLower(bank.Description),
			strings.ToLower(book.Description),
		)
	}

	if *s.MatchByReference && bank.Reference != "" && book.Reference != "" {
		totalWeight += referenceWeight
		score += referenceWeight * Similarity(
			strings.ToLower(bank.Reference),
			strings.ToLower(book.Reference),
		)
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}
