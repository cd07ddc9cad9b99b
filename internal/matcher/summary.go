package matcher

import (
	"github.com/shopspring/decimal"

	"bank-reconciliation/internal/domain"
)

// balancedTolerance is the absolute discrepancy under which a run counts as
// balanced.
var balancedTolerance = decimal.NewFromFloat(0.01)

// Summarize totals the matched and unmatched sets. It is a pure function of
// its inputs. The matched total sums the bank-side amount of each pair: under
// fuzzy matching the book-side amount is only assumed to agree, so the
// statement side is the authoritative figure.
func Summarize(matched []domain.MatchedTransaction, unmatchedBank, unmatchedBook []domain.Transaction) domain.ReconciliationSummary {
	matchedAmount := decimal.Zero
	for _, m := range matched {
		matchedAmount = matchedAmount.Add(m.BankTransaction.Amount)
	}

	unmatchedBankAmount := decimal.Zero
	for _, tx := range unmatchedBank {
		unmatchedBankAmount = unmatchedBankAmount.Add(tx.Amount)
	}

	unmatchedBookAmount := decimal.Zero
	for _, tx := range unmatchedBook {
		unmatchedBookAmount = unmatchedBookAmount.Add(tx.Amount)
	}

	discrepancy := unmatchedBankAmount.Sub(unmatchedBookAmount)

	status := domain.StatusUnbalanced
	if discrepancy.Abs().LessThan(balancedTolerance) {
		status = domain.StatusBalanced
	}

	total := len(matched) + len(unmatchedBank) + len(unmatchedBook)
	matchPercentage := 100.0
	if total > 0 {
		matchPercentage = float64(len(matched)) / float64(total) * 100
	}

	return domain.ReconciliationSummary{
		MatchedAmount:       matchedAmount,
		UnmatchedBankAmount: unmatchedBankAmount,
		UnmatchedBookAmount: unmatchedBookAmount,
		Discrepancy:         discrepancy,
		Status:              status,
		MatchPercentage:     matchPercentage,
	}
}
