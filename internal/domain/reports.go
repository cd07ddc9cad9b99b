package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchMethod records how a matched pair was produced.
type MatchMethod string

const (
	MethodExact MatchMethod = "exact"
	MethodFuzzy MatchMethod = "fuzzy"
	// MethodManual is reserved for matches recorded outside the engine,
	// e.g. by an operator reviewing the unmatched sets. The engine never
	// produces it.
	MethodManual MatchMethod = "manual"
)

// MatchedTransaction pairs one bank transaction with one book transaction.
// Confidence is 1.0 for exact matches and the computed score for fuzzy ones.
type MatchedTransaction struct {
	BankTransaction Transaction `json:"bankTransaction"`
	BookTransaction Transaction `json:"bookTransaction"`
	Confidence      float64     `json:"confidence"`
	Method          MatchMethod `json:"method"`
}

// ReconciliationStatus is the overall outcome of a run.
type ReconciliationStatus string

const (
	StatusBalanced   ReconciliationStatus = "balanced"
	StatusUnbalanced ReconciliationStatus = "unbalanced"
)

// ReconciliationSummary provides the aggregate totals of a run. MatchedAmount
// sums the bank-side amount of each pair; under fuzzy matching the book-side
// amount is only assumed to agree, so the statement side is the authoritative
// figure.
type ReconciliationSummary struct {
	MatchedAmount       decimal.Decimal      `json:"matchedAmount"`
	UnmatchedBankAmount decimal.Decimal      `json:"unmatchedBankAmount"`
	UnmatchedBookAmount decimal.Decimal      `json:"unmatchedBookAmount"`
	Discrepancy         decimal.Decimal      `json:"discrepancy"`
	Status              ReconciliationStatus `json:"status"`
	MatchPercentage     float64              `json:"matchPercentage"`
}

// MatchResults is the full output of a reconciliation run. Every input bank
// transaction appears in exactly one of Matched (as BankTransaction) or
// UnmatchedBank; the symmetric property holds for book transactions.
type MatchResults struct {
	Matched       []MatchedTransaction  `json:"matched"`
	UnmatchedBank []Transaction         `json:"unmatchedBank"`
	UnmatchedBook []Transaction         `json:"unmatchedBook"`
	Summary       ReconciliationSummary `json:"summary"`
}

// Report wraps MatchResults with run context for the final JSON output.
type Report struct {
	RunID       string       `json:"runID"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Account     AccountInfo  `json:"account"`
	Period      Period       `json:"period"`
	Results     MatchResults `json:"results"`
}
