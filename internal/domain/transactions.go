package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the nature of the transaction (debit or credit).
// It is informational: matching never requires type equality between the two
// sides, since the feeds frequently disagree on sign conventions.
type TransactionType string

const (
	DEBIT  TransactionType = "debit"
	CREDIT TransactionType = "credit"
)

// IsValid checks if the transaction type is one of the recognized values.
func (t TransactionType) IsValid() bool {
	return t == DEBIT || t == CREDIT
}

// Transaction represents one monetary movement as recorded by one side of the
// reconciliation: the external bank statement feed or the internal book
// ledger. Instances are treated as read-only by the matcher; matched pairs in
// the output carry copies with the match markers set, the caller's slices are
// never touched.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category,omitempty"`
	Reference   string          `json:"reference,omitempty"`

	// Populated only on output copies of matched pairs.
	Matched     bool   `json:"matched,omitempty"`
	MatchedWith string `json:"matchedWith,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// AccountInfo is descriptive context for the reconciled account. It is
// carried through to the report but never consulted by the matching
// algorithm.
type AccountInfo struct {
	Name           string          `json:"name"`
	Number         string          `json:"number"`
	BankName       string          `json:"bankName,omitempty"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// Period is the statement period being reconciled.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
