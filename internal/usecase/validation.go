package usecase

import (
	"fmt"

	"bank-reconciliation/internal/domain"
)

// ValidateInput checks a reconciliation payload before it reaches the
// matching core. Problems are reported as human-readable strings alongside a
// validity flag rather than as an error: callers surface the full list at
// once. The matching core itself never validates and never fails.
func ValidateInput(data ReconciliationData) (bool, []string) {
	var problems []string

	if data.Account.Name == "" {
		problems = append(problems, "account name is required")
	}
	if data.Account.Number == "" {
		problems = append(problems, "account number is required")
	}
	if data.Account.Currency == "" {
		problems = append(problems, "account currency is required")
	}

	if data.Period.Start.IsZero() || data.Period.End.IsZero() {
		problems = append(problems, "reconciliation period is required")
	} else if data.Period.End.Before(data.Period.Start) {
		problems = append(problems, "period end date is before the start date")
	}

	if len(data.BankTransactions) == 0 {
		problems = append(problems, "bank transaction list is empty")
	}
	if len(data.BookTransactions) == 0 {
		problems = append(problems, "book transaction list is empty")
	}

	problems = append(problems, validateTransactions("bank", data.BankTransactions)...)
	problems = append(problems, validateTransactions("book", data.BookTransactions)...)

	return len(problems) == 0, problems
}

func validateTransactions(side string, txs []domain.Transaction) []string {
	var problems []string
	for i, tx := range txs {
		if tx.ID == "" {
			problems = append(problems, fmt.Sprintf("%s transaction at index %d has no id", side, i))
			continue
		}
		if tx.Date.IsZero() {
			problems = append(problems, fmt.Sprintf("%s transaction %s has no date", side, tx.ID))
		}
		if !tx.Type.IsValid() {
			problems = append(problems, fmt.Sprintf("%s transaction %s has invalid type %q", side, tx.ID, tx.Type))
		}
	}
	return problems
}
