package matcher_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bank-reconciliation/internal/domain"
	"bank-reconciliation/internal/matcher"
)

func tx(id string, date time.Time, amount int64, description, reference string) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Type:        domain.DEBIT,
		Reference:   reference,
	}
}

func TestEngineExactMatch(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{tx("b1", date, 5000, "Invoice Payment", "REF1")}
	book := []domain.Transaction{tx("k1", date, 5000, "Payment for Invoice", "REF1")}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.Empty(t, results.UnmatchedBank)
	assert.Empty(t, results.UnmatchedBook)

	m := results.Matched[0]
	assert.Equal(t, domain.MethodExact, m.Method)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, "b1", m.BankTransaction.ID)
	assert.Equal(t, "k1", m.BookTransaction.ID)
	assert.True(t, m.BankTransaction.Matched)
	assert.Equal(t, "k1", m.BankTransaction.MatchedWith)
	assert.True(t, m.BookTransaction.Matched)
	assert.Equal(t, "b1", m.BookTransaction.MatchedWith)
}

func TestEngineExactMatchTakesPriorityOverFuzzy(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	// The pair would also clear the fuzzy threshold easily, but phase 1
	// must claim it with confidence exactly 1.0.
	bank := []domain.Transaction{tx("b1", date, 1200, "Rent June", "RENT-06")}
	book := []domain.Transaction{tx("k1", date, 1200, "Rent June", "RENT-06")}

	results := matcher.NewEngine(domain.Settings{FuzzyMatching: domain.Bool(true)}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.Equal(t, domain.MethodExact, results.Matched[0].Method)
	assert.Equal(t, 1.0, results.Matched[0].Confidence)
}

func TestEngineBoundaryPairStaysUnmatched(t *testing.T) {
	// Same amount, three days apart, similar descriptions: confidence
	// lands around 0.622, under the default 0.7 threshold, so neither
	// phase may claim the pair.
	bank := []domain.Transaction{
		tx("b1", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), -350, "Office Supplies", ""),
	}
	book := []domain.Transaction{
		tx("k1", time.Date(2023, 6, 18, 0, 0, 0, 0, time.UTC), -350, "Office Supplies Purchase", ""),
	}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Empty(t, results.Matched)
	assert.Len(t, results.UnmatchedBank, 1)
	assert.Len(t, results.UnmatchedBook, 1)
}

func TestEngineNoFuzzyMatchBelowThreshold(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{
		tx("b1", date, 100, "", ""),
		tx("b2", date.AddDate(0, 0, 1), 250, "", ""),
	}
	book := []domain.Transaction{
		tx("k1", date.AddDate(0, 0, 2), 100, "", ""),
		tx("k2", date, 999, "", ""),
	}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	for _, m := range results.Matched {
		assert.GreaterOrEqual(t, m.Confidence, 0.7)
	}
}

func TestEngineFuzzyPicksBestCandidate(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{tx("b1", date, 100, "", "A")}
	book := []domain.Transaction{
		// Same amount two days out, no reference: (0.4+0.1)/0.7 = 0.714.
		tx("k1", date.AddDate(0, 0, 2), 100, "", ""),
		// Same amount and date, mismatched reference: 0.7/0.8 = 0.875.
		tx("k2", date, 100, "", "B"),
	}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	m := results.Matched[0]
	assert.Equal(t, domain.MethodFuzzy, m.Method)
	assert.Equal(t, "k2", m.BookTransaction.ID)
	assert.InDelta(t, 0.875, m.Confidence, 0.0001)
	assert.Len(t, results.UnmatchedBook, 1)
	assert.Equal(t, "k1", results.UnmatchedBook[0].ID)
}

func TestEngineFuzzyTieKeepsFirstBookTransaction(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{tx("b1", date, 100, "", "X")}
	// Both candidates score identically; the earlier index must win.
	book := []domain.Transaction{
		tx("k1", date.AddDate(0, 0, 1), 100, "", ""),
		tx("k2", date.AddDate(0, 0, 1), 100, "", ""),
	}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.Equal(t, "k1", results.Matched[0].BookTransaction.ID)
	assert.Len(t, results.UnmatchedBook, 1)
	assert.Equal(t, "k2", results.UnmatchedBook[0].ID)
}

func TestEngineExactTieBreakOnMissingReferences(t *testing.T) {
	// Two bank transactions agree with the single book transaction on
	// amount and date, and none carry a reference. Phase 1 walks the bank
	// side from the end, so the later bank transaction claims the book
	// entry and the earlier one stays unmatched.
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{
		tx("b1", date, 100, "Card payment", ""),
		tx("b2", date, 100, "Card payment", ""),
	}
	book := []domain.Transaction{tx("k1", date, 100, "Card settlement", "")}

	results := matcher.NewEngine(domain.Settings{FuzzyMatching: domain.Bool(false)}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.Equal(t, domain.MethodExact, results.Matched[0].Method)
	assert.Equal(t, "b2", results.Matched[0].BankTransaction.ID)
	assert.Len(t, results.UnmatchedBank, 1)
	assert.Equal(t, "b1", results.UnmatchedBank[0].ID)
	assert.Empty(t, results.UnmatchedBook)
}

func TestEngineGreedyClaimInReverseBankOrder(t *testing.T) {
	// The book transaction is the best candidate for both bank
	// transactions, but phase 2 walks the bank side in reverse, so the
	// later bank transaction claims it even though the earlier one would
	// have scored higher. This greedy behavior is part of the contract.
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{
		tx("b1", date.AddDate(0, 0, 1), 100, "", ""),
		tx("b2", date.AddDate(0, 0, 2), 100, "", ""),
	}
	book := []domain.Transaction{tx("k1", date, 100, "", "")}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.Equal(t, "b2", results.Matched[0].BankTransaction.ID)
	assert.Len(t, results.UnmatchedBank, 1)
	assert.Equal(t, "b1", results.UnmatchedBank[0].ID)
}

func TestEnginePhasesCanBeDisabled(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("fuzzy disabled leaves near matches unpaired", func(t *testing.T) {
		bank := []domain.Transaction{tx("b1", date, 100, "", "")}
		book := []domain.Transaction{tx("k1", date.AddDate(0, 0, 1), 100, "", "")}

		results := matcher.NewEngine(domain.Settings{FuzzyMatching: domain.Bool(false)}).Match(bank, book)

		assert.Empty(t, results.Matched)
		assert.Len(t, results.UnmatchedBank, 1)
		assert.Len(t, results.UnmatchedBook, 1)
	})

	t.Run("exact disabled routes identical pairs through fuzzy", func(t *testing.T) {
		bank := []domain.Transaction{tx("b1", date, 100, "Rent June", "R1")}
		book := []domain.Transaction{tx("k1", date, 100, "Rent June", "R1")}

		results := matcher.NewEngine(domain.Settings{AutoMatchExact: domain.Bool(false)}).Match(bank, book)

		assert.Len(t, results.Matched, 1)
		assert.Equal(t, domain.MethodFuzzy, results.Matched[0].Method)
		assert.InDelta(t, 1.0, results.Matched[0].Confidence, 0.0001)
	})
}

func TestEnginePartitionInvariant(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{
		tx("b1", date, 5000, "Invoice Payment", "REF1"),
		tx("b2", date.AddDate(0, 0, 1), -350, "Office Supplies", ""),
		tx("b3", date.AddDate(0, 0, 2), 720, "Consulting fee", "C-77"),
		tx("b4", date, 42, "Bank charge", ""),
	}
	book := []domain.Transaction{
		tx("k1", date, 5000, "Invoice Payment", "REF1"),
		tx("k2", date.AddDate(0, 0, 3), 720, "Consulting services", "C-77"),
		tx("k3", date.AddDate(0, 0, 9), -350, "Supplies", ""),
	}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	seenBank := map[string]int{}
	for _, m := range results.Matched {
		seenBank[m.BankTransaction.ID]++
	}
	for _, tx := range results.UnmatchedBank {
		seenBank[tx.ID]++
	}
	assert.Len(t, seenBank, len(bank))
	for id, count := range seenBank {
		assert.Equalf(t, 1, count, "bank transaction %s appears %d times", id, count)
	}

	seenBook := map[string]int{}
	for _, m := range results.Matched {
		seenBook[m.BookTransaction.ID]++
	}
	for _, tx := range results.UnmatchedBook {
		seenBook[tx.ID]++
	}
	assert.Len(t, seenBook, len(book))
	for id, count := range seenBook {
		assert.Equalf(t, 1, count, "book transaction %s appears %d times", id, count)
	}
}

func TestEngineDoesNotMutateInputs(t *testing.T) {
	date := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	bank := []domain.Transaction{tx("b1", date, 100, "Rent", "R1")}
	book := []domain.Transaction{tx("k1", date, 100, "Rent", "R1")}

	results := matcher.NewEngine(domain.Settings{}).Match(bank, book)

	assert.Len(t, results.Matched, 1)
	assert.False(t, bank[0].Matched)
	assert.Empty(t, bank[0].MatchedWith)
	assert.False(t, book[0].Matched)
	assert.Empty(t, book[0].MatchedWith)
}

func TestEngineEmptyInputs(t *testing.T) {
	results := matcher.NewEngine(domain.Settings{}).Match(nil, nil)

	assert.Empty(t, results.Matched)
	assert.Empty(t, results.UnmatchedBank)
	assert.Empty(t, results.UnmatchedBook)
}
