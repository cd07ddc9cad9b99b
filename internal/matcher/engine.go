package matcher

import "bank-reconciliation/internal/domain"

// Engine runs the two-phase matching pass over a bank statement feed and a
// book ledger. It is stateless between calls and never mutates the caller's
// slices: claimed transactions are tracked with index markers, and matched
// pairs carry copies of the paired records with their match markers set.
type Engine struct {
	settings domain.Settings
}

// NewEngine creates an engine with the given settings; nil-valued settings
// fields fall back to their defaults.
func NewEngine(settings domain.Settings) *Engine {
	return &Engine{settings: settings.WithDefaults()}
}

// Match pairs bank transactions against book transactions.
//
// Phase 1 (when autoMatchExact) claims pairs agreeing exactly on amount,
// timestamp and reference, where two absent references count as agreeing.
// Phase 2 (when fuzzyMatching) greedily claims, per remaining bank
// transaction, the highest-confidence remaining book candidate at or above
// the fuzzy threshold.
//
// Both phases walk the bank side from the end toward the start and scan the
// book side in forward order; on equal confidence the earlier book
// transaction keeps the match. The traversal order is part of the behavioral
// contract: callers comparing runs rely on its tie-breaks.
func (e *Engine) Match(bank, book []domain.Transaction) domain.MatchResults {
	claimedBank := make([]bool, len(bank))
	claimedBook := make([]bool, len(book))
	matched := make([]domain.MatchedTransaction, 0)

	if *e.settings.AutoMatchExact {
		for i := len(bank) - 1; i >= 0; i-- {
			for j := range book {
				if claimedBook[j] {
					continue
				}
				if isExactMatch(bank[i], book[j]) {
					matched = append(matched, newMatch(bank[i], book[j], 1.0, domain.MethodExact))
					claimedBank[i] = true
					claimedBook[j] = true
					break
				}
			}
		}
	}

	if *e.settings.FuzzyMatching {
		threshold := *e.settings.FuzzyThreshold
		for i := len(bank) - 1; i >= 0; i-- {
			if claimedBank[i] {
				continue
			}

			best := -1
			bestScore := 0.0
			for j := range book {
				if claimedBook[j] {
					continue
				}
				score := Confidence(bank[i], book[j], e.settings)
				// Strict improvement only: the first-found best wins ties.
				if score >= threshold && score > bestScore {
					best = j
					bestScore = score
				}
			}

			if best >= 0 {
				matched = append(matched, newMatch(bank[i], book[best], bestScore, domain.MethodFuzzy))
				claimedBank[i] = true
				claimedBook[best] = true
			}
		}
	}

	return domain.MatchResults{
		Matched:       matched,
		UnmatchedBank: unclaimed(bank, claimedBank),
		UnmatchedBook: unclaimed(book, claimedBook),
	}
}

// isExactMatch reports whether the pair agrees exactly on amount, timestamp
// and reference. Two empty references count as agreeing, which makes phase 1
// sensitive on feeds that omit references; the forward book scan then means
// first occurrence wins.
func isExactMatch(bank, book domain.Transaction) bool {
	return bank.Amount.Equal(book.Amount) &&
		bank.Date.Equal(book.Date) &&
		bank.Reference == book.Reference
}

// newMatch builds the output pair. The parameters are copies already, so
// setting the match markers here leaves the input slices untouched.
func newMatch(bank, book domain.Transaction, confidence float64, method domain.MatchMethod) domain.MatchedTransaction {
	bank.Matched = true
	bank.MatchedWith = book.ID
	book.Matched = true
	book.MatchedWith = bank.ID
	return domain.MatchedTransaction{
		BankTransaction: bank,
		BookTransaction: book,
		Confidence:      confidence,
		Method:          method,
	}
}

func unclaimed(txs []domain.Transaction, claimed []bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for i, tx := range txs {
		if !claimed[i] {
			out = append(out, tx)
		}
	}
	return out
}
