package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bank-reconciliation/internal/domain"
	"bank-reconciliation/internal/logger"
	"bank-reconciliation/internal/matcher"
)

// ReconciliationData is the payload for a single reconciliation run.
// Settings is optional; nil means all defaults.
type ReconciliationData struct {
	Account          domain.AccountInfo
	Period           domain.Period
	BankTransactions []domain.Transaction
	BookTransactions []domain.Transaction
	Settings         *domain.Settings
}

// Reconcile is the single entry point to the matching core: it applies the
// settings defaults, runs the two-phase engine and attaches the summary. It
// is total on well-formed input — empty lists simply produce empty match sets
// and a balanced summary — and it never mutates data.
func Reconcile(data ReconciliationData) domain.MatchResults {
	settings := domain.DefaultSettings()
	if data.Settings != nil {
		settings = data.Settings.WithDefaults()
	}

	engine := matcher.NewEngine(settings)
	results := engine.Match(data.BankTransactions, data.BookTransactions)
	results.Summary = matcher.Summarize(results.Matched, results.UnmatchedBank, results.UnmatchedBook)
	return results
}

// RunRequest describes a full CLI-driven run: where to load the feeds from
// plus the account and period context for the report.
type RunRequest struct {
	Account   domain.AccountInfo
	Period    domain.Period
	BankPaths []string
	BookPath  string
	Settings  *domain.Settings
}

// ReconciliationUseCase wires feed loading, input validation and matching.
type ReconciliationUseCase struct {
	repo TransactionRepository
	log  zerolog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo TransactionRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		repo: repo,
		log:  logger.WithComponent("reconciliation"),
	}
}

// Run loads both feeds, restricts them to the statement period, validates the
// payload and produces the full report.
func (uc *ReconciliationUseCase) Run(ctx context.Context, req RunRequest) (*domain.Report, error) {
	bankTxs, err := uc.repo.GetBankTransactions(ctx, req.BankPaths)
	if err != nil {
		return nil, fmt.Errorf("could not get bank transactions: %w", err)
	}

	bookTxs, err := uc.repo.GetBookTransactions(ctx, req.BookPath)
	if err != nil {
		return nil, fmt.Errorf("could not get book transactions: %w", err)
	}

	bankTxs = filterByPeriod(bankTxs, req.Period)
	bookTxs = filterByPeriod(bookTxs, req.Period)

	data := ReconciliationData{
		Account:          req.Account,
		Period:           req.Period,
		BankTransactions: bankTxs,
		BookTransactions: bookTxs,
		Settings:         req.Settings,
	}

	if valid, problems := ValidateInput(data); !valid {
		return nil, fmt.Errorf("invalid reconciliation input: %s", strings.Join(problems, "; "))
	}

	runID := uuid.NewString()
	uc.log.Info().
		Str("run_id", runID).
		Int("bank_transactions", len(bankTxs)).
		Int("book_transactions", len(bookTxs)).
		Msg("starting reconciliation")

	results := Reconcile(data)

	uc.log.Info().
		Str("run_id", runID).
		Int("matched", len(results.Matched)).
		Int("unmatched_bank", len(results.UnmatchedBank)).
		Int("unmatched_book", len(results.UnmatchedBook)).
		Str("status", string(results.Summary.Status)).
		Msg("reconciliation finished")

	return &domain.Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Account:     req.Account,
		Period:      req.Period,
		Results:     results,
	}, nil
}

// filterByPeriod keeps transactions dated inside the statement period. Both
// bounds are inclusive, and the end date covers its whole day so date-only
// and timestamped feeds behave the same.
func filterByPeriod(txs []domain.Transaction, period domain.Period) []domain.Transaction {
	cutoff := period.End.Add(24 * time.Hour)
	var filtered []domain.Transaction
	for _, tx := range txs {
		if tx.Date.Before(period.Start) || !tx.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
