package usecase

import (
	"context"

	"bank-reconciliation/internal/domain"
)

// TransactionRepository defines the interface for fetching the two
// transaction feeds to reconcile. The bank side accepts multiple statement
// files, since one period is often covered by several exports. The usecase
// layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TransactionRepository
type TransactionRepository interface {
	GetBankTransactions(ctx context.Context, paths []string) ([]domain.Transaction, error)
	GetBookTransactions(ctx context.Context, path string) ([]domain.Transaction, error)
}
