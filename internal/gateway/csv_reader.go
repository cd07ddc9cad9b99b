package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"bank-reconciliation/internal/domain"
)

// CSVTransactionRepository implements the TransactionRepository interface for
// CSV files. Both feeds share one layout:
//
//	id,date,description,amount,type[,category[,reference]]
//
// The date column accepts YYYY-MM-DD or RFC3339. Category and reference are
// optional trailing columns.
type CSVTransactionRepository struct{}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository() *CSVTransactionRepository {
	return &CSVTransactionRepository{}
}

// GetBankTransactions reads and parses one or more bank statement CSV files.
// Each transaction is tagged with the file it came from, so unmatched entries
// in the report can be traced back to their statement.
func (r *CSVTransactionRepository) GetBankTransactions(ctx context.Context, paths []string) ([]domain.Transaction, error) {
	var allTransactions []domain.Transaction
	for _, path := range paths {
		transactions, err := r.readFeed(path)
		if err != nil {
			return nil, err
		}
		for i := range transactions {
			if transactions[i].Metadata == nil {
				transactions[i].Metadata = make(map[string]string)
			}
			transactions[i].Metadata["source"] = filepath.Base(path)
		}
		allTransactions = append(allTransactions, transactions...)
	}
	return allTransactions, nil
}

// GetBookTransactions reads and parses the internal book ledger CSV feed.
func (r *CSVTransactionRepository) GetBookTransactions(ctx context.Context, path string) ([]domain.Transaction, error) {
	return r.readFeed(path)
}

func (r *CSVTransactionRepository) readFeed(path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var transactions []domain.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("record in %s has %d fields, want at least 5", path, len(record))
		}

		date, err := parseDate(record[1])
		if err != nil {
			return nil, fmt.Errorf("could not parse date '%s': %w", record[1], err)
		}

		amount, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("could not parse amount '%s': %w", record[3], err)
		}

		tx := domain.Transaction{
			ID:          record[0],
			Date:        date,
			Description: record[2],
			Amount:      amount,
			Type:        domain.TransactionType(record[4]),
		}
		if len(record) > 5 {
			tx.Category = record[5]
		}
		if len(record) > 6 {
			tx.Reference = record[6]
		}

		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
