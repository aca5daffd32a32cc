package transaction

import (
	"context"
	"fmt"
	"time"
)

type ImportResult struct {
	Imported  []*Transaction
	New       []*Transaction
	Conflicts []Conflict
}

type Conflict struct {
	Incoming *Transaction
	Existing *Transaction
}

type dupKey struct {
	Date        string
	AccountID   int64
	Amount      string
	Kind        Kind
	Description string
}

func keyOf(t *Transaction) dupKey {
	return dupKey{
		Date:        t.Date.Format(time.DateOnly),
		AccountID:   t.AccountID,
		Amount:      t.Amount.StringFixed(2),
		Kind:        t.Kind,
		Description: t.Description,
	}
}

// ImportBatch validates every row and stores them all, unless some row matches
// an existing transaction on date, account, amount, kind and description. In
// that case nothing is stored and the conflicts are returned for review.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	txs, err := s.buildBatch(ctx, params)
	if err != nil || len(txs) == 0 {
		return &ImportResult{}, err
	}

	minDate, maxDate := dateRange(txs)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d)] = d
	}

	var fresh []*Transaction

	var conflicts []Conflict

	for _, t := range txs {
		if existing, found := lookup[keyOf(t)]; found {
			conflicts = append(conflicts, Conflict{Incoming: t, Existing: existing})
			continue
		}

		fresh = append(fresh, t)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: fresh, Conflicts: conflicts}, nil
	}

	if err := itx.CreateTransactions(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: fresh}, nil
}

// CreateBatch stores every row without the duplicate check.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	txs, err := s.buildBatch(ctx, params)
	if err != nil || len(txs) == 0 {
		return nil, err
	}

	minDate, maxDate := dateRange(txs)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func (s *Service) buildBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	txs := make([]*Transaction, 0, len(params))

	for i, p := range params {
		if p.LoanID != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrImportLoan)
		}

		t, err := s.build(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs = append(txs, t)
	}

	return txs, nil
}

func dateRange(txs []*Transaction) (time.Time, time.Time) {
	minDate := txs[0].Date
	maxDate := txs[0].Date

	for _, t := range txs[1:] {
		if t.Date.Before(minDate) {
			minDate = t.Date
		}

		if t.Date.After(maxDate) {
			maxDate = t.Date
		}
	}

	return minDate, maxDate
}
