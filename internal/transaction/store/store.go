package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.date, t.category_id, c.name, t.account_id, a.name, t.amount, t.currency, t.exchange_rate,
	t.amount_in_base, t.kind, t.status, t.flavor, t.transfer_group, t.paired_transaction_id, t.loan_id,
	t.description, COALESCE(t.notes, ''), t.created_at, t.updated_at
`

const fromTransactions = `
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	JOIN accounts a ON a.id = t.account_id`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var t transaction.Transaction

	var currency, kind, status, flavor string

	var rate decimal.NullDecimal

	var group uuid.NullUUID

	var paired, loanID sql.NullInt64

	if err := s.Scan(
		&t.ID, &t.Date, &t.CategoryID, &t.CategoryName, &t.AccountID, &t.AccountName, &t.Amount, &currency, &rate,
		&t.AmountInBase, &kind, &status, &flavor, &group, &paired, &loanID,
		&t.Description, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Currency = money.Currency(currency)
	t.Kind = transaction.Kind(kind)
	t.Status = transaction.Status(status)
	t.Flavor = transaction.Flavor(flavor)

	if rate.Valid {
		t.ExchangeRate = new(rate.Decimal)
	}

	if group.Valid {
		t.TransferGroup = new(group.UUID)
	}

	if paired.Valid {
		t.PairedTransactionID = new(paired.Int64)
	}

	if loanID.Valid {
		t.LoanID = new(loanID.Int64)
	}

	return &t, nil
}

func scanTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return getTransaction(ctx, s.db, id, "")
}

func getTransaction(ctx context.Context, q database.Querier, id int64, suffix string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + ` WHERE t.id = $1` + suffix

	t, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return t, nil
}

// where renders filter as a WHERE clause starting at $1.
func where(filter transaction.ListFilter) (string, []any) {
	clause := ` WHERE TRUE`

	var args []any

	argIdx := 1

	add := func(cond string, v any) {
		clause += fmt.Sprintf(" AND "+cond, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.StartDate != nil {
		add("t.date >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add("t.date <= $%d", *filter.EndDate)
	}

	if filter.CategoryID != nil {
		add("t.category_id = $%d", *filter.CategoryID)
	}

	if filter.AccountID != nil {
		add("t.account_id = $%d", *filter.AccountID)
	}

	if filter.LoanID != nil {
		add("t.loan_id = $%d", *filter.LoanID)
	}

	if filter.Status != nil {
		add("t.status = $%d", *filter.Status)
	}

	if filter.Kind != nil {
		add("t.kind = $%d", *filter.Kind)
	}

	if filter.Flavor != nil {
		add("t.flavor = $%d", *filter.Flavor)
	}

	if filter.Search != "" {
		add("(t.description ILIKE '%%' || $%[1]d || '%%' OR t.notes ILIKE '%%' || $%[1]d || '%%')", filter.Search)
	}

	return clause, args
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	clause, args := where(filter)
	page := filter.Page.Normalize()

	query := `SELECT ` + selectTransactionColumns + fromTransactions + clause +
		fmt.Sprintf(" ORDER BY t.date DESC, t.id DESC LIMIT %d OFFSET %d", page.Limit, page.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return scanTransactions(rows)
}

func (s *Store) GetTransferLegs(ctx context.Context, group uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + ` WHERE t.transfer_group = $1 ORDER BY t.id`

	rows, err := s.db.QueryContext(ctx, query, group)
	if err != nil {
		return nil, fmt.Errorf("getting transfer legs: %w", err)
	}

	return scanTransactions(rows)
}

func (s *Store) Summary(ctx context.Context, filter transaction.ListFilter) (*transaction.Summary, error) {
	clause, args := where(filter)

	query := `
		SELECT
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'expense'), 0),
			COUNT(*)
		FROM transactions t` + clause

	var sum transaction.Summary
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&sum.Income, &sum.Expense, &sum.Count); err != nil {
		return nil, fmt.Errorf("summarizing transactions: %w", err)
	}

	sum.Balance = sum.Income.Sub(sum.Expense)

	return &sum, nil
}

const insertTransaction = `
	INSERT INTO transactions (
		date, category_id, account_id, amount, currency, exchange_rate, amount_in_base, kind, status,
		flavor, transfer_group, loan_id, description, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))
	RETURNING id, created_at, updated_at`

func insert(ctx context.Context, q database.Querier, t *transaction.Transaction) error {
	err := q.QueryRowContext(ctx, insertTransaction,
		t.Date, t.CategoryID, t.AccountID, t.Amount, t.Currency, t.ExchangeRate, t.AmountInBase, t.Kind, t.Status,
		t.Flavor, t.TransferGroup, t.LoanID, t.Description, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("creating transaction: %w", errMissingReference)
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

var errMissingReference = apperr.Validation("category, account or loan does not exist")

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (transaction.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return getTransaction(ctx, t.tx, id, ` FOR UPDATE OF t`)
}

func (t *tx) CreateTransaction(ctx context.Context, tr *transaction.Transaction) error {
	return insert(ctx, t.tx, tr)
}

func (t *tx) UpdateTransaction(ctx context.Context, tr *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, category_id = $2, account_id = $3, amount = $4, currency = $5, exchange_rate = $6,
			amount_in_base = $7, kind = $8, status = $9, description = $10, notes = NULLIF($11, ''),
			updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		tr.Date, tr.CategoryID, tr.AccountID, tr.Amount, tr.Currency, tr.ExchangeRate,
		tr.AmountInBase, tr.Kind, tr.Status, tr.Description, tr.Notes, tr.ID,
	).Scan(&tr.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (t *tx) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return requireRow(res, transaction.ErrNotFound)
}

func (t *tx) PairTransactions(ctx context.Context, a, b int64) error {
	query := `
		UPDATE transactions
		SET paired_transaction_id = CASE id WHEN $1 THEN $2::BIGINT ELSE $1::BIGINT END
		WHERE id IN ($1, $2)`

	if _, err := t.tx.ExecContext(ctx, query, a, b); err != nil {
		return fmt.Errorf("pairing transactions: %w", err)
	}

	return nil
}

func (t *tx) DeleteTransferGroup(ctx context.Context, group uuid.UUID) (int, error) {
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE transfer_group = $1 AND flavor = 'transfer'`, group)
	if err != nil {
		return 0, fmt.Errorf("deleting transfer group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting transfer group: %w", err)
	}

	return int(n), nil
}

func (t *tx) SetLoan(ctx context.Context, id int64, loanID *int64) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE transactions SET loan_id = $1, updated_at = NOW() WHERE id = $2`, loanID, id)
	if err != nil {
		return fmt.Errorf("setting transaction loan: %w", err)
	}

	return requireRow(res, transaction.ErrNotFound)
}

func (t *tx) HasLoanPayment(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM loan_payments WHERE transaction_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking loan payments: %w", err)
	}

	return exists, nil
}

func (t *tx) LockLoan(ctx context.Context, loanID int64) (money.Currency, error) {
	var currency string

	err := t.tx.QueryRowContext(ctx, `SELECT currency FROM loans WHERE id = $1 FOR UPDATE`, loanID).Scan(&currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", loan.ErrNotFound
		}

		return "", fmt.Errorf("locking loan: %w", err)
	}

	return money.Currency(currency), nil
}

// AdjustLoanDebt moves current_debt by delta, never below zero, and keeps the
// status in step: settled active loans become paid and reopened paid loans active.
func (t *tx) AdjustLoanDebt(ctx context.Context, loanID int64, delta decimal.Decimal) error {
	query := `
		UPDATE loans
		SET current_debt = GREATEST(current_debt + $1, 0),
			status = CASE
				WHEN status = 'active' AND GREATEST(current_debt + $1, 0) <= 0.01 THEN 'paid'
				WHEN status = 'paid' AND current_debt + $1 > 0.01 THEN 'active'
				ELSE status
			END,
			updated_at = NOW()
		WHERE id = $2`

	res, err := t.tx.ExecContext(ctx, query, delta, loanID)
	if err != nil {
		return fmt.Errorf("adjusting loan debt: %w", err)
	}

	return requireRow(res, loan.ErrNotFound)
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport serializes imports over the same date range with an advisory lock.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns stored transactions in the batch's date range that share
// date, account, amount, kind and description with some incoming row.
func (itx *importTx) FindDuplicates(ctx context.Context, txs []*transaction.Transaction) ([]*transaction.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date        string
		AccountID   int64
		Amount      string
		Kind        transaction.Kind
		Description string
	}

	keyOf := func(t *transaction.Transaction) lookupKey {
		return lookupKey{
			Date:        t.Date.Format(time.DateOnly),
			AccountID:   t.AccountID,
			Amount:      t.Amount.StringFixed(2),
			Kind:        t.Kind,
			Description: t.Description,
		}
	}

	minDate := txs[0].Date
	maxDate := txs[0].Date
	keySet := make(map[lookupKey]struct{}, len(txs))

	for _, t := range txs {
		if t.Date.Before(minDate) {
			minDate = t.Date
		}

		if t.Date.After(maxDate) {
			maxDate = t.Date
		}

		keySet[keyOf(t)] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + fromTransactions + `
		WHERE t.date >= $1 AND t.date <= $2 AND t.flavor = 'normal'
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	existing, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	var duplicates []*transaction.Transaction

	for _, t := range existing {
		if _, found := keySet[keyOf(t)]; found {
			duplicates = append(duplicates, t)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, t := range txs {
		if err := insert(ctx, itx.tx, t); err != nil {
			return err
		}
	}

	return nil
}
