package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// selectLoan derives current_installment from the manual counter plus the
// transactions linked to the loan under the loans category.
const selectLoan = `
	SELECT l.id, l.name, l.entity, l.original_amount, l.current_debt, l.annual_rate, l.monthly_payment,
		l.total_installments, l.base_installments_paid,
		l.base_installments_paid + (
			SELECT COUNT(*)
			FROM transactions t
			JOIN categories c ON c.id = t.category_id
			WHERE t.loan_id = l.id AND c.name = '` + category.SystemLoans + `'
		) AS current_installment,
		l.payment_frequency, l.payment_day, l.start_date, l.end_date, l.status, l.currency,
		COALESCE(l.notes, ''), l.created_at, l.updated_at
	FROM loans l`

func scanLoan(s scanner) (*loan.Loan, error) {
	var l loan.Loan

	var freq, status, currency string

	var paymentDay sql.NullInt32

	var endDate sql.NullTime

	if err := s.Scan(
		&l.ID, &l.Name, &l.Entity, &l.OriginalAmount, &l.CurrentDebt, &l.AnnualRate, &l.MonthlyPayment,
		&l.TotalInstallments, &l.BaseInstallmentsPaid, &l.CurrentInstallment,
		&freq, &paymentDay, &l.StartDate, &endDate, &status, &currency,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	l.PaymentFrequency = loan.Frequency(freq)
	l.Status = loan.Status(status)
	l.Currency = money.Currency(currency)

	if paymentDay.Valid {
		l.PaymentDay = new(int(paymentDay.Int32))
	}

	if endDate.Valid {
		l.EndDate = new(endDate.Time)
	}

	return &l, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (
			name, entity, original_amount, current_debt, annual_rate, monthly_payment, total_installments,
			base_installments_paid, payment_frequency, payment_day, start_date, end_date, status, currency, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''))
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		l.Name, l.Entity, l.OriginalAmount, l.CurrentDebt, l.AnnualRate, l.MonthlyPayment, l.TotalInstallments,
		l.BaseInstallmentsPaid, l.PaymentFrequency, l.PaymentDay, l.StartDate, l.EndDate, l.Status, l.Currency, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, id int64) (*loan.Loan, error) {
	l, err := scanLoan(s.db.QueryRowContext(ctx, selectLoan+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET name = $1, entity = $2, original_amount = $3, current_debt = $4, annual_rate = $5,
			monthly_payment = $6, total_installments = $7, base_installments_paid = $8,
			payment_frequency = $9, payment_day = $10, start_date = $11, end_date = $12,
			status = $13, currency = $14, notes = NULLIF($15, ''), updated_at = NOW()
		WHERE id = $16
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query,
		l.Name, l.Entity, l.OriginalAmount, l.CurrentDebt, l.AnnualRate, l.MonthlyPayment, l.TotalInstallments,
		l.BaseInstallmentsPaid, l.PaymentFrequency, l.PaymentDay, l.StartDate, l.EndDate, l.Status, l.Currency,
		l.Notes, l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return loan.ErrNotFound
		}

		return fmt.Errorf("updating loan: %w", err)
	}

	return nil
}

func (s *Store) DeleteLoan(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return loan.ErrInUse
		}

		return fmt.Errorf("deleting loan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting loan: %w", err)
	}

	if n == 0 {
		return loan.ErrNotFound
	}

	return nil
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	query := selectLoan

	var args []any

	if filter.Status != nil {
		query += ` WHERE l.status = $1`

		args = append(args, *filter.Status)
	}

	query += ` ORDER BY l.start_date, l.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var out []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loan rows: %w", err)
	}

	return out, nil
}

const selectPayment = `
	SELECT id, loan_id, payment_date, amount, principal, interest, remaining_balance,
		installment_number, transaction_id, COALESCE(notes, ''), created_at
	FROM loan_payments`

func scanPayment(s scanner) (*loan.Payment, error) {
	var p loan.Payment

	var txID sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.LoanID, &p.PaymentDate, &p.Amount, &p.Principal, &p.Interest, &p.RemainingBalance,
		&p.InstallmentNumber, &txID, &p.Notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	if txID.Valid {
		p.TransactionID = new(txID.Int64)
	}

	return &p, nil
}

func (s *Store) ListPayments(ctx context.Context, loanID int64) ([]*loan.Payment, error) {
	rows, err := s.db.QueryContext(ctx, selectPayment+` WHERE loan_id = $1 ORDER BY payment_date, id`, loanID)
	if err != nil {
		return nil, fmt.Errorf("listing loan payments: %w", err)
	}
	defer rows.Close()

	var out []*loan.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan payment: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loan payment rows: %w", err)
	}

	return out, nil
}

type paymentTx struct {
	tx   *sql.Tx
	loan *loan.Loan
}

// BeginPayment opens a transaction holding a row lock on the loan.
func (s *Store) BeginPayment(ctx context.Context, loanID int64) (loan.PaymentTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	l, err := scanLoan(dbTx.QueryRowContext(ctx, selectLoan+` WHERE l.id = $1 FOR UPDATE OF l`, loanID))
	if err != nil {
		dbTx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("locking loan: %w", err)
	}

	return &paymentTx{tx: dbTx, loan: l}, nil
}

func (ptx *paymentTx) Loan() *loan.Loan { return ptx.loan }
func (ptx *paymentTx) Commit() error    { return ptx.tx.Commit() }
func (ptx *paymentTx) Rollback() error  { return ptx.tx.Rollback() }

func (ptx *paymentTx) CountPayments(ctx context.Context) (int, error) {
	var n int
	if err := ptx.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM loan_payments WHERE loan_id = $1`, ptx.loan.ID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting loan payments: %w", err)
	}

	return n, nil
}

func (ptx *paymentTx) CreatePayment(ctx context.Context, p *loan.Payment) error {
	query := `
		INSERT INTO loan_payments (
			loan_id, payment_date, amount, principal, interest, remaining_balance,
			installment_number, transaction_id, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING id, created_at`

	err := ptx.tx.QueryRowContext(ctx, query,
		ptx.loan.ID, p.PaymentDate, p.Amount, p.Principal, p.Interest, p.RemainingBalance,
		p.InstallmentNumber, p.TransactionID, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating loan payment: %w", err)
	}

	p.LoanID = ptx.loan.ID

	return nil
}

func (ptx *paymentTx) DeletePayment(ctx context.Context, paymentID int64) (*loan.Payment, error) {
	p, err := scanPayment(ptx.tx.QueryRowContext(ctx,
		`DELETE FROM loan_payments WHERE id = $1 AND loan_id = $2
		RETURNING id, loan_id, payment_date, amount, principal, interest, remaining_balance,
			installment_number, transaction_id, COALESCE(notes, ''), created_at`,
		paymentID, ptx.loan.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("deleting loan payment: %w", err)
	}

	return p, nil
}

func (ptx *paymentTx) TransactionLoan(ctx context.Context, transactionID int64) (*int64, error) {
	var loanID sql.NullInt64

	err := ptx.tx.QueryRowContext(ctx,
		`SELECT loan_id FROM transactions WHERE id = $1 FOR UPDATE`, transactionID,
	).Scan(&loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.InvalidField("transaction_id", "does not exist")
		}

		return nil, fmt.Errorf("reading transaction loan: %w", err)
	}

	if !loanID.Valid {
		return nil, nil
	}

	return &loanID.Int64, nil
}

func (ptx *paymentTx) UpdateDebt(ctx context.Context, debt decimal.Decimal, status loan.Status) error {
	if _, err := ptx.tx.ExecContext(ctx,
		`UPDATE loans SET current_debt = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		debt, status, ptx.loan.ID,
	); err != nil {
		return fmt.Errorf("updating loan debt: %w", err)
	}

	ptx.loan.CurrentDebt = debt
	ptx.loan.Status = status

	return nil
}
