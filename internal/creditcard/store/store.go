package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
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

const cardColumns = `id, name, bank, card_type, COALESCE(last_four, ''), credit_limit, current_balance,
	available_credit, revolving_debt, payment_due_day, statement_close_day, revolving_interest_rate,
	is_active, created_at, updated_at`

func scanCard(s scanner) (*creditcard.Card, error) {
	var c creditcard.Card

	if err := s.Scan(
		&c.ID, &c.Name, &c.Bank, &c.CardType, &c.LastFour, &c.CreditLimit, &c.CurrentBalance,
		&c.AvailableCredit, &c.RevolvingDebt, &c.PaymentDueDay, &c.StatementCloseDay, &c.RevolvingInterestRate,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

const installmentColumns = `id, card_id, concept, original_amount, purchase_date, current_installment,
	total_installments, monthly_payment, monthly_principal, monthly_interest, interest_rate,
	remaining_capital, is_active, completed_at, created_at, updated_at`

func scanInstallment(s scanner) (*creditcard.Installment, error) {
	var i creditcard.Installment

	var completedAt sql.NullTime

	if err := s.Scan(
		&i.ID, &i.CardID, &i.Concept, &i.OriginalAmount, &i.PurchaseDate, &i.CurrentInstallment,
		&i.TotalInstallments, &i.MonthlyPayment, &i.MonthlyPrincipal, &i.MonthlyInterest, &i.InterestRate,
		&i.RemainingCapital, &i.IsActive, &completedAt, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		i.CompletedAt = new(completedAt.Time)
	}

	return &i, nil
}

const statementColumns = `id, card_id, statement_date, due_date, previous_balance, new_charges,
	payments_received, interest_charges, fees, new_balance, minimum_payment, total_payment,
	revolving_balance, installments_balance, created_at`

func scanStatement(s scanner) (*creditcard.Statement, error) {
	var st creditcard.Statement

	if err := s.Scan(
		&st.ID, &st.CardID, &st.StatementDate, &st.DueDate, &st.PreviousBalance, &st.NewCharges,
		&st.PaymentsReceived, &st.InterestCharges, &st.Fees, &st.NewBalance, &st.MinimumPayment, &st.TotalPayment,
		&st.RevolvingBalance, &st.InstallmentsBalance, &st.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &st, nil
}

// activeCapital is the outstanding installment capital of card c.
const activeCapital = `COALESCE((
	SELECT SUM(i.remaining_capital) FROM credit_card_installments i
	WHERE i.card_id = c.id AND i.is_active
), 0)`

func (s *Store) CreateCard(ctx context.Context, c *creditcard.Card) error {
	query := `
		INSERT INTO credit_cards (
			name, bank, card_type, last_four, credit_limit, current_balance, available_credit,
			revolving_debt, payment_due_day, statement_close_day, revolving_interest_rate, is_active
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $5 - $6, $6, $7, $8, $9, $10)
		RETURNING id, current_balance, available_credit, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Bank, c.CardType, c.LastFour, c.CreditLimit, c.RevolvingDebt,
		c.PaymentDueDay, c.StatementCloseDay, c.RevolvingInterestRate, c.IsActive,
	).Scan(&c.ID, &c.CurrentBalance, &c.AvailableCredit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating credit card: %w", err)
	}

	return nil
}

func (s *Store) GetCard(ctx context.Context, id int64) (*creditcard.Card, error) {
	return getCard(ctx, s.db, id, "")
}

func getCard(ctx context.Context, q database.Querier, id int64, lock string) (*creditcard.Card, error) {
	c, err := scanCard(q.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM credit_cards WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, creditcard.ErrNotFound
		}

		return nil, fmt.Errorf("getting credit card: %w", err)
	}

	return c, nil
}

// UpdateCard saves the editable fields and recomputes the balances in one statement.
func (s *Store) UpdateCard(ctx context.Context, c *creditcard.Card) error {
	query := `
		UPDATE credit_cards c
		SET name = $1, bank = $2, card_type = $3, last_four = NULLIF($4, ''), credit_limit = $5,
			revolving_debt = $6, payment_due_day = $7, statement_close_day = $8,
			revolving_interest_rate = $9, is_active = $10,
			current_balance = $6 + ` + activeCapital + `,
			available_credit = $5 - ($6 + ` + activeCapital + `),
			updated_at = NOW()
		WHERE c.id = $11
		RETURNING ` + cardColumns

	updated, err := scanCard(s.db.QueryRowContext(ctx, query,
		c.Name, c.Bank, c.CardType, c.LastFour, c.CreditLimit, c.RevolvingDebt,
		c.PaymentDueDay, c.StatementCloseDay, c.RevolvingInterestRate, c.IsActive, c.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return creditcard.ErrNotFound
		}

		return fmt.Errorf("updating credit card: %w", err)
	}

	*c = *updated

	return nil
}

func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting credit card: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting credit card: %w", err)
	}

	if n == 0 {
		return creditcard.ErrNotFound
	}

	return nil
}

func (s *Store) ListCards(ctx context.Context, filter creditcard.ListFilter) ([]*creditcard.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM credit_cards`

	var args []any

	if filter.Active != nil {
		query += ` WHERE is_active = $1`

		args = append(args, *filter.Active)
	}

	query += ` ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards: %w", err)
	}
	defer rows.Close()

	var out []*creditcard.Card

	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credit card: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit card rows: %w", err)
	}

	return out, nil
}

func (s *Store) ListInstallments(ctx context.Context, filter creditcard.InstallmentFilter) ([]*creditcard.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM credit_card_installments WHERE TRUE`

	var args []any

	if filter.CardID != nil {
		args = append(args, *filter.CardID)
		query += fmt.Sprintf(` AND card_id = $%d`, len(args))
	}

	if filter.ActiveOnly {
		query += ` AND is_active`
	}

	query += ` ORDER BY is_active DESC, purchase_date, id`

	return listInstallments(ctx, s.db, query, args...)
}

func listInstallments(ctx context.Context, q database.Querier, query string, args ...any) ([]*creditcard.Installment, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing installments: %w", err)
	}
	defer rows.Close()

	var out []*creditcard.Installment

	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning installment: %w", err)
		}

		out = append(out, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating installment rows: %w", err)
	}

	return out, nil
}

func (s *Store) ListStatements(ctx context.Context, cardID int64) ([]*creditcard.Statement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statementColumns+` FROM credit_card_statements WHERE card_id = $1 ORDER BY statement_date DESC`,
		cardID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}
	defer rows.Close()

	var out []*creditcard.Statement

	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning statement: %w", err)
		}

		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statement rows: %w", err)
	}

	return out, nil
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (creditcard.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning credit card tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) LockCard(ctx context.Context, id int64) (*creditcard.Card, error) {
	return getCard(ctx, t.tx, id, ` FOR UPDATE`)
}

func (t *tx) GetInstallment(ctx context.Context, id int64) (*creditcard.Installment, error) {
	i, err := scanInstallment(t.tx.QueryRowContext(ctx,
		`SELECT `+installmentColumns+` FROM credit_card_installments WHERE id = $1 FOR UPDATE`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, creditcard.ErrInstallmentNotFound
		}

		return nil, fmt.Errorf("getting installment: %w", err)
	}

	return i, nil
}

func (t *tx) CreateInstallment(ctx context.Context, i *creditcard.Installment) error {
	query := `
		INSERT INTO credit_card_installments (
			card_id, concept, original_amount, purchase_date, current_installment, total_installments,
			monthly_payment, monthly_principal, monthly_interest, interest_rate, remaining_capital, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		i.CardID, i.Concept, i.OriginalAmount, i.PurchaseDate, i.CurrentInstallment, i.TotalInstallments,
		i.MonthlyPayment, i.MonthlyPrincipal, i.MonthlyInterest, i.InterestRate, i.RemainingCapital, i.IsActive,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating installment: %w", err)
	}

	return nil
}

func (t *tx) UpdateInstallment(ctx context.Context, i *creditcard.Installment) error {
	query := `
		UPDATE credit_card_installments
		SET concept = $1, original_amount = $2, purchase_date = $3, current_installment = $4,
			total_installments = $5, monthly_payment = $6, monthly_principal = $7, monthly_interest = $8,
			interest_rate = $9, remaining_capital = $10, is_active = $11, completed_at = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		i.Concept, i.OriginalAmount, i.PurchaseDate, i.CurrentInstallment,
		i.TotalInstallments, i.MonthlyPayment, i.MonthlyPrincipal, i.MonthlyInterest,
		i.InterestRate, i.RemainingCapital, i.IsActive, i.CompletedAt, i.ID,
	).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return creditcard.ErrInstallmentNotFound
		}

		return fmt.Errorf("updating installment: %w", err)
	}

	return nil
}

func (t *tx) DeleteInstallment(ctx context.Context, id int64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM credit_card_installments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting installment: %w", err)
	}

	return nil
}

func (t *tx) ActiveInstallments(ctx context.Context, cardID int64) ([]*creditcard.Installment, error) {
	return listInstallments(ctx, t.tx,
		`SELECT `+installmentColumns+` FROM credit_card_installments WHERE card_id = $1 AND is_active ORDER BY id`,
		cardID,
	)
}

func (t *tx) LatestStatementDate(ctx context.Context, cardID int64) (*time.Time, error) {
	var latest sql.NullTime
	if err := t.tx.QueryRowContext(ctx,
		`SELECT MAX(statement_date) FROM credit_card_statements WHERE card_id = $1`, cardID,
	).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest statement date: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	return new(latest.Time), nil
}

func (t *tx) CreateStatement(ctx context.Context, st *creditcard.Statement) error {
	query := `
		INSERT INTO credit_card_statements (
			card_id, statement_date, due_date, previous_balance, new_charges, payments_received,
			interest_charges, fees, new_balance, minimum_payment, total_payment,
			revolving_balance, installments_balance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := t.tx.QueryRowContext(ctx, query,
		st.CardID, st.StatementDate, st.DueDate, st.PreviousBalance, st.NewCharges, st.PaymentsReceived,
		st.InterestCharges, st.Fees, st.NewBalance, st.MinimumPayment, st.TotalPayment,
		st.RevolvingBalance, st.InstallmentsBalance,
	).Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return creditcard.ErrStatementExists
		}

		return fmt.Errorf("creating statement: %w", err)
	}

	return nil
}

func (t *tx) SetRevolvingDebt(ctx context.Context, cardID int64, amount decimal.Decimal) error {
	if _, err := t.tx.ExecContext(ctx,
		`UPDATE credit_cards SET revolving_debt = $1, updated_at = NOW() WHERE id = $2`, amount, cardID,
	); err != nil {
		return fmt.Errorf("setting revolving debt: %w", err)
	}

	return nil
}

// Resync sets current_balance to the revolving debt plus the active
// installments' capital, and available_credit to what is left of the limit.
func (t *tx) Resync(ctx context.Context, cardID int64) (*creditcard.Card, error) {
	query := `
		UPDATE credit_cards c
		SET current_balance = c.revolving_debt + ` + activeCapital + `,
			available_credit = c.credit_limit - (c.revolving_debt + ` + activeCapital + `),
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + cardColumns

	c, err := scanCard(t.tx.QueryRowContext(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, creditcard.ErrNotFound
		}

		return nil, fmt.Errorf("resyncing credit card: %w", err)
	}

	return c, nil
}
