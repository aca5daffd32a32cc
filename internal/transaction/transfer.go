package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

type TransferParams struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
}

// CreateTransfer posts a withdrawal on the source account and a deposit on the
// destination, both completed, sharing a group id and pointing at each other.
func (s *Service) CreateTransfer(ctx context.Context, params TransferParams) (*Transfer, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, ErrSameAccount
	}

	amount := params.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperr.InvalidField("amount", "must be positive")
	}

	if params.Date.IsZero() {
		return nil, apperr.InvalidField("date", "is required")
	}

	from, err := s.accounts.Get(ctx, params.FromAccountID)
	if err != nil {
		return nil, notFoundField(err, "from_account_id")
	}

	to, err := s.accounts.Get(ctx, params.ToAccountID)
	if err != nil {
		return nil, notFoundField(err, "to_account_id")
	}

	if from.Currency != to.Currency {
		return nil, apperr.InvalidField("to_account_id", "accounts must share a currency")
	}

	cat, err := s.categories.EnsureSystem(ctx, category.SystemTransfers, category.KindExpense)
	if err != nil {
		return nil, fmt.Errorf("transfer category: %w", err)
	}

	group := uuid.New()
	date := truncate(params.Date)
	notes := strings.TrimSpace(params.Description)

	leg := func(accountID int64, accountName string, kind Kind, desc string) *Transaction {
		return &Transaction{
			Date:          date,
			CategoryID:    cat.ID,
			CategoryName:  cat.Name,
			AccountID:     accountID,
			AccountName:   accountName,
			Amount:        amount,
			Currency:      from.Currency,
			Kind:          kind,
			Status:        StatusCompleted,
			Flavor:        FlavorTransfer,
			TransferGroup: &group,
			Description:   desc,
			Notes:         notes,
		}
	}

	out := leg(from.ID, from.Name, KindExpense, "Transferencia a "+to.Name)
	in := leg(to.ID, to.Name, KindIncome, "Transferencia desde "+from.Name)

	if err := s.convert(ctx, out); err != nil {
		return nil, err
	}

	in.ExchangeRate = out.ExchangeRate
	in.AmountInBase = out.AmountInBase
	in.Warnings = out.Warnings

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	for _, t := range []*Transaction{out, in} {
		if err := tx.CreateTransaction(ctx, t); err != nil {
			return nil, fmt.Errorf("create transfer leg: %w", err)
		}
	}

	if err := tx.PairTransactions(ctx, out.ID, in.ID); err != nil {
		return nil, fmt.Errorf("pair transfer legs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	out.PairedTransactionID = &in.ID
	in.PairedTransactionID = &out.ID

	return &Transfer{Group: group, Date: date, Amount: amount, Description: notes, From: out, To: in}, nil
}

// DeleteTransfer removes both legs of a transfer and returns how many rows went.
func (s *Service) DeleteTransfer(ctx context.Context, group uuid.UUID) (int, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transfer delete: %w", err)
	}
	defer tx.Rollback()

	n, err := tx.DeleteTransferGroup(ctx, group)
	if err != nil {
		return 0, fmt.Errorf("delete transfer: %w", err)
	}

	switch {
	case n == 0:
		return 0, ErrTransferNotFound
	case n != 2:
		return 0, apperr.Internal(fmt.Sprintf("transfer %s has %d legs", group, n), nil)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transfer delete: %w", err)
	}

	return n, nil
}

func (s *Service) GetTransfer(ctx context.Context, group uuid.UUID) (*Transfer, error) {
	legs, err := s.repo.GetTransferLegs(ctx, group)
	if err != nil {
		return nil, err
	}

	transfers := groupTransfers(legs)
	if len(transfers) == 0 {
		return nil, ErrTransferNotFound
	}

	return transfers[0], nil
}

// ListTransfers returns transfers, newest first, within the date range of filter.
func (s *Service) ListTransfers(ctx context.Context, filter ListFilter) ([]*Transfer, error) {
	filter.Flavor = new(FlavorTransfer)
	filter.Page = database.Page{Offset: filter.Page.Offset * 2, Limit: filter.Page.Normalize().Limit * 2}

	legs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	transfers := groupTransfers(legs)
	slices.SortStableFunc(transfers, func(a, b *Transfer) int {
		return b.Date.Compare(a.Date)
	})

	return transfers, nil
}

// groupTransfers pairs legs by group, keeping the order groups first appear in.
// Groups missing a leg are dropped.
func groupTransfers(legs []*Transaction) []*Transfer {
	byGroup := make(map[uuid.UUID]*Transfer)

	var order []uuid.UUID

	for _, t := range legs {
		if t.TransferGroup == nil {
			continue
		}

		tr, ok := byGroup[*t.TransferGroup]
		if !ok {
			tr = &Transfer{Group: *t.TransferGroup, Date: t.Date, Amount: t.Amount, Description: t.Notes}
			byGroup[tr.Group] = tr
			order = append(order, tr.Group)
		}

		if t.Kind == KindExpense {
			tr.From = t
		} else {
			tr.To = t
		}
	}

	out := make([]*Transfer, 0, len(order))

	for _, g := range order {
		if tr := byGroup[g]; tr.From != nil && tr.To != nil {
			out = append(out, tr)
		}
	}

	return out
}
