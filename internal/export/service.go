// Package export writes transactions to an .xlsx workbook laid out like the
// import template, so an exported file can be imported back.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

const sheet = "Movimientos"

type Transactions interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service handles the export of transactions.
type Service struct {
	transactions Transactions
}

func NewService(transactions Transactions) *Service {
	return &Service{transactions: transactions}
}

// Export writes every transaction matching filter in listing order and
// returns how many rows were written. The filter's page is ignored and
// transfers are left out unless the filter asks for them.
func (s *Service) Export(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	if filter.Flavor == nil {
		filter.Flavor = new(transaction.FlavorNormal)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return 0, fmt.Errorf("open stream writer: %w", err)
	}

	cols := importer.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}

	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	n := 0
	filter.Page = database.Page{Limit: database.MaxLimit}

	for {
		txs, err := s.transactions.List(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("list transactions: %w", err)
		}

		for _, tx := range txs {
			cell, err := excelize.CoordinatesToCellName(1, n+2)
			if err != nil {
				return 0, fmt.Errorf("cell name: %w", err)
			}

			if err := sw.SetRow(cell, row(tx)); err != nil {
				return 0, fmt.Errorf("write transaction %d: %w", tx.ID, err)
			}

			n++
		}

		if len(txs) < filter.Page.Limit {
			break
		}

		filter.Page.Offset += len(txs)
	}

	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("flush rows: %w", err)
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}

	return n, nil
}

func row(tx *transaction.Transaction) []any {
	amount, _ := tx.Amount.Float64()
	if tx.Kind == transaction.KindExpense {
		amount = -amount
	}

	rate := any("")
	if tx.ExchangeRate != nil {
		rate, _ = tx.ExchangeRate.Float64()
	}

	return []any{
		tx.Date.Format("02/01/2006"),
		tx.Description,
		amount,
		kindLabel(tx.Kind),
		tx.CategoryName,
		tx.AccountName,
		string(tx.Currency),
		rate,
		tx.Notes,
	}
}

func kindLabel(k transaction.Kind) string {
	if k == transaction.KindIncome {
		return "Ingreso"
	}

	return "Gasto"
}
