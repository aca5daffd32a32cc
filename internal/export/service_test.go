package export_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/export"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type fakeTransactions struct {
	all     []*transaction.Transaction
	filters []transaction.ListFilter
	err     error
}

func (f *fakeTransactions) List(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}

	start := min(filter.Page.Offset, len(f.all))
	end := min(start+filter.Page.Limit, len(f.all))

	return f.all[start:end], nil
}

func TestService_Export_ImportsBack(t *testing.T) {
	rate := decimal.RequireFromString("3.75")
	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	txs := &fakeTransactions{all: []*transaction.Transaction{
		{
			ID: 1, Date: day, Description: "Almuerzo", Amount: decimal.RequireFromString("35.50"),
			Kind: transaction.KindExpense, CategoryName: "Comida", AccountName: "BCP Soles", Currency: "PEN",
		},
		{
			ID: 2, Date: day, Description: "Freelance", Amount: decimal.NewFromInt(200),
			Kind: transaction.KindIncome, CategoryName: "Extras", AccountName: "Interbank $", Currency: "USD",
			ExchangeRate: &rate, Notes: "factura 12",
		},
	}}

	var buf bytes.Buffer

	n, err := export.NewService(txs).Export(context.Background(), transaction.ListFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, txs.filters, 1)
	require.NotNil(t, txs.filters[0].Flavor)
	assert.Equal(t, transaction.FlavorNormal, *txs.filters[0].Flavor)

	rows, err := importer.XLSX{}.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, day, rows[0].Date)
	assert.Equal(t, "35.5", rows[0].Amount.String())
	assert.Equal(t, transaction.KindExpense, rows[0].Kind)
	assert.Equal(t, "Comida", rows[0].Category)
	assert.Equal(t, "BCP Soles", rows[0].Account)

	assert.Equal(t, transaction.KindIncome, rows[1].Kind)
	assert.Equal(t, "USD", rows[1].Currency)
	require.NotNil(t, rows[1].ExchangeRate)
	assert.Equal(t, "3.75", rows[1].ExchangeRate.String())
	assert.Equal(t, "factura 12", rows[1].Notes)
}

func TestService_Export_Pages(t *testing.T) {
	all := make([]*transaction.Transaction, database.MaxLimit+5)
	for i := range all {
		all[i] = &transaction.Transaction{
			ID: int64(i + 1), Date: time.Now(), Description: "x", Amount: decimal.NewFromInt(1),
			Kind: transaction.KindExpense, Currency: "PEN",
		}
	}

	txs := &fakeTransactions{all: all}

	n, err := export.NewService(txs).Export(context.Background(), transaction.ListFilter{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, len(all), n)

	require.Len(t, txs.filters, 2)
	assert.Equal(t, database.MaxLimit, txs.filters[1].Page.Offset)
}

func TestService_Export_ListFails(t *testing.T) {
	txs := &fakeTransactions{err: errors.New("connection reset")}

	_, err := export.NewService(txs).Export(context.Background(), transaction.ListFilter{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list transactions")
}
