package importer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

var (
	food    = &category.Category{ID: 10, Name: "Comida", Kind: category.KindExpense, IsActive: true}
	salary  = &category.Category{ID: 11, Name: "Sueldo", Kind: category.KindIncome, IsActive: true}
	refunds = &category.Category{ID: 12, Name: "Devoluciones", Kind: category.KindIncome, IsActive: true}
	savings = &category.Category{ID: 13, Name: "Fondo de emergencia", Kind: category.KindSaving, IsActive: true}
	unsort  = &category.Category{ID: 90, Name: category.SystemUnsortedExpense, Kind: category.KindExpense, IsSystem: true}

	bcp       = &account.Account{ID: 2, Name: "BCP Soles", Currency: money.PEN, IsDefault: true, IsActive: true}
	interbank = &account.Account{ID: 3, Name: "Interbank $", Currency: money.USD, IsActive: true}
)

const statement = `Fecha,Descripción,Monto,Categoría,Cuenta
01/06/2025,Sueldo junio,5000,sueldo,
03/06/2025,Almuerzo,-35.50,Comida,interbank $
04/06/2025,Yape sin detalle,-12.00,,
`

type mocks struct {
	cats  *importer.MockCategories
	accts *importer.MockAccounts
	txs   *importer.MockTransactions
}

func newMocks(t *testing.T) mocks {
	ctrl := gomock.NewController(t)

	return mocks{
		cats:  importer.NewMockCategories(ctrl),
		accts: importer.NewMockAccounts(ctrl),
		txs:   importer.NewMockTransactions(ctrl),
	}
}

func (m mocks) lookups() {
	m.cats.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*category.Category{food, salary, refunds, savings}, nil)
	m.accts.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*account.Account{bcp, interbank}, nil)
}

func (m mocks) service() *importer.Service {
	return importer.NewService(m.cats, m.accts, m.txs)
}

func TestService_Import(t *testing.T) {
	m := newMocks(t)
	m.lookups()
	m.cats.EXPECT().EnsureSystem(gomock.Any(), category.SystemUnsortedExpense, category.KindExpense).Return(unsort, nil)

	m.txs.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			require.Len(t, params, 3)

			assert.Equal(t, int64(11), params[0].CategoryID)
			assert.Equal(t, transaction.KindIncome, params[0].Kind)
			assert.Equal(t, int64(2), params[0].AccountID)
			assert.Equal(t, transaction.StatusCompleted, params[0].Status)

			assert.Equal(t, int64(10), params[1].CategoryID)
			assert.Equal(t, int64(3), params[1].AccountID)
			assert.Equal(t, "35.5", params[1].Amount.String())

			assert.Equal(t, int64(90), params[2].CategoryID)
			assert.Equal(t, transaction.KindExpense, params[2].Kind)

			return &transaction.ImportResult{Imported: []*transaction.Transaction{{ID: 1}, {ID: 2}, {ID: 3}}}, nil
		})

	res, err := m.service().Import(context.Background(), importer.Params{Filename: "junio.csv"}, strings.NewReader(statement))
	require.NoError(t, err)

	assert.Equal(t, importer.FormatCSV, res.Format)
	assert.Equal(t, 3, res.Rows)
	assert.Len(t, res.Imported, 3)
	assert.Empty(t, res.Conflicts)
}

func TestService_Import_Conflicts(t *testing.T) {
	m := newMocks(t)
	m.lookups()
	m.cats.EXPECT().EnsureSystem(gomock.Any(), gomock.Any(), gomock.Any()).Return(unsort, nil)

	dup := &transaction.Transaction{ID: 7, Description: "Almuerzo"}
	m.txs.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).Return(&transaction.ImportResult{
		New:       []*transaction.Transaction{{}, {}},
		Conflicts: []transaction.Conflict{{Incoming: &transaction.Transaction{}, Existing: dup}},
	}, nil)

	res, err := m.service().Import(context.Background(), importer.Params{Filename: "junio.csv"}, strings.NewReader(statement))
	require.NoError(t, err)

	assert.Empty(t, res.Imported)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, int64(7), res.Conflicts[0].Existing.ID)
	assert.Equal(t, 2, res.Pending)
}

func TestService_Import_Force(t *testing.T) {
	m := newMocks(t)
	m.lookups()
	m.cats.EXPECT().EnsureSystem(gomock.Any(), gomock.Any(), gomock.Any()).Return(unsort, nil)
	m.txs.EXPECT().CreateBatch(gomock.Any(), gomock.Len(3)).Return([]*transaction.Transaction{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	res, err := m.service().Import(context.Background(), importer.Params{Filename: "junio.csv", Force: true}, strings.NewReader(statement))
	require.NoError(t, err)
	assert.Len(t, res.Imported, 3)
}

func TestService_Import_Resolution(t *testing.T) {
	type testCase struct {
		name       string
		csv        string
		params     importer.Params
		check      func(t *testing.T, p transaction.CreateParams)
		wantFields []string
	}

	tests := []testCase{
		{
			name: "CategoryKindWinsOverSign",
			csv:  "Fecha,Descripción,Monto,Categoría\n01/06/2025,Devolución Saga,-59.90,Devoluciones\n",
			check: func(t *testing.T, p transaction.CreateParams) {
				assert.Equal(t, transaction.KindIncome, p.Kind)
				assert.Equal(t, int64(12), p.CategoryID)
			},
		},
		{
			name:   "ExplicitAccount",
			csv:    "Fecha,Descripción,Monto,Categoría\n01/06/2025,Menú,-15,Comida\n",
			params: importer.Params{AccountID: new(int64(3))},
			check: func(t *testing.T, p transaction.CreateParams) {
				assert.Equal(t, int64(3), p.AccountID)
			},
		},
		{
			name: "ForeignCurrency",
			csv:  "Fecha,Descripción,Monto,Categoría,Moneda,Tipo de cambio\n01/06/2025,Spotify,-5.99,Comida,USD,3.70\n",
			check: func(t *testing.T, p transaction.CreateParams) {
				assert.Equal(t, money.USD, p.Currency)
				require.NotNil(t, p.ExchangeRate)
				assert.Equal(t, "3.7", p.ExchangeRate.String())
			},
		},
		{
			name:       "UnknownNames",
			csv:        "Fecha,Descripción,Monto,Categoría,Cuenta\n01/06/2025,Cine,-30,Ocio,Caja Arequipa\n",
			wantFields: []string{"rows[2].account", "rows[2].category"},
		},
		{
			name:       "ExplicitKindMismatch",
			csv:        "Fecha,Descripción,Monto,Tipo,Categoría\n01/06/2025,Cena,50,Ingreso,Comida\n",
			wantFields: []string{"rows[2].category"},
		},
		{
			name:       "SavingNotPostable",
			csv:        "Fecha,Descripción,Monto,Categoría\n01/06/2025,Ahorro,-300,Fondo de emergencia\n",
			wantFields: []string{"rows[2].category"},
		},
		{
			name:       "BadCurrency",
			csv:        "Fecha,Descripción,Monto,Categoría,Moneda\n01/06/2025,Hotel,-300,Comida,EUR\n",
			wantFields: []string{"rows[2].currency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks(t)
			m.lookups()

			if tt.wantFields == nil {
				m.txs.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
						require.Len(t, params, 1)
						tt.check(t, params[0])

						return &transaction.ImportResult{}, nil
					})
			}

			tt.params.Filename = "import.csv"
			_, err := m.service().Import(context.Background(), tt.params, strings.NewReader(tt.csv))

			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}

			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindValidation, e.Kind)

			var got []string
			for _, f := range e.Fields {
				got = append(got, f.Field)
			}

			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestService_Import_DescriptionRules(t *testing.T) {
	m := newMocks(t)
	m.lookups()

	matcher := importer.NewMockMatcher(gomock.NewController(t))
	matcher.EXPECT().Suggest(gomock.Any(), "Sueldo junio").Return(nil, nil)
	matcher.EXPECT().Suggest(gomock.Any(), "Almuerzo").
		Return(&matching.Rule{Pattern: "almu", Description: "Almuerzo oficina"}, nil)
	matcher.EXPECT().Suggest(gomock.Any(), "Yape sin detalle").
		Return(&matching.Rule{Pattern: "yape", CategoryID: new(food.ID)}, nil)

	m.txs.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			require.Len(t, params, 3)

			assert.Equal(t, "Sueldo junio", params[0].Description)

			assert.Equal(t, "Almuerzo oficina", params[1].Description)
			assert.Equal(t, int64(10), params[1].CategoryID)

			assert.Equal(t, "Yape sin detalle", params[2].Description)
			assert.Equal(t, food.ID, params[2].CategoryID)
			assert.Equal(t, transaction.KindExpense, params[2].Kind)

			return &transaction.ImportResult{}, nil
		})

	svc := importer.NewService(m.cats, m.accts, m.txs, importer.WithMatcher(matcher))

	_, err := svc.Import(context.Background(), importer.Params{Filename: "junio.csv"}, strings.NewReader(statement))
	require.NoError(t, err)
}

func TestService_Import_UnreadableFile(t *testing.T) {
	m := newMocks(t)

	_, err := m.service().Import(context.Background(), importer.Params{Filename: "junio.xlsx"}, strings.NewReader("not a zip"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = m.service().Import(context.Background(), importer.Params{Filename: "junio.ods"}, strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
}

func TestService_Import_LookupFailure(t *testing.T) {
	m := newMocks(t)
	m.cats.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := m.service().Import(context.Background(), importer.Params{Filename: "junio.csv"}, strings.NewReader(statement))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_Template(t *testing.T) {
	m := newMocks(t)
	m.lookups()

	var buf bytes.Buffer
	require.NoError(t, m.service().Template(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Movimientos", "Listas"}, f.GetSheetList())

	header, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, "Fecha", header[0][0])
	assert.Equal(t, "Notas", header[0][8])

	lists, err := f.GetRows("Listas")
	require.NoError(t, err)

	var cats []string
	for _, row := range lists[1:] {
		if len(row) > 0 && row[0] != "" {
			cats = append(cats, row[0])
		}
	}

	assert.Equal(t, []string{"Comida", "Sueldo", "Devoluciones"}, cats)
}
