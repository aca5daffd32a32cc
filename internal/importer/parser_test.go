package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCSV_Template(t *testing.T) {
	csv := `Fecha,Descripción,Monto,Tipo,Categoría,Cuenta,Moneda,Tipo de cambio,Notas
01/06/2025,Sueldo junio,"5,000.00",Ingreso,Sueldo,BCP Soles,PEN,,
03/06/2025,Almuerzo,-35.50,,Comida,,,,con el equipo
05/06/2025,Netflix,(44.90),,Streaming,Interbank $,usd,3.75,
`

	rows, err := importer.CSV{}.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, date(2025, 6, 1), rows[0].Date)
	assert.Equal(t, "Sueldo junio", rows[0].Description)
	assert.Equal(t, "5000", rows[0].Amount.String())
	assert.Equal(t, transaction.KindIncome, rows[0].Kind)
	assert.False(t, rows[0].KindImplied)
	assert.Equal(t, "Sueldo", rows[0].Category)
	assert.Equal(t, "BCP Soles", rows[0].Account)

	assert.Equal(t, "35.5", rows[1].Amount.String())
	assert.Equal(t, transaction.KindExpense, rows[1].Kind)
	assert.True(t, rows[1].KindImplied)
	assert.Equal(t, "con el equipo", rows[1].Notes)

	assert.Equal(t, "44.9", rows[2].Amount.String())
	assert.Equal(t, transaction.KindExpense, rows[2].Kind)
	assert.Equal(t, "USD", rows[2].Currency)
	require.NotNil(t, rows[2].ExchangeRate)
	assert.Equal(t, "3.75", rows[2].ExchangeRate.String())
}

func TestCSV_BankStatement(t *testing.T) {
	csv := `Estado de cuenta;BCP
Cuenta;191-12345678-0-12

Fecha;Descripción;Cargo;Abono;Saldo
15/05/2025;PLIN-JUAN PEREZ;1.250,00;;3.000,00
16/05/2025;ABONO SUELDO;;4.500,75;7.500,75
;Total;1.250,00;4.500,75;
`

	rows, err := importer.CSV{}.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 5, rows[0].Line)
	assert.Equal(t, date(2025, 5, 15), rows[0].Date)
	assert.Equal(t, "PLIN-JUAN PEREZ", rows[0].Description)
	assert.Equal(t, "1250", rows[0].Amount.String())
	assert.Equal(t, transaction.KindExpense, rows[0].Kind)
	assert.False(t, rows[0].KindImplied)

	assert.Equal(t, date(2025, 5, 16), rows[1].Date)
	assert.Equal(t, "4500.75", rows[1].Amount.String())
	assert.Equal(t, transaction.KindIncome, rows[1].Kind)
}

func TestCSV_Windows1252(t *testing.T) {
	text := "Fecha;Descripción;Monto;Categoría\n02/06/2025;Pañales;-89,90;Bebé\n"

	latin, err := charmap.Windows1252.NewEncoder().String(text)
	require.NoError(t, err)

	rows, err := importer.CSV{}.Parse(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Pañales", rows[0].Description)
	assert.Equal(t, "Bebé", rows[0].Category)
	assert.Equal(t, "89.9", rows[0].Amount.String())
}

func TestCSV_Errors(t *testing.T) {
	type testCase struct {
		name       string
		csv        string
		wantErr    error
		wantFields []string
	}

	tests := []testCase{
		{
			name:    "NoHeader",
			csv:     "a,b,c\n1,2,3\n",
			wantErr: importer.ErrNoHeader,
		},
		{
			name:    "OnlyHeader",
			csv:     "Fecha,Descripción,Monto\n\n",
			wantErr: importer.ErrEmpty,
		},
		{
			name: "BadRows",
			csv: `Fecha,Descripción,Monto,Tipo
31/02/2025,Luz,-80.00,
01/03/2025,Agua,cero,
02/03/2025,,-20.00,Regalo
`,
			wantFields: []string{
				"rows[2].date",
				"rows[3].amount",
				"rows[4].description",
				"rows[4].kind",
			},
		},
		{
			name: "BlankLinesKeepFileLines",
			csv:  "Fecha,Descripción,Monto\n\n\n01/03/2025,Agua,cero\n",
			wantFields: []string{
				"rows[4].amount",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.CSV{}.Parse(strings.NewReader(tt.csv))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
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

func TestXLSX_TemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	err := importer.WriteTemplate(&buf, importer.TemplateData{
		Categories: []string{"Comida", "Transporte"},
		Accounts:   []string{"BCP Soles"},
		Sample:     date(2025, 6, 1),
	})
	require.NoError(t, err)

	rows, err := importer.XLSX{}.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, date(2025, 6, 1), rows[0].Date)
	assert.Equal(t, "Almuerzo", rows[0].Description)
	assert.Equal(t, "35.5", rows[0].Amount.String())
	assert.Equal(t, transaction.KindExpense, rows[0].Kind)
	assert.Equal(t, "Comida", rows[0].Category)
	assert.Equal(t, "BCP Soles", rows[0].Account)
	assert.Equal(t, "PEN", rows[0].Currency)
}

func TestXLSX_SerialDates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Fecha", "Concepto", "Importe"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{date(2025, 6, 1), "Mercado", -120.4}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := importer.XLSX{}.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, date(2025, 6, 1), rows[0].Date)
	assert.Equal(t, "Mercado", rows[0].Description)
	assert.Equal(t, "120.4", rows[0].Amount.String())
}

func TestFormatOf(t *testing.T) {
	f, err := importer.FormatOf("Movimientos Junio.XLSX")
	require.NoError(t, err)
	assert.Equal(t, importer.FormatXLSX, f)

	f, err = importer.FormatOf("estado.csv")
	require.NoError(t, err)
	assert.Equal(t, importer.FormatCSV, f)

	_, err = importer.FormatOf("estado.pdf")
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
}
