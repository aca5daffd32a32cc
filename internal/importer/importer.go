package importer

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	ErrUnsupportedFormat = apperr.InvalidField("file", "must be an .xlsx or .csv file")
	ErrNoHeader          = apperr.InvalidField("file", "no header row with Fecha, Descripción and Monto (or Cargo/Abono) columns")
	ErrEmpty             = apperr.InvalidField("file", "contains no transactions")
)

// FormatOf picks the reader from the upload's file name.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}

	return "", ErrUnsupportedFormat
}

// Importer turns an uploaded file into raw rows, one per transaction.
type Importer interface {
	Parse(r io.Reader) ([]Row, error)
}

// Row is one transaction as written in the file, before names are resolved.
type Row struct {
	Line         int
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Kind         transaction.Kind
	KindImplied  bool // Kind came from the amount's sign; the category may override it
	Category     string
	Account      string
	Currency     string
	ExchangeRate *decimal.Decimal
	Notes        string
}
