package importer

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

var errBadAmount = errors.New("not an amount")

var currencyMarks = []string{"US$", "S/.", "S/", "USD", "PEN", "$", " ", " "}

// parseAmount reads amounts written either way round: "1,234.56" as used in
// Peru and "1.234,56" as exported by Spanish-locale spreadsheets. A lone
// separator followed by exactly three digits is a thousands separator.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errBadAmount
	}

	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}

	for _, m := range currencyMarks {
		s = strings.ReplaceAll(s, m, "")
	}

	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}

	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errBadAmount
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}

func normalizeSeparators(s string) string {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") > 1 || len(s)-comma-1 == 3 {
			return strings.ReplaceAll(s, ",", "")
		}

		return strings.Replace(s, ",", ".", 1)
	case dot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/06",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// maxSerial is 9999-12-31 as an Excel serial day.
const maxSerial = 2958465

// parseDate accepts day-first dates and raw Excel serial days.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 || serial > maxSerial {
		return time.Time{}, false
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}

	return dateOnly(t), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseKind maps the "Tipo" column. Empty means the amount's sign decides.
func parseKind(s string) (transaction.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "ingreso", "income", "abono":
		return transaction.KindIncome, true
	case "gasto", "egreso", "expense", "cargo":
		return transaction.KindExpense, true
	}

	return "", false
}
