package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

// colIndex maps lower-cased header names to their index in the row.
type colIndex map[string]int

// find returns the index of the first alias present, or -1.
func (c colIndex) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i
		}
	}

	return -1
}

// layout is a matched profile resolved against a concrete header row.
type layout struct {
	profile  *Profile
	date     int
	desc     int
	amount   int
	debit    int
	credit   int
	kind     int
	category int
	account  int
	currency int
	rate     int
	notes    int
}

// parseRows finds the header row, which may sit below a preamble of account
// details, and reads every data row under it. lines holds the 1-based source
// line of each row; nil means rows map one to one onto lines.
func parseRows(rows [][]string, lines []int) ([]Row, error) {
	l, headerIdx := detectProfile(rows)
	if l == nil {
		return nil, ErrNoHeader
	}

	var (
		out    []Row
		fields []apperr.FieldError
	)

	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2 // 1-based, as shown by spreadsheet tools
		if lines != nil {
			line = lines[headerIdx+i+1]
		}

		r, ok, errs := l.parse(row, line)
		if len(errs) > 0 {
			fields = append(fields, errs...)
			continue
		}

		if ok {
			out = append(out, r)
		}
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("invalid rows in import file", fields...)
	}

	if len(out) == 0 {
		return nil, ErrEmpty
	}

	return out, nil
}

func detectProfile(rows [][]string) (*layout, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return newLayout(&profiles[i], cols), rowIdx
			}
		}
	}

	return nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, aliases := range p.requiredCols() {
		if cols.find(aliases) < 0 {
			return false
		}
	}

	return true
}

func newLayout(p *Profile, cols colIndex) *layout {
	return &layout{
		profile:  p,
		date:     cols.find(p.DateCol),
		desc:     cols.find(p.DescCol),
		amount:   cols.find(p.AmountCol),
		debit:    cols.find(p.DebitCol),
		credit:   cols.find(p.CreditCol),
		kind:     cols.find(kindCol),
		category: cols.find(categoryCol),
		account:  cols.find(accountCol),
		currency: cols.find(currencyCol),
		rate:     cols.find(rateCol),
		notes:    cols.find(notesCol),
	}
}

// parse reads one data row. Blank rows and footers (no date and no amount)
// are skipped; anything else that fails to parse is reported per field.
func (l *layout) parse(row []string, line int) (Row, bool, []apperr.FieldError) {
	dateStr := cellValue(row, l.date)

	amount, signKind, hasAmount, amountErr := l.amountOf(row)

	if dateStr == "" && !hasAmount {
		return Row{}, false, nil
	}

	var fields []apperr.FieldError

	field := func(name, msg string) {
		fields = append(fields, apperr.Field(fmt.Sprintf("rows[%d].%s", line, name), msg))
	}

	r := Row{
		Line:        line,
		Description: cellValue(row, l.desc),
		Amount:      amount,
		Kind:        signKind,
		KindImplied: l.profile.AmountMode == amountSingle,
		Category:    cellValue(row, l.category),
		Account:     cellValue(row, l.account),
		Currency:    strings.ToUpper(cellValue(row, l.currency)),
		Notes:       cellValue(row, l.notes),
	}

	date, ok := parseDate(dateStr)
	if !ok {
		// Statement footers often carry a total under the amount column.
		if dateStr == "" || l.profile.AmountMode == amountSplit {
			return Row{}, false, nil
		}

		field("date", "must be a date like 31/12/2025")
	}

	r.Date = date

	switch {
	case amountErr != "":
		field("amount", amountErr)
	case !hasAmount:
		field("amount", "is required")
	}

	if r.Description == "" {
		field("description", "is required")
	}

	kind, ok := parseKind(cellValue(row, l.kind))
	switch {
	case !ok:
		field("kind", "must be Ingreso or Gasto")
	case kind != "":
		r.Kind = kind
		r.KindImplied = false
	}

	if s := cellValue(row, l.rate); s != "" {
		rate, err := parseAmount(s)
		if err != nil || !rate.IsPositive() {
			field("exchange_rate", "must be a positive number")
		} else {
			r.ExchangeRate = &rate
		}
	}

	return r, true, fields
}

// amountOf returns the absolute amount and the kind implied by its sign or column.
func (l *layout) amountOf(row []string) (decimal.Decimal, transaction.Kind, bool, string) {
	switch l.profile.AmountMode {
	case amountSplit:
		return parseSplitAmount(row, l.debit, l.credit)
	default:
		return parseSingleAmount(row, l.amount)
	}
}

func parseSingleAmount(row []string, idx int) (decimal.Decimal, transaction.Kind, bool, string) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", false, ""
	}

	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, "", true, "must be a number"
	}

	if d.IsZero() {
		return decimal.Zero, "", true, "must not be zero"
	}

	if d.IsNegative() {
		return d.Neg(), transaction.KindExpense, true, ""
	}

	return d, transaction.KindIncome, true, ""
}

func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, transaction.Kind, bool, string) {
	if s := cellValue(row, debitIdx); s != "" {
		d, err := parseAmount(s)
		if err == nil && !d.IsZero() {
			return d.Abs(), transaction.KindExpense, true, ""
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		d, err := parseAmount(s)
		if err == nil && !d.IsZero() {
			return d.Abs(), transaction.KindIncome, true, ""
		}
	}

	return decimal.Zero, "", false, ""
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
