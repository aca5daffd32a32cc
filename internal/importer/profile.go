package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column, e.g. "Monto" with "-35.50".
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns, e.g. "Cargo"/"Abono".
	amountSplit
)

// Profile describes the column layout of one accepted sheet format.
// Optional columns are picked up when present.
type Profile struct {
	Name       string
	DateCol    []string
	DescCol    []string
	AmountMode amountMode
	AmountCol  []string // amountSingle
	DebitCol   []string // amountSplit
	CreditCol  []string // amountSplit
}

// Optional columns shared by every profile.
var (
	kindCol     = []string{"tipo", "tipo de movimiento"}
	categoryCol = []string{"categoría", "categoria"}
	accountCol  = []string{"cuenta"}
	currencyCol = []string{"moneda"}
	rateCol     = []string{"tipo de cambio", "tc"}
	notesCol    = []string{"notas", "nota", "observaciones"}
)

func (p Profile) requiredCols() [][]string {
	cols := [][]string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; the more specific layout comes first.
var profiles = []Profile{
	{
		Name:       "bank statement",
		DateCol:    []string{"fecha", "fecha operación", "fecha de operación", "fecha proceso"},
		DescCol:    []string{"descripción", "descripcion", "concepto", "detalle"},
		AmountMode: amountSplit,
		DebitCol:   []string{"cargo", "cargos", "débito", "debito"},
		CreditCol:  []string{"abono", "abonos", "crédito", "credito"},
	},
	{
		Name:       "template",
		DateCol:    []string{"fecha"},
		DescCol:    []string{"descripción", "descripcion", "concepto"},
		AmountMode: amountSingle,
		AmountCol:  []string{"monto", "importe"},
	},
}

// templateHeader is the header row written into the downloadable template.
var templateHeader = []string{
	"Fecha", "Descripción", "Monto", "Tipo", "Categoría", "Cuenta", "Moneda", "Tipo de cambio", "Notas",
}

// Columns returns the template header. Files written with it import back unchanged.
func Columns() []string {
	return append([]string(nil), templateHeader...)
}
