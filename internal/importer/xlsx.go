package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX reads the first sheet of a workbook, or the "Movimientos" sheet when
// the workbook was produced from our template.
type XLSX struct{}

func (XLSX) Parse(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if idx, err := f.GetSheetIndex(sheetMovements); err == nil && idx >= 0 {
		sheet = sheetMovements
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return parseRows(rows, nil)
}
