package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetMovements = "Movimientos"
	sheetLists     = "Listas"

	// templateRows is how far the drop-downs reach down the movements sheet.
	templateRows = 1000
)

// TemplateData fills the drop-downs of the downloadable workbook.
type TemplateData struct {
	Categories []string
	Accounts   []string
	Sample     time.Time
}

// WriteTemplate writes an .xlsx with the import header, one sample row and
// drop-downs for kind, category and account.
func WriteTemplate(w io.Writer, data TemplateData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetMovements); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if _, err := f.NewSheet(sheetLists); err != nil {
		return fmt.Errorf("add lists sheet: %w", err)
	}

	header := make([]any, len(templateHeader))
	for i, h := range templateHeader {
		header[i] = h
	}

	if err := f.SetSheetRow(sheetMovements, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sample := []any{
		data.Sample.Format("02/01/2006"), "Almuerzo", -35.5, "Gasto",
		first(data.Categories), first(data.Accounts), "PEN", "", "",
	}

	if err := f.SetSheetRow(sheetMovements, "A2", &sample); err != nil {
		return fmt.Errorf("write sample row: %w", err)
	}

	if err := styleHeader(f); err != nil {
		return err
	}

	if err := writeList(f, "A", "Categorías", data.Categories); err != nil {
		return err
	}

	if err := writeList(f, "B", "Cuentas", data.Accounts); err != nil {
		return err
	}

	if err := addDropDowns(f, data); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F4E78"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(templateHeader), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}

	if err := f.SetCellStyle(sheetMovements, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if err := f.SetColWidth(sheetMovements, "A", "I", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SetColWidth(sheetMovements, "B", "B", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	err = f.SetPanes(sheetMovements, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return nil
}

func writeList(f *excelize.File, col, title string, values []string) error {
	if err := f.SetCellValue(sheetLists, col+"1", title); err != nil {
		return fmt.Errorf("write %s title: %w", title, err)
	}

	for i, v := range values {
		if err := f.SetCellValue(sheetLists, fmt.Sprintf("%s%d", col, i+2), v); err != nil {
			return fmt.Errorf("write %s: %w", title, err)
		}
	}

	return nil
}

func addDropDowns(f *excelize.File, data TemplateData) error {
	kinds := excelize.NewDataValidation(true)
	kinds.Sqref = fmt.Sprintf("D2:D%d", templateRows)

	if err := kinds.SetDropList([]string{"Ingreso", "Gasto"}); err != nil {
		return fmt.Errorf("kind drop-down: %w", err)
	}

	if err := f.AddDataValidation(sheetMovements, kinds); err != nil {
		return fmt.Errorf("add kind drop-down: %w", err)
	}

	lists := []struct {
		target string
		col    string
		n      int
	}{
		{target: "E", col: "A", n: len(data.Categories)},
		{target: "F", col: "B", n: len(data.Accounts)},
	}

	for _, l := range lists {
		if l.n == 0 {
			continue
		}

		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s%d", l.target, l.target, templateRows)
		dv.SetSqrefDropList(fmt.Sprintf("%s!$%s$2:$%s$%d", sheetLists, l.col, l.col, l.n+1))

		if err := f.AddDataValidation(sheetMovements, dv); err != nil {
			return fmt.Errorf("add list drop-down: %w", err)
		}
	}

	return nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
