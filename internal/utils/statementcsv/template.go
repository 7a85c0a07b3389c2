package statementcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateHeaders are the column names of the downloadable statement template.
var TemplateHeaders = []string{"Date", "Description", "Debit", "Credit", "Balance", "Reference"}

var templateExampleRow = []string{"2024-01-15", "Card settlement", "", "1500.00", "1500.00", "TXN-0001"}

const templateSheet = "Statement"

// TemplateCSV renders the statement template as CSV text.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(TemplateHeaders); err != nil {
		return nil, fmt.Errorf("failed to write template header: %w", err)
	}
	if err := w.Write(templateExampleRow); err != nil {
		return nil, fmt.Errorf("failed to write template row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush template: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the statement template as an Excel workbook.
func TemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("failed to name template sheet: %w", err)
	}

	for i, row := range [][]string{TemplateHeaders, templateExampleRow} {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(templateSheet, cellRef, &values); err != nil {
			return nil, fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(templateSheet, "A", "A", 12)
	_ = f.SetColWidth(templateSheet, "B", "B", 30)
	_ = f.SetColWidth(templateSheet, "C", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render template workbook: %w", err)
	}
	return buf.Bytes(), nil
}
