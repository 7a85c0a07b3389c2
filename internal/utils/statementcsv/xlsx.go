package statementcsv

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// zipMagic opens every Office Open XML workbook.
var zipMagic = []byte("PK\x03\x04")

// ErrNoSheet is returned for a workbook without any worksheet.
var ErrNoSheet = errors.New("workbook has no worksheet")

// IsXLSX reports whether content looks like an Excel workbook rather than text.
func IsXLSX(content []byte) bool {
	return bytes.HasPrefix(content, zipMagic)
}

// ParseFile parses content as a workbook when it carries the zip signature and as CSV otherwise.
func ParseFile(content []byte) (ParseResult, error) {
	if IsXLSX(content) {
		return ParseXLSX(content)
	}
	return Parse(content), nil
}

// ParseXLSX reads the first worksheet of a workbook with the same header and row rules as Parse.
// Date cells stored as spreadsheet serial numbers are accepted alongside text dates.
func ParseXLSX(content []byte) (ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return ParseResult{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ParseResult{}, ErrNoSheet
	}

	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return ParseResult{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return ParseResult{}, nil
	}

	p := newRowParser(rows[0], func(s string) (time.Time, error) {
		return parseCellDate(s, date1904)
	})
	for _, row := range rows[1:] {
		p.add(row)
	}
	return p.result, nil
}

func parseCellDate(s string, date1904 bool) (time.Time, error) {
	if t, err := parseDate(s); err == nil {
		return t, nil
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(t), nil
}
