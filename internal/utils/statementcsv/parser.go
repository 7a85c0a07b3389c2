// Package statementcsv reads bank statement exports in comma-separated or Excel form.
package statementcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Semantic column names recognised in the header row.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColDebit       = "debit"
	ColCredit      = "credit"
	ColAmount      = "amount"
	ColBalance     = "balance"
	ColReference   = "reference"
)

// aliases maps normalized header spellings seen in bank exports onto semantic names.
var aliases = map[string]string{
	"narration":   ColDescription,
	"details":     ColDescription,
	"particulars": ColDescription,
	"withdrawal":  ColDebit,
	"withdrawals": ColDebit,
	"paidout":     ColDebit,
	"deposit":     ColCredit,
	"deposits":    ColCredit,
	"paidin":      ColCredit,
	"ref":         ColReference,
	"referenceno": ColReference,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ColumnMap holds the index of each semantic column, or -1 when absent.
type ColumnMap struct {
	Date        int
	Description int
	Debit       int
	Credit      int
	Amount      int
	Balance     int
	Reference   int
}

// HasDebitCredit reports whether explicit debit or credit columns were found.
func (m ColumnMap) HasDebitCredit() bool {
	return m.Debit >= 0 || m.Credit >= 0
}

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Lines       []domain.ParsedLine
	SkippedRows int
}

// NormalizeHeader lower-cases a header cell and drops every non-letter.
func NormalizeHeader(cell string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(cell) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveColumns locates the semantic columns in a header row. The first matching cell wins.
func ResolveColumns(header []string) ColumnMap {
	m := ColumnMap{Date: -1, Description: -1, Debit: -1, Credit: -1, Amount: -1, Balance: -1, Reference: -1}
	for i, cell := range header {
		name := NormalizeHeader(stripQuotes(cell))
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		var slot *int
		switch name {
		case ColDate:
			slot = &m.Date
		case ColDescription:
			slot = &m.Description
		case ColDebit:
			slot = &m.Debit
		case ColCredit:
			slot = &m.Credit
		case ColAmount:
			slot = &m.Amount
		case ColBalance:
			slot = &m.Balance
		case ColReference:
			slot = &m.Reference
		}
		if slot != nil && *slot < 0 {
			*slot = i
		}
	}
	return m
}

// ParseReader reads the whole of r and parses it as CSV or XLSX.
func ParseReader(r io.Reader) (ParseResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("failed to read statement file: %w", err)
	}
	return ParseFile(content)
}

// Parse turns the raw text of a statement export into normalized lines.
// A file without at least a header and one data row yields an empty result.
// Rows that cannot be read are skipped and counted, never fatal.
func Parse(content []byte) ParseResult {
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ParseResult{}
	}

	rows := newRowParser(header, parseDate)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rows.result.SkippedRows++
			continue
		}
		rows.add(record)
	}
	return rows.result
}

// rowParser applies the header and row rules shared by every file format.
type rowParser struct {
	cols      ColumnMap
	parseDate func(string) (time.Time, error)
	result    ParseResult
}

func newRowParser(header []string, parseDate func(string) (time.Time, error)) *rowParser {
	return &rowParser{cols: ResolveColumns(header), parseDate: parseDate}
}

// add parses one data row. Blank rows are ignored, unreadable rows are counted as skipped.
func (p *rowParser) add(record []string) {
	if isBlankRecord(record) {
		return
	}
	line, ok := parseRecord(record, p.cols, p.parseDate)
	if !ok {
		p.result.SkippedRows++
		return
	}
	p.result.Lines = append(p.result.Lines, line)
}

func parseRecord(record []string, cols ColumnMap, parseDate func(string) (time.Time, error)) (domain.ParsedLine, bool) {
	dateCell := cell(record, cols.Date)
	if dateCell == "" {
		return domain.ParsedLine{}, false
	}
	lineDate, err := parseDate(dateCell)
	if err != nil {
		return domain.ParsedLine{}, false
	}

	line := domain.ParsedLine{
		LineDate:    lineDate,
		Description: cell(record, cols.Description),
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}

	switch {
	case cols.HasDebitCredit():
		debit, err := parseAmount(cell(record, cols.Debit))
		if err != nil {
			return domain.ParsedLine{}, false
		}
		credit, err := parseAmount(cell(record, cols.Credit))
		if err != nil {
			return domain.ParsedLine{}, false
		}
		line.Debit = debit.Abs()
		line.Credit = credit.Abs()
	case cols.Amount >= 0:
		amount, err := parseAmount(cell(record, cols.Amount))
		if err != nil {
			return domain.ParsedLine{}, false
		}
		if amount.IsNegative() {
			line.Debit = amount.Abs()
		} else {
			line.Credit = amount
		}
	}

	if raw := cell(record, cols.Balance); raw != "" {
		balance, err := parseAmount(raw)
		if err != nil {
			return domain.ParsedLine{}, false
		}
		line.Balance = &balance
	}
	if ref := cell(record, cols.Reference); ref != "" {
		line.ExternalReference = &ref
	}
	return line, true
}

// cell returns the trimmed, unquoted value at idx, or "" when the column is absent.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return stripQuotes(record[idx])
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return strings.Trim(s, `"`)
}

func isBlankRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseAmount reads a money cell. Blank cells are zero. Thousands separators and currency
// symbols are ignored; a value in parentheses is negative.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return decimal.Zero, fmt.Errorf("unrecognised amount %q", s)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognised amount %q: %w", s, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
