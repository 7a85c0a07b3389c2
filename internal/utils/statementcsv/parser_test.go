package statementcsv

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveColumns_HeaderTolerance(t *testing.T) {
	plain := ResolveColumns([]string{"Date", " Description", " Debit", " Credit", " Balance", " Reference"})
	messy := ResolveColumns([]string{" date ", `"DESCRIPTION"`, "DEBIT:", "Credit ($)", "balance.", "Reference #"})

	assert.Equal(t, plain, messy)
	assert.Equal(t, ColumnMap{Date: 0, Description: 1, Debit: 2, Credit: 3, Amount: -1, Balance: 4, Reference: 5}, plain)
}

func TestResolveColumns_Aliases(t *testing.T) {
	cols := ResolveColumns([]string{"Date", "Narration", "Withdrawals", "Deposits", "Ref"})

	assert.Equal(t, 1, cols.Description)
	assert.Equal(t, 2, cols.Debit)
	assert.Equal(t, 3, cols.Credit)
	assert.Equal(t, 4, cols.Reference)
	assert.Equal(t, -1, cols.Amount)
}

func TestParse_DebitCreditColumns(t *testing.T) {
	content := "Date,Description,Debit,Credit,Balance,Reference\n" +
		"2024-01-02,Rent,1200.00,,3800.00,CHQ-1\n" +
		`"2024-01-03","Card settlement","","250.5","4050.50",""` + "\n"

	res := Parse([]byte(content))

	require.Len(t, res.Lines, 2)
	assert.Zero(t, res.SkippedRows)

	first := res.Lines[0]
	assert.Equal(t, "2024-01-02", first.LineDate.Format(domain.DateLayout))
	assert.Equal(t, "Rent", first.Description)
	assert.True(t, dec("1200").Equal(first.Debit))
	assert.True(t, first.Credit.IsZero())
	require.NotNil(t, first.Balance)
	assert.True(t, dec("3800").Equal(*first.Balance))
	require.NotNil(t, first.ExternalReference)
	assert.Equal(t, "CHQ-1", *first.ExternalReference)

	second := res.Lines[1]
	assert.Equal(t, "Card settlement", second.Description)
	assert.True(t, second.Debit.IsZero())
	assert.True(t, dec("250.5").Equal(second.Credit))
	assert.Nil(t, second.ExternalReference)
}

func TestParse_AmountColumn(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"2024-02-01,Supplier,-75.25\n" +
		"2024-02-02,Refund,40\n" +
		"2024-02-03,Zero fee,0\n"

	res := Parse([]byte(content))

	require.Len(t, res.Lines, 3)
	assert.True(t, dec("75.25").Equal(res.Lines[0].Debit))
	assert.True(t, res.Lines[0].Credit.IsZero())
	assert.True(t, res.Lines[1].Debit.IsZero())
	assert.True(t, dec("40").Equal(res.Lines[1].Credit))
	assert.True(t, res.Lines[2].Debit.IsZero())
	assert.True(t, res.Lines[2].Credit.IsZero())
	assert.Nil(t, res.Lines[0].Balance)
}

func TestParse_ExplicitColumnsWinOverAmount(t *testing.T) {
	content := "Date,Description,Amount,Debit,Credit\n" +
		"2024-02-01,Both present,-999,10,\n"

	res := Parse([]byte(content))

	require.Len(t, res.Lines, 1)
	assert.True(t, dec("10").Equal(res.Lines[0].Debit))
	assert.True(t, res.Lines[0].Credit.IsZero())
}

func TestParse_SkipsEmptyDatesAndMalformedRows(t *testing.T) {
	content := "Date,Description,Debit,Credit\n" +
		",Opening balance,,\n" +
		"not-a-date,Garbage,1,\n" +
		"2024-03-01,Bad number,abc,\n" +
		"\n" +
		"01/03/2024,Day first,5,\n"

	res := Parse([]byte(content))

	require.Len(t, res.Lines, 1)
	assert.Equal(t, 3, res.SkippedRows)
	assert.Equal(t, "2024-03-01", res.Lines[0].LineDate.Format(domain.DateLayout))
	assert.Equal(t, "Day first", res.Lines[0].Description)
}

func TestParse_HeaderOnlyAndEmpty(t *testing.T) {
	assert.Empty(t, Parse([]byte("Date,Description,Debit,Credit,Balance,Reference\n")).Lines)
	assert.Empty(t, Parse([]byte("")).Lines)
	assert.Empty(t, Parse([]byte("Description,Debit\nNo date column,4\n")).Lines)
}

func TestParse_ByteOrderMarkAndFormattedAmounts(t *testing.T) {
	content := "\xEF\xBB\xBFDate,Description,Amount,Balance\n" +
		`2024-04-01,Equipment,"(1,250.00)","$10,000.00"` + "\n"

	res := Parse([]byte(content))

	require.Len(t, res.Lines, 1)
	assert.True(t, dec("1250").Equal(res.Lines[0].Debit))
	require.NotNil(t, res.Lines[0].Balance)
	assert.True(t, dec("10000").Equal(*res.Lines[0].Balance))
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(strings.NewReader("date,amount\n2024-05-05,12\n"))

	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.True(t, dec("12").Equal(res.Lines[0].Credit))
}

func TestLineHash(t *testing.T) {
	line := domain.ParsedLine{
		LineDate:    mustDate(t, "2024-01-02"),
		Description: "Rent",
		Debit:       dec("1200.00"),
		Credit:      decimal.Zero,
	}
	same := line
	same.Debit = dec("1200")

	assert.Equal(t, LineHash("acc-1", 0, line), LineHash("acc-1", 0, same), "canonical amounts hash alike")
	assert.NotEqual(t, LineHash("acc-1", 0, line), LineHash("acc-1", 1, line), "ordinal keeps identical rows apart")
	assert.NotEqual(t, LineHash("acc-1", 0, line), LineHash("acc-2", 0, line), "accounts do not share digests")
	assert.Len(t, LineHash("acc-1", 0, line), 64)
}

func TestLineHash_SeparatorsInFreeText(t *testing.T) {
	date := mustDate(t, "2024-01-02")
	ref := "R"
	shiftedRef := "|R"
	balance := dec("3")

	first := domain.ParsedLine{LineDate: date, Description: "D|1", Debit: dec("2"), Credit: dec("3"), ExternalReference: &ref}
	second := domain.ParsedLine{LineDate: date, Description: "D", Debit: dec("1"), Credit: dec("2"), Balance: &balance, ExternalReference: &shiftedRef}

	assert.NotEqual(t, LineHash("acct", 0, first), LineHash("acct", 0, second))

	empty := ""
	withEmptyRef := domain.ParsedLine{LineDate: date, Description: "D", Debit: dec("1"), Credit: decimal.Zero, ExternalReference: &empty}
	withoutRef := withEmptyRef
	withoutRef.ExternalReference = nil
	assert.NotEqual(t, LineHash("acct", 0, withEmptyRef), LineHash("acct", 0, withoutRef))
}

func TestTemplates(t *testing.T) {
	csvBytes, err := TemplateCSV()
	require.NoError(t, err)

	parsed := Parse(csvBytes)
	require.Len(t, parsed.Lines, 1)
	assert.True(t, dec("1500").Equal(parsed.Lines[0].Credit))

	xlsxBytes, err := TemplateXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(xlsxBytes))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(templateSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TemplateHeaders, rows[0])
}

func TestParseXLSX_FilledTemplate(t *testing.T) {
	template, err := TemplateXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(template))
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(templateSheet, "A3", &[]any{"2024-01-16", "Rent", "1200", "", "300", ""}))
	require.NoError(t, f.SetSheetRow(templateSheet, "A4", &[]any{time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), "Serial date", 9.5, "", "", "S-1"}))
	require.NoError(t, f.SetSheetRow(templateSheet, "A5", &[]any{"soon", "Bad date", "1", "", "", ""}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	content := buf.Bytes()
	assert.True(t, IsXLSX(content))

	res, err := ParseFile(content)
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, 1, res.SkippedRows)

	assert.Equal(t, "2024-01-15", res.Lines[0].LineDate.Format(domain.DateLayout))
	assert.True(t, dec("1500").Equal(res.Lines[0].Credit))
	require.NotNil(t, res.Lines[0].ExternalReference)
	assert.Equal(t, "TXN-0001", *res.Lines[0].ExternalReference)

	assert.Equal(t, "Rent", res.Lines[1].Description)
	assert.True(t, dec("1200").Equal(res.Lines[1].Debit))
	assert.Nil(t, res.Lines[1].ExternalReference)

	assert.Equal(t, "2024-01-17", res.Lines[2].LineDate.Format(domain.DateLayout))
	assert.True(t, dec("9.5").Equal(res.Lines[2].Debit))
	assert.Nil(t, res.Lines[2].Balance)
}

func TestParseFile_CSVAndBrokenWorkbook(t *testing.T) {
	content := []byte("Date,Amount\n2024-05-05,-3\n")
	assert.False(t, IsXLSX(content))

	res, err := ParseFile(content)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.True(t, dec("3").Equal(res.Lines[0].Debit))

	_, err = ParseFile([]byte("PK\x03\x04not really a workbook"))
	assert.Error(t, err)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
