package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestStatementLineSignedAmount(t *testing.T) {
	line := StatementLine{ParsedLine: ParsedLine{
		Debit:  decimal.NewFromInt(40),
		Credit: decimal.NewFromInt(15),
	}}
	assert.True(t, decimal.NewFromInt(-25).Equal(line.SignedAmount()))

	balance := decimal.RequireFromString("812.40")
	line.Balance = &balance
	assert.True(t, balance.Equal(line.SignedAmount()), "balance column takes precedence")
}

func TestLedgerTransactionSignedAmount(t *testing.T) {
	txn := LedgerTransaction{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero}
	assert.True(t, decimal.NewFromInt(-100).Equal(txn.SignedAmount()))
}

func TestStatementOverlaps(t *testing.T) {
	s := Statement{StartDate: mustParse(t, "2024-01-10"), EndDate: mustParse(t, "2024-01-20")}

	assert.True(t, s.Overlaps(mustParse(t, "2024-01-01"), mustParse(t, "2024-01-10")), "touching start")
	assert.True(t, s.Overlaps(mustParse(t, "2024-01-20"), mustParse(t, "2024-01-31")), "touching end")
	assert.True(t, s.Overlaps(mustParse(t, "2024-01-12"), mustParse(t, "2024-01-13")), "contained")
	assert.False(t, s.Overlaps(mustParse(t, "2024-01-21"), mustParse(t, "2024-01-31")))
	assert.False(t, s.Overlaps(mustParse(t, "2023-12-01"), mustParse(t, "2024-01-09")))
}

func TestAccountingPeriodCovers(t *testing.T) {
	p := AccountingPeriod{PeriodStart: mustParse(t, "2024-03-01"), PeriodEnd: mustParse(t, "2024-03-31")}

	assert.True(t, p.Covers(mustParse(t, "2024-03-01")))
	assert.True(t, p.Covers(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)), "time of day is ignored")
	assert.False(t, p.Covers(mustParse(t, "2024-04-01")))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}
