package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainStatementLine_NormalizesDateAndKeepsNulls(t *testing.T) {
	local := time.FixedZone("IST", 5*3600+1800)
	m := models.StatementLine{
		LineID:   "l1",
		LineDate: time.Date(2024, 1, 5, 0, 0, 0, 0, local),
		Debit:    decimal.Zero,
		Credit:   decimal.NewFromInt(10),
	}

	d := ToDomainStatementLine(m)

	assert.Equal(t, "2024-01-05", d.LineDate.Format("2006-01-02"))
	assert.Equal(t, time.UTC, d.LineDate.Location())
	assert.Nil(t, d.Balance)
	assert.Nil(t, d.ExternalReference)
	assert.Nil(t, d.ReconciledAt)
}

func TestToDomainLedgerTransaction(t *testing.T) {
	d := ToDomainLedgerTransaction(models.AccountTransaction{
		TransactionID:   "t1",
		TransactionDate: time.Date(2024, 3, 2, 15, 4, 0, 0, time.UTC),
		ReferenceType:   "receipt_payment",
	})

	require.Equal(t, "t1", d.TransactionID)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), d.TransactionDate)
	assert.EqualValues(t, "receipt_payment", d.ReferenceType)
}
