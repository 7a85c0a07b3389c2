package accounting

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayAmounts returns the debit and credit a transaction shows in the banking view.
//
// Cash received is recorded as a debit to the bank account but shown as a credit, and
// cash paid out for expenses and purchases is recorded as a credit but shown as a debit.
// Every other reference type passes through unchanged.
func DisplayAmounts(txn domain.LedgerTransaction) (debit, credit decimal.Decimal) {
	switch txn.ReferenceType {
	case domain.RefReceiptPayment:
		return decimal.Zero, txn.DebitAmount
	case domain.RefExpense, domain.RefPurchasePayment:
		return txn.CreditAmount, decimal.Zero
	default:
		return txn.DebitAmount, txn.CreditAmount
	}
}

// MatchKeyAmount renders an amount with exactly two decimals for exact-key comparison.
func MatchKeyAmount(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
