package accounting

import (
	"strings"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildLedgerView converts date-ordered transactions of one account into the banking view.
//
// The running balance is folded over the whole input in order, starting at zero, before the
// filter is applied, so a row keeps the same balance whether or not a filter is given.
// filter is matched case-insensitively against description, reference type and the
// YYYY-MM-DD date; an empty filter keeps every row.
func BuildLedgerView(txns []domain.LedgerTransaction, filter string) domain.LedgerView {
	needle := strings.ToLower(strings.TrimSpace(filter))

	view := domain.LedgerView{
		Rows:           make([]domain.LedgerViewRow, 0, len(txns)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for _, txn := range txns {
		debit, credit := DisplayAmounts(txn)
		balance = balance.Add(credit).Sub(debit)

		if needle != "" && !matchesFilter(txn, needle) {
			continue
		}
		view.Rows = append(view.Rows, domain.LedgerViewRow{
			LedgerTransaction: txn,
			DisplayDebit:      debit,
			DisplayCredit:     credit,
			RunningBalance:    balance,
		})
		view.TotalDebit = view.TotalDebit.Add(debit)
		view.TotalCredit = view.TotalCredit.Add(credit)
	}
	view.ClosingBalance = balance

	return view
}

func matchesFilter(txn domain.LedgerTransaction, needle string) bool {
	return strings.Contains(strings.ToLower(txn.Description), needle) ||
		strings.Contains(strings.ToLower(string(txn.ReferenceType)), needle) ||
		strings.Contains(txn.TransactionDate.Format(domain.DateLayout), needle)
}
