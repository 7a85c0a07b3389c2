package dto

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankLedgerParams defines query parameters for the banking view of an account.
type BankLedgerParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Q    string `form:"q"`
}

// BankLedgerRowResponse is one transaction in the banking view.
type BankLedgerRowResponse struct {
	TransactionID   string          `json:"transactionID"`
	TransactionDate string          `json:"transactionDate"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	DisplayDebit    decimal.Decimal `json:"displayDebit"`
	DisplayCredit   decimal.Decimal `json:"displayCredit"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// BankLedgerResponse wraps the banking view with its totals.
type BankLedgerResponse struct {
	Rows           []BankLedgerRowResponse `json:"rows"`
	TotalDebit     decimal.Decimal         `json:"totalDebit"`
	TotalCredit    decimal.Decimal         `json:"totalCredit"`
	ClosingBalance decimal.Decimal         `json:"closingBalance"`
}

// ToBankLedgerResponse converts a domain.LedgerView to BankLedgerResponse DTO.
func ToBankLedgerResponse(view *domain.LedgerView) BankLedgerResponse {
	rows := make([]BankLedgerRowResponse, len(view.Rows))
	for i, row := range view.Rows {
		rows[i] = BankLedgerRowResponse{
			TransactionID:   row.TransactionID,
			TransactionDate: row.TransactionDate.Format(domain.DateLayout),
			Description:     row.Description,
			ReferenceType:   string(row.ReferenceType),
			ReferenceID:     row.ReferenceID,
			DebitAmount:     row.DebitAmount,
			CreditAmount:    row.CreditAmount,
			DisplayDebit:    row.DisplayDebit,
			DisplayCredit:   row.DisplayCredit,
			RunningBalance:  row.RunningBalance,
		}
	}
	return BankLedgerResponse{
		Rows:           rows,
		TotalDebit:     view.TotalDebit,
		TotalCredit:    view.TotalCredit,
		ClosingBalance: view.ClosingBalance,
	}
}
