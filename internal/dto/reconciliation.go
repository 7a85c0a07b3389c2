package dto

import (
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AutoReconcileRequest defines the body for an automatic reconciliation run.
type AutoReconcileRequest struct {
	PeriodStart string `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
}

// DateRangeParams defines a required inclusive date range in the query string.
type DateRangeParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// ReconcileResponse is returned after an automatic reconciliation run.
type ReconcileResponse struct {
	ReconciliationID   string `json:"reconciliationID"`
	NewMatches         int    `json:"newMatches"`
	CandidateMatches   int    `json:"candidateMatches"`
	StatementLines     int    `json:"statementLines"`
	LedgerTransactions int    `json:"ledgerTransactions"`
	CollidingLines     int    `json:"collidingLines"`
	FlagUpdateFailed   bool   `json:"flagUpdateFailed"`
}

// MatchResponse defines the data returned for a persisted match.
type MatchResponse struct {
	MatchID              string          `json:"matchID"`
	StatementLineID      string          `json:"statementLineID"`
	AccountTransactionID string          `json:"accountTransactionID"`
	MatchAmount          decimal.Decimal `json:"matchAmount"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ReconciliationResponse is a reconciliation with its matches.
type ReconciliationResponse struct {
	ReconciliationID string          `json:"reconciliationID"`
	AccountID        string          `json:"accountID"`
	PeriodStart      string          `json:"periodStart"`
	PeriodEnd        string          `json:"periodEnd"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	Matches          []MatchResponse `json:"matches"`
}

// ToReconcileResponse converts a domain.ReconcileResult to ReconcileResponse DTO.
func ToReconcileResponse(r *domain.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		ReconciliationID:   r.ReconciliationID,
		NewMatches:         r.NewMatches,
		CandidateMatches:   r.CandidateMatches,
		StatementLines:     r.StatementLines,
		LedgerTransactions: r.LedgerTransactions,
		CollidingLines:     r.CollidingLines,
		FlagUpdateFailed:   r.FlagUpdateFailed,
	}
}

// ToReconciliationResponse converts a domain.ReconciliationDetail to ReconciliationResponse DTO.
func ToReconciliationResponse(d *domain.ReconciliationDetail) ReconciliationResponse {
	matches := make([]MatchResponse, len(d.Matches))
	for i, m := range d.Matches {
		matches[i] = MatchResponse{
			MatchID:              m.MatchID,
			StatementLineID:      m.StatementLineID,
			AccountTransactionID: m.AccountTransactionID,
			MatchAmount:          m.MatchAmount,
			CreatedAt:            m.CreatedAt,
		}
	}
	return ReconciliationResponse{
		ReconciliationID: d.ReconciliationID,
		AccountID:        d.AccountID,
		PeriodStart:      d.PeriodStart.Format(domain.DateLayout),
		PeriodEnd:        d.PeriodEnd.Format(domain.DateLayout),
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
		Matches:          matches,
	}
}
