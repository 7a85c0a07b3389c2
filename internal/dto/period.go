package dto

import (
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// PeriodRangeRequest defines the body for locking or unlocking an accounting period.
type PeriodRangeRequest struct {
	PeriodStart string `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
}

// PeriodStatusParams defines the query for checking a single date.
type PeriodStatusParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse defines the data returned for a locked period.
type PeriodResponse struct {
	PeriodID    string    `json:"periodID"`
	PeriodStart string    `json:"periodStart"`
	PeriodEnd   string    `json:"periodEnd"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListPeriodsResponse wraps the locked periods of an organization.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// UnlockPeriodResponse reports how many locks were removed.
type UnlockPeriodResponse struct {
	Removed int64 `json:"removed"`
}

// PeriodStatusResponse reports whether a date falls in a locked period.
type PeriodStatusResponse struct {
	Date   string `json:"date"`
	Locked bool   `json:"locked"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:    p.PeriodID,
		PeriodStart: p.PeriodStart.Format(domain.DateLayout),
		PeriodEnd:   p.PeriodEnd.Format(domain.DateLayout),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}

// ToListPeriodsResponse converts locked periods to ListPeriodsResponse DTO.
func ToListPeriodsResponse(periods []domain.AccountingPeriod) ListPeriodsResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return ListPeriodsResponse{Periods: res}
}
