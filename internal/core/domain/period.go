package domain

import "time"

// PeriodStatus is the state of an accounting period. Only locked periods are stored.
type PeriodStatus string

const (
	PeriodLocked PeriodStatus = "locked"
)

// AccountingPeriod marks a date range of an organization as locked.
// Existence of the row is the lock; deleting it unlocks.
type AccountingPeriod struct {
	PeriodID       string       `json:"periodID"`
	OrganizationID string       `json:"organizationID"`
	PeriodStart    time.Time    `json:"periodStart"`
	PeriodEnd      time.Time    `json:"periodEnd"`
	Status         PeriodStatus `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	CreatedBy      string       `json:"createdBy"`
}

// Covers reports whether date falls within the period, bounds inclusive.
func (p AccountingPeriod) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.PeriodStart) && !d.After(p.PeriodEnd)
}
