package models

import "time"

// AccountingPeriod is a row of accounting_periods.
type AccountingPeriod struct {
	PeriodID       string    `db:"period_id"`
	OrganizationID string    `db:"organization_id"`
	PeriodStart    time.Time `db:"period_start"`
	PeriodEnd      time.Time `db:"period_end"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}
