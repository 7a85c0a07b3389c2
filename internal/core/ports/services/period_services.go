package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// PeriodLockSvc defines lock and unlock of accounting periods
type PeriodLockSvc interface {
	// LockPeriod records a lock over [start, end]. An identical existing lock returns apperrors.ErrDuplicate.
	LockPeriod(ctx context.Context, organizationID string, start, end time.Time, userID string) (*domain.AccountingPeriod, error)

	// UnlockPeriod removes locks with exactly these bounds and returns how many were removed.
	UnlockPeriod(ctx context.Context, organizationID string, start, end time.Time) (int64, error)
}

// PeriodReaderSvc defines read operations for accounting period locks
type PeriodReaderSvc interface {
	ListLockedPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)

	// IsDateLocked reports whether any lock covers date. Locks are advisory.
	IsDateLocked(ctx context.Context, organizationID string, date time.Time) (bool, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodLockSvc
	PeriodReaderSvc
}
