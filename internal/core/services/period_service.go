package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
)

// periodService manages accounting period locks. Locks are advisory metadata.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// PeriodServiceOption is a functional option for configuring the period service
type PeriodServiceOption func(*periodService)

// WithPeriodClock replaces the clock used for audit timestamps.
func WithPeriodClock(now func() time.Time) PeriodServiceOption {
	return func(s *periodService) {
		s.now = now
	}
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, options ...PeriodServiceOption) portssvc.PeriodSvcFacade {
	svc := &periodService{periodRepo: periodRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) LockPeriod(ctx context.Context, organizationID string, start, end time.Time, userID string) (*domain.AccountingPeriod, error) {
	if organizationID == "" {
		return nil, fmt.Errorf("%w: organization is required", apperrors.ErrValidation)
	}
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return nil, apperrors.ErrInvalidRange
	}

	period := domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: organizationID,
		PeriodStart:    start,
		PeriodEnd:      end,
		Status:         domain.PeriodLocked,
		CreatedAt:      s.Now(),
		CreatedBy:      userID,
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogInfo(ctx, "Period already locked",
				slog.String("period_start", start.Format(domain.DateLayout)),
				slog.String("period_end", end.Format(domain.DateLayout)))
			return nil, fmt.Errorf("period %s to %s is already locked: %w",
				start.Format(domain.DateLayout), end.Format(domain.DateLayout), err)
		}
		s.LogError(ctx, err, "Failed to lock period", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("%w: failed to lock period: %w", apperrors.ErrPersistence, err)
	}

	s.LogInfo(ctx, "Period locked",
		slog.String("period_id", period.PeriodID),
		slog.String("period_start", start.Format(domain.DateLayout)),
		slog.String("period_end", end.Format(domain.DateLayout)))
	return &period, nil
}

// UnlockPeriod deletes locks whose bounds equal [start, end]. Removing nothing is not an error.
func (s *periodService) UnlockPeriod(ctx context.Context, organizationID string, start, end time.Time) (int64, error) {
	if organizationID == "" {
		return 0, fmt.Errorf("%w: organization is required", apperrors.ErrValidation)
	}
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return 0, apperrors.ErrInvalidRange
	}

	removed, err := s.periodRepo.DeletePeriodsByBounds(ctx, organizationID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to unlock period", slog.String("organization_id", organizationID))
		return 0, fmt.Errorf("%w: failed to unlock period: %w", apperrors.ErrPersistence, err)
	}

	s.LogInfo(ctx, "Period unlocked",
		slog.String("period_start", start.Format(domain.DateLayout)),
		slog.String("period_end", end.Format(domain.DateLayout)),
		slog.Int64("removed", removed))
	return removed, nil
}

func (s *periodService) ListLockedPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve periods: %w", err)
	}
	return periods, nil
}

func (s *periodService) IsDateLocked(ctx context.Context, organizationID string, date time.Time) (bool, error) {
	periods, err := s.periodRepo.FindPeriodsCovering(ctx, organizationID, domain.DateOnly(date))
	if err != nil {
		s.LogError(ctx, err, "Failed to check period lock", slog.String("organization_id", organizationID))
		return false, fmt.Errorf("failed to check period lock: %w", err)
	}
	return len(periods) > 0, nil
}
