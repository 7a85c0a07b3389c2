package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	store   *memStore
	service portssvc.PeriodSvcFacade
	orgID   string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.service = services.NewPeriodService(suite.store, services.WithPeriodClock(fixedClock))
	suite.orgID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestLockPeriod() {
	ctx := context.Background()

	period, err := suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(period.PeriodID)
	suite.Equal(domain.PeriodLocked, period.Status)
	suite.Equal("user-1", period.CreatedBy)
	suite.Equal(fixedNow, period.CreatedAt)

	periods, err := suite.service.ListLockedPeriods(ctx, suite.orgID)
	suite.Require().NoError(err)
	suite.Len(periods, 1)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_IdenticalLockIsDuplicate() {
	ctx := context.Background()
	_, err := suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.Require().NoError(err)

	_, err = suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	// overlapping but different bounds are allowed
	_, err = suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-15"), day("2024-02-15"), "user-1")
	suite.NoError(err)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_InvalidRange() {
	_, err := suite.service.LockPeriod(context.Background(), suite.orgID, day("2024-02-01"), day("2024-01-01"), "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidRange)
	suite.Empty(suite.store.periods)
}

func (suite *PeriodServiceTestSuite) TestUnlockPeriod() {
	ctx := context.Background()
	_, err := suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.Require().NoError(err)

	locked, err := suite.service.IsDateLocked(ctx, suite.orgID, day("2024-01-31"))
	suite.Require().NoError(err)
	suite.True(locked)

	removed, err := suite.service.UnlockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"))
	suite.Require().NoError(err)
	suite.EqualValues(1, removed)

	locked, err = suite.service.IsDateLocked(ctx, suite.orgID, day("2024-01-31"))
	suite.Require().NoError(err)
	suite.False(locked)

	removed, err = suite.service.UnlockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"))
	suite.Require().NoError(err)
	suite.Zero(removed, "unlocking a period that is not locked is a no-op")
}

func (suite *PeriodServiceTestSuite) TestUnlockPeriod_ExactBoundsOnly() {
	ctx := context.Background()
	_, err := suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.Require().NoError(err)

	removed, err := suite.service.UnlockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-30"))
	suite.Require().NoError(err)
	suite.Zero(removed)
	suite.Len(suite.store.periods, 1)
}

func (suite *PeriodServiceTestSuite) TestUnlockPeriod_RequiresOrganization() {
	ctx := context.Background()
	_, err := suite.service.LockPeriod(ctx, suite.orgID, day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.Require().NoError(err)

	removed, err := suite.service.UnlockPeriod(ctx, "", day("2024-01-01"), day("2024-01-31"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(removed)
	suite.Len(suite.store.periods, 1)

	_, err = suite.service.LockPeriod(ctx, "", day("2024-01-01"), day("2024-01-31"), "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
