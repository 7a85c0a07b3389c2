package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, organizationID, statementID string) (*domain.Statement, error) {
	args := m.Called(ctx, organizationID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) ListStatementsByAccount(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	args := m.Called(ctx, organizationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Statement), returnedNextToken, args.Error(2)
}

func (m *MockStatementRepository) FindStatementsOverlapping(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.Statement, error) {
	args := m.Called(ctx, organizationID, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) FindLinesByStatementID(ctx context.Context, statementID string) ([]domain.StatementLine, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementLine), args.Error(1)
}

func (m *MockStatementRepository) FindLinesInRange(ctx context.Context, statementIDs []string, start, end time.Time) ([]domain.StatementLine, error) {
	args := m.Called(ctx, statementIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementLine), args.Error(1)
}

func (m *MockStatementRepository) FindUnmatchedLines(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error) {
	args := m.Called(ctx, organizationID, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementLine), args.Error(1)
}

func (m *MockStatementRepository) InsertStatementLines(ctx context.Context, lines []domain.StatementLine) (int, error) {
	args := m.Called(ctx, lines)
	return args.Int(0), args.Error(1)
}

func (m *MockStatementRepository) MarkLinesMatched(ctx context.Context, lineIDs []string, reconciledAt time.Time) error {
	args := m.Called(ctx, lineIDs, reconciledAt)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliation(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.Reconciliation, error) {
	args := m.Called(ctx, organizationID, accountID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, organizationID, reconciliationID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, organizationID, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindMatchesByReconciliationID(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationMatch), args.Error(1)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, reconciliation domain.Reconciliation) error {
	args := m.Called(ctx, reconciliation)
	return args.Error(0)
}

func (m *MockReconciliationRepository) InsertMatches(ctx context.Context, matches []domain.ReconciliationMatch) (int, error) {
	args := m.Called(ctx, matches)
	return args.Int(0), args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerReader = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListTransactionsByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

// --- helpers ---

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parsedLine(date, description, debit, credit string) domain.ParsedLine {
	return domain.ParsedLine{
		LineDate:    day(date),
		Description: description,
		Debit:       dec(debit),
		Credit:      dec(credit),
	}
}
