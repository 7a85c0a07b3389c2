package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// StatementReader defines read operations for statement headers
type StatementReader interface {
	// FindStatementByID retrieves a statement of an organization by its ID.
	FindStatementByID(ctx context.Context, organizationID, statementID string) (*domain.Statement, error)

	// ListStatementsByAccount retrieves an account's statements, newest first, using token-based pagination.
	// It returns the statements, a token for the next page, and an error.
	ListStatementsByAccount(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.Statement, *string, error)

	// FindStatementsOverlapping retrieves statements whose [start_date, end_date] intersects [start, end].
	FindStatementsOverlapping(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.Statement, error)
}

// StatementWriter defines write operations for statement headers
type StatementWriter interface {
	// SaveStatement persists a new statement header.
	SaveStatement(ctx context.Context, statement domain.Statement) error
}

// StatementLineReader defines read operations for statement lines
type StatementLineReader interface {
	// FindLinesByStatementID retrieves all lines of a statement in line-date order.
	FindLinesByStatementID(ctx context.Context, statementID string) ([]domain.StatementLine, error)

	// FindLinesInRange retrieves lines of the given statements with line_date inside [start, end].
	FindLinesInRange(ctx context.Context, statementIDs []string, start, end time.Time) ([]domain.StatementLine, error)

	// FindUnmatchedLines retrieves the account's lines inside [start, end] that are not flagged as matched.
	FindUnmatchedLines(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error)
}

// StatementLineWriter defines write operations for statement lines
type StatementLineWriter interface {
	// InsertStatementLines persists one batch of lines and returns how many rows were newly stored.
	// Rows whose hash already exists are not stored again. A store that rejects the batch on a
	// unique violation instead returns an error wrapping apperrors.ErrDuplicate.
	InsertStatementLines(ctx context.Context, lines []domain.StatementLine) (int, error)

	// MarkLinesMatched flags lines as matched and stamps reconciled_at.
	MarkLinesMatched(ctx context.Context, lineIDs []string, reconciledAt time.Time) error
}

// StatementRepositoryFacade combines all statement-related repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
	StatementLineReader
	StatementLineWriter
}
