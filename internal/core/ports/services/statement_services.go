package services

import (
	"context"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
)

// StatementImportSvc defines the ingestion operations for bank statements
type StatementImportSvc interface {
	// ImportStatement creates a statement header for lines and persists the lines in batches.
	// Re-importing the same lines for the same account inserts nothing new.
	ImportStatement(ctx context.Context, organizationID, accountID, fileName string, lines []domain.ParsedLine, userID string) (*domain.ImportResult, error)

	// ParseAndImport parses a raw comma-separated export and imports the result.
	ParseAndImport(ctx context.Context, organizationID, accountID, fileName string, content []byte, userID string) (*domain.ImportResult, error)
}

// StatementReaderSvc defines read operations for imported statements
type StatementReaderSvc interface {
	// ListStatements retrieves an account's statements, newest first.
	ListStatements(ctx context.Context, organizationID, accountID string, params dto.ListStatementsParams) (*dto.ListStatementsResponse, error)

	// GetStatementLines retrieves a statement together with its lines.
	GetStatementLines(ctx context.Context, organizationID, statementID string) (*domain.Statement, []domain.StatementLine, error)
}

// StatementSvcFacade combines all statement-related service interfaces
type StatementSvcFacade interface {
	StatementImportSvc
	StatementReaderSvc
}
