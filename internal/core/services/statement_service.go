package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
	"github.com/SscSPs/bank_recon_engine/internal/utils/statementcsv"
)

const (
	DefaultImportBatchSize = 500
	defaultListLimit       = 20
)

// statementService ingests bank statement files and serves imported statements.
type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepositoryFacade
	batchSize     int
	parallelism   int
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithImportBatchSize sets how many lines are written per insert call.
func WithImportBatchSize(size int) StatementServiceOption {
	return func(s *statementService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithImportParallelism sets how many line batches may be written concurrently.
func WithImportParallelism(n int) StatementServiceOption {
	return func(s *statementService) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithStatementClock replaces the clock used for audit timestamps.
func WithStatementClock(now func() time.Time) StatementServiceOption {
	return func(s *statementService) {
		s.now = now
	}
}

// NewStatementService creates a new statement service with the provided options
func NewStatementService(repo portsrepo.StatementRepositoryFacade, options ...StatementServiceOption) portssvc.StatementSvcFacade {
	svc := &statementService{
		statementRepo: repo,
		batchSize:     DefaultImportBatchSize,
		parallelism:   1,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// ParseAndImport parses a CSV or XLSX file and imports the resulting lines.
func (s *statementService) ParseAndImport(ctx context.Context, organizationID, accountID, fileName string, content []byte, userID string) (*domain.ImportResult, error) {
	parsed, err := statementcsv.ParseFile(content)
	if err != nil {
		s.LogWarn(ctx, "Statement workbook could not be read",
			slog.String("account_id", accountID),
			slog.String("file_name", fileName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: unreadable statement workbook: %w", apperrors.ErrValidation, err)
	}
	if len(parsed.Lines) == 0 {
		s.LogInfo(ctx, "Statement file has no importable lines",
			slog.String("account_id", accountID),
			slog.String("file_name", fileName),
			slog.Int("skipped_rows", parsed.SkippedRows))
		return nil, apperrors.ErrEmptyImport
	}

	result, err := s.ImportStatement(ctx, organizationID, accountID, fileName, parsed.Lines, userID)
	if err != nil {
		return nil, err
	}
	result.SkippedRows = parsed.SkippedRows
	return result, nil
}

// ImportStatement persists a statement header and its lines.
// Lines are written in batches; a batch rejected as duplicate counts as already imported,
// any other failure aborts the remaining batches and leaves the written ones in place.
func (s *statementService) ImportStatement(ctx context.Context, organizationID, accountID, fileName string, lines []domain.ParsedLine, userID string) (*domain.ImportResult, error) {
	if organizationID == "" || accountID == "" {
		return nil, fmt.Errorf("%w: organization and account are required", apperrors.ErrValidation)
	}
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	startDate, endDate := lineBounds(lines)
	now := s.Now()
	if fileName == "" {
		fileName = "statement-" + now.Format(domain.DateLayout)
	}

	statement := domain.Statement{
		StatementID:    uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      accountID,
		Name:           fileName,
		StartDate:      startDate,
		EndDate:        endDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.statementRepo.SaveStatement(ctx, statement); err != nil {
		s.LogError(ctx, err, "Failed to create statement",
			slog.String("account_id", accountID),
			slog.String("file_name", fileName))
		return nil, fmt.Errorf("%w: failed to create statement: %w", apperrors.ErrPersistence, err)
	}

	rows := make([]domain.StatementLine, len(lines))
	for i, line := range lines {
		line.LineDate = domain.DateOnly(line.LineDate)
		rows[i] = domain.StatementLine{
			LineID:      uuid.NewString(),
			StatementID: statement.StatementID,
			LineNo:      i,
			ParsedLine:  line,
			Hash:        statementcsv.LineHash(accountID, i, line),
			CreatedAt:   now,
		}
	}

	inserted, err := s.insertLineBatches(ctx, statement.StatementID, rows)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{
		StatementID:    statement.StatementID,
		TotalLines:     len(rows),
		InsertedLines:  inserted,
		DuplicateLines: len(rows) - inserted,
		StartDate:      startDate,
		EndDate:        endDate,
	}
	s.LogInfo(ctx, "Statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.String("account_id", accountID),
		slog.Int("total_lines", result.TotalLines),
		slog.Int("inserted_lines", result.InsertedLines),
		slog.Int("duplicate_lines", result.DuplicateLines))
	return result, nil
}

func (s *statementService) insertLineBatches(ctx context.Context, statementID string, rows []domain.StatementLine) (int, error) {
	var inserted atomic.Int64

	insertBatch := func(ctx context.Context, idx int, batch []domain.StatementLine) error {
		n, err := s.statementRepo.InsertStatementLines(ctx, batch)
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Line batch already imported",
				slog.String("statement_id", statementID),
				slog.Int("batch", idx))
			return nil
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to insert statement lines",
				slog.String("statement_id", statementID),
				slog.Int("batch", idx),
				slog.Int("batch_size", len(batch)))
			return fmt.Errorf("%w: failed to insert line batch %d: %w", apperrors.ErrPersistence, idx, err)
		}
		inserted.Add(int64(n))
		return nil
	}

	batches := chunk(rows, s.batchSize)
	if s.parallelism <= 1 || len(batches) == 1 {
		for idx, batch := range batches {
			if err := insertBatch(ctx, idx, batch); err != nil {
				return 0, err
			}
		}
		return int(inserted.Load()), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for idx, batch := range batches {
		g.Go(func() error {
			return insertBatch(gctx, idx, batch)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(inserted.Load()), nil
}

// ListStatements retrieves a page of an account's statements.
func (s *statementService) ListStatements(ctx context.Context, organizationID, accountID string, params dto.ListStatementsParams) (*dto.ListStatementsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	statements, nextToken, err := s.statementRepo.ListStatementsByAccount(ctx, organizationID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statements", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve statements: %w", err)
	}

	return &dto.ListStatementsResponse{
		Statements: dto.ToStatementResponses(statements),
		NextToken:  nextToken,
	}, nil
}

// GetStatementLines retrieves a statement of the organization and all of its lines.
func (s *statementService) GetStatementLines(ctx context.Context, organizationID, statementID string) (*domain.Statement, []domain.StatementLine, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, organizationID, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find statement", slog.String("statement_id", statementID))
		}
		return nil, nil, err
	}

	lines, err := s.statementRepo.FindLinesByStatementID(ctx, statementID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load statement lines", slog.String("statement_id", statementID))
		return nil, nil, fmt.Errorf("failed to retrieve statement lines: %w", err)
	}
	return statement, lines, nil
}

// lineBounds returns the earliest and latest line date.
func lineBounds(lines []domain.ParsedLine) (time.Time, time.Time) {
	start := domain.DateOnly(lines[0].LineDate)
	end := start
	for _, line := range lines[1:] {
		d := domain.DateOnly(line.LineDate)
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}
