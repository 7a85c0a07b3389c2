package services_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
)

var errStoreDown = errors.New("connection reset by peer")

// memStore is an in-memory store enforcing the same unique constraints as the schema:
// line hash, (organization, account, period) per reconciliation, (reconciliation, line) per match and
// (organization, period) per lock.
type memStore struct {
	mu sync.Mutex

	statements      []domain.Statement
	lines           []domain.StatementLine
	reconciliations []domain.Reconciliation
	matches         []domain.ReconciliationMatch
	periods         []domain.AccountingPeriod
	txns            []domain.LedgerTransaction

	lineInsertCalls  int
	failLineInsertAt int // 1-based call number that fails, 0 disables
	failMarkMatched  bool
}

var (
	_ portsrepo.StatementRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.ReconciliationRepositoryFacade = (*memStore)(nil)
	_ portsrepo.LedgerReader                   = (*memStore)(nil)
	_ portsrepo.PeriodRepositoryFacade         = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{}
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// sortLines orders lines the way the SQL store does: line date, import time, then file position.
func sortLines(lines []domain.StatementLine) []domain.StatementLine {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.LineDate.Equal(b.LineDate) {
			return a.LineDate.Before(b.LineDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LineNo < b.LineNo
	})
	return lines
}

func (m *memStore) FindStatementByID(_ context.Context, organizationID, statementID string) (*domain.Statement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.statements {
		if s.OrganizationID == organizationID && s.StatementID == statementID {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListStatementsByAccount(_ context.Context, organizationID, accountID string, limit int, _ *string) ([]domain.Statement, *string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Statement
	for _, s := range m.statements {
		if s.OrganizationID == organizationID && s.AccountID == accountID {
			out = append(out, s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (m *memStore) FindStatementsOverlapping(_ context.Context, organizationID, accountID string, start, end time.Time) ([]domain.Statement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Statement
	for _, s := range m.statements {
		if s.OrganizationID == organizationID && s.AccountID == accountID && s.Overlaps(start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SaveStatement(_ context.Context, statement domain.Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements = append(m.statements, statement)
	return nil
}

func (m *memStore) FindLinesByStatementID(_ context.Context, statementID string) ([]domain.StatementLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.StatementLine
	for _, l := range m.lines {
		if l.StatementID == statementID {
			out = append(out, l)
		}
	}
	return sortLines(out), nil
}

func (m *memStore) FindLinesInRange(_ context.Context, statementIDs []string, start, end time.Time) ([]domain.StatementLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.StatementLine
	for _, l := range m.lines {
		if slices.Contains(statementIDs, l.StatementID) && inRange(l.LineDate, start, end) {
			out = append(out, l)
		}
	}
	return sortLines(out), nil
}

func (m *memStore) FindUnmatchedLines(_ context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := map[string]bool{}
	for _, s := range m.statements {
		if s.OrganizationID == organizationID && s.AccountID == accountID {
			owned[s.StatementID] = true
		}
	}
	var out []domain.StatementLine
	for _, l := range m.lines {
		if owned[l.StatementID] && !l.Matched && inRange(l.LineDate, start, end) {
			out = append(out, l)
		}
	}
	return sortLines(out), nil
}

func (m *memStore) InsertStatementLines(_ context.Context, lines []domain.StatementLine) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lineInsertCalls++
	if m.failLineInsertAt > 0 && m.lineInsertCalls == m.failLineInsertAt {
		return 0, errStoreDown
	}
	inserted := 0
	for _, l := range lines {
		if slices.ContainsFunc(m.lines, func(existing domain.StatementLine) bool { return existing.Hash == l.Hash }) {
			continue
		}
		m.lines = append(m.lines, l)
		inserted++
	}
	return inserted, nil
}

func (m *memStore) MarkLinesMatched(_ context.Context, lineIDs []string, reconciledAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMarkMatched {
		return errStoreDown
	}
	for i := range m.lines {
		if slices.Contains(lineIDs, m.lines[i].LineID) {
			at := reconciledAt
			m.lines[i].Matched = true
			m.lines[i].ReconciledAt = &at
		}
	}
	return nil
}

func (m *memStore) ListTransactionsByAccount(_ context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LedgerTransaction
	for _, t := range m.txns {
		if t.OrganizationID != organizationID || t.AccountID != accountID {
			continue
		}
		if from != nil && t.TransactionDate.Before(*from) {
			continue
		}
		if to != nil && t.TransactionDate.After(*to) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.Before(out[j].TransactionDate)
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	return out, nil
}

func (m *memStore) FindReconciliation(_ context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.Reconciliation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reconciliations {
		if r.OrganizationID == organizationID && r.AccountID == accountID && r.PeriodStart.Equal(periodStart) && r.PeriodEnd.Equal(periodEnd) {
			found := r
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindReconciliationByID(_ context.Context, organizationID, reconciliationID string) (*domain.Reconciliation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reconciliations {
		if r.OrganizationID == organizationID && r.ReconciliationID == reconciliationID {
			found := r
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindMatchesByReconciliationID(_ context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ReconciliationMatch
	for _, match := range m.matches {
		if match.ReconciliationID == reconciliationID {
			out = append(out, match)
		}
	}
	return out, nil
}

func (m *memStore) SaveReconciliation(_ context.Context, reconciliation domain.Reconciliation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reconciliations {
		if r.OrganizationID == reconciliation.OrganizationID && r.AccountID == reconciliation.AccountID && r.PeriodStart.Equal(reconciliation.PeriodStart) && r.PeriodEnd.Equal(reconciliation.PeriodEnd) {
			return apperrors.ErrDuplicate
		}
	}
	m.reconciliations = append(m.reconciliations, reconciliation)
	return nil
}

func (m *memStore) InsertMatches(_ context.Context, matches []domain.ReconciliationMatch) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, match := range matches {
		if slices.ContainsFunc(m.matches, func(existing domain.ReconciliationMatch) bool {
			return existing.ReconciliationID == match.ReconciliationID && existing.StatementLineID == match.StatementLineID
		}) {
			continue
		}
		m.matches = append(m.matches, match)
		inserted++
	}
	return inserted, nil
}

func (m *memStore) ListPeriods(_ context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountingPeriod
	for _, p := range m.periods {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) FindPeriodsCovering(_ context.Context, organizationID string, date time.Time) ([]domain.AccountingPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountingPeriod
	for _, p := range m.periods {
		if p.OrganizationID == organizationID && p.Covers(date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) SavePeriod(_ context.Context, period domain.AccountingPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.periods {
		if p.OrganizationID == period.OrganizationID && p.PeriodStart.Equal(period.PeriodStart) && p.PeriodEnd.Equal(period.PeriodEnd) {
			return apperrors.ErrDuplicate
		}
	}
	m.periods = append(m.periods, period)
	return nil
}

func (m *memStore) DeletePeriodsByBounds(_ context.Context, organizationID string, periodStart, periodEnd time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.periods[:0]
	var removed int64
	for _, p := range m.periods {
		if p.OrganizationID == organizationID && p.PeriodStart.Equal(periodStart) && p.PeriodEnd.Equal(periodEnd) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	m.periods = kept
	return removed, nil
}

func (m *memStore) lineCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}
