package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/core/services"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
	"github.com/SscSPs/bank_recon_engine/internal/platform/config"
	"github.com/SscSPs/bank_recon_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_recon_engine/internal/utils/statementcsv"
	"github.com/SscSPs/bank_recon_engine/pkg/database"
	"github.com/spf13/pflag"
)

const cliUserID = "recon-cli"

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runTemplate(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("template")
	format := fs.String("format", "csv", "template format: csv or xlsx")
	target := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		content []byte
		err     error
	)
	switch *format {
	case "csv":
		content, err = statementcsv.TemplateCSV()
	case "xlsx":
		content, err = statementcsv.TemplateXLSX()
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}
	if err != nil {
		return err
	}

	if *target == "" {
		_, err = out.Write(content)
		return err
	}
	return os.WriteFile(*target, content, 0o644)
}

func runParse(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("parse")
	file := fs.String("file", "", "statement file to parse")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("--file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := statementcsv.ParseReader(f)
	if err != nil {
		return err
	}
	lines := make([]dto.StatementLineResponse, len(result.Lines))
	for i := range result.Lines {
		lines[i] = dto.ToStatementLineResponse(&domain.StatementLine{ParsedLine: result.Lines[i]})
	}
	return writeJSON(out, map[string]any{
		"lines":       lines,
		"skippedRows": result.SkippedRows,
	})
}

// withServices loads configuration, opens the pool and hands a service container to fn.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	return fn(services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)))
}

func runImport(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("import")
	org := fs.String("org", "", "organization ID")
	account := fs.String("account", "", "bank account ID")
	file := fs.String("file", "", "statement file to import")
	name := fs.String("name", "", "statement name (default file name)")
	user := fs.String("user", cliUserID, "acting user ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" || *account == "" || *file == "" {
		return errors.New("--org, --account and --file are required")
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	if *name == "" {
		*name = filepath.Base(*file)
	}

	return withServices(ctx, func(svc *portssvc.ServiceContainer) error {
		result, err := svc.Statement.ParseAndImport(ctx, *org, *account, *name, content, *user)
		if err != nil {
			return err
		}
		slog.Info("Statement imported", slog.String("statement_id", result.StatementID))
		return writeJSON(out, dto.ToImportStatementResponse(result))
	})
}

// periodFlags registers the shared --org/--from/--to/--user flags.
type periodFlags struct {
	org, from, to, user *string
}

func addPeriodFlags(fs *pflag.FlagSet) periodFlags {
	return periodFlags{
		org:  fs.String("org", "", "organization ID"),
		from: fs.String("from", "", "period start (YYYY-MM-DD)"),
		to:   fs.String("to", "", "period end (YYYY-MM-DD)"),
		user: fs.String("user", cliUserID, "acting user ID"),
	}
}

func (p periodFlags) bounds() (time.Time, time.Time, error) {
	if *p.org == "" {
		return time.Time{}, time.Time{}, errors.New("--org is required")
	}
	start, err := domain.ParseDate(*p.from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
	}
	end, err := domain.ParseDate(*p.to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
	}
	return start, end, nil
}

func runReconcile(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("reconcile")
	pf := addPeriodFlags(fs)
	account := fs.String("account", "", "bank account ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	start, end, err := pf.bounds()
	if err != nil {
		return err
	}
	if *account == "" {
		return errors.New("--account is required")
	}

	return withServices(ctx, func(svc *portssvc.ServiceContainer) error {
		result, err := svc.Reconciliation.AutoReconcile(ctx, *pf.org, *account, start, end, *pf.user)
		if err != nil {
			return err
		}
		return writeJSON(out, dto.ToReconcileResponse(result))
	})
}

func runLock(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("lock")
	pf := addPeriodFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	start, end, err := pf.bounds()
	if err != nil {
		return err
	}

	return withServices(ctx, func(svc *portssvc.ServiceContainer) error {
		period, err := svc.Period.LockPeriod(ctx, *pf.org, start, end, *pf.user)
		if err != nil {
			return err
		}
		return writeJSON(out, dto.ToPeriodResponse(period))
	})
}

func runUnlock(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("unlock")
	pf := addPeriodFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	start, end, err := pf.bounds()
	if err != nil {
		return err
	}

	return withServices(ctx, func(svc *portssvc.ServiceContainer) error {
		removed, err := svc.Period.UnlockPeriod(ctx, *pf.org, start, end)
		if err != nil {
			return err
		}
		return writeJSON(out, dto.UnlockPeriodResponse{Removed: removed})
	})
}
