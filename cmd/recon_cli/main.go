// Command recon_cli runs the reconciliation engine from the shell: template generation,
// offline parsing, and the import, reconcile and period-lock operations against PostgreSQL.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: recon_cli <command> [flags]

commands:
  template   write a statement template (--format csv|xlsx, --out file)
  parse      parse a statement file and print its lines as JSON (no database)
  import     parse and import a statement file for an account
  reconcile  auto-reconcile an account for a period
  lock       lock an accounting period
  unlock     unlock an accounting period

run "recon_cli <command> --help" for command flags.
`

type command func(ctx context.Context, args []string, out io.Writer) error

var commands = map[string]command{
	"template":  runTemplate,
	"parse":     runParse,
	"import":    runImport,
	"reconcile": runReconcile,
	"lock":      runLock,
	"unlock":    runUnlock,
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, os.Args[2:], os.Stdout); err != nil {
		logger.Error("Command failed", slog.String("command", os.Args[1]), slog.String("error", err.Error()))
		os.Exit(1)
	}
}
