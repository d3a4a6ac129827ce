// Package commands implements the recordctl command tree.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/searchtable/internal/app"
	"github.com/JonMunkholm/searchtable/internal/config"
	"github.com/JonMunkholm/searchtable/internal/logging"
)

const version = "0.1.0"

// Options are the dependencies of the command tree.
type Options struct {
	// Open loads the record set the commands run against.
	Open func(ctx context.Context) (*app.App, error)
	Out  io.Writer
	Err  io.Writer
}

// DefaultOptions loads configuration from the environment and logs to stderr,
// keeping stdout clean for exported data.
func DefaultOptions() Options {
	return Options{
		Open: func(ctx context.Context) (*app.App, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)))
			return app.Open(ctx, cfg)
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// NewRootCmd builds the recordctl command tree.
func NewRootCmd(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:     "recordctl",
		Short:   "Query, filter and export records",
		Version: version,
		Long: `A command-line tool for the record query engine. Runs the same search,
column filter, sort and pagination pipeline as the web server against the
configured record source (PostgreSQL when DATABASE_URL is set, generated
records otherwise).`,
		Example: `  # First page sorted by amount, largest first
  $ recordctl query --sort-by Amount --sort-dir desc

  # Column filters are substrings, matched case-insensitively
  $ recordctl query --col Status=物流 --col Field03=デニム

  # Suggestions for a column under the current filters
  $ recordctl suggest Category --col Status=輸入

  # Export every matching record
  $ recordctl export --category 原料部 -f orders.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.AddCommand(
		newQueryCmd(opts),
		newSuggestCmd(opts),
		newExportCmd(opts),
		newColumnsCmd(opts),
	)
	return root
}

// Execute runs recordctl with the default options.
func Execute() error {
	return NewRootCmd(DefaultOptions()).Execute()
}
