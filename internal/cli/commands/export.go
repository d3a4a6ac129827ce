package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(opts Options) *cobra.Command {
	var (
		qf   queryFlags
		file string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write every matching record as CSV",
		Long: `Write every record matching the filters, in sort order, as comma-separated
text. Every field is quoted. The header row holds the column names.`,
		Example: `  # Export to stdout
  $ recordctl export --status 物流係

  # Export to a file
  $ recordctl export --from 2025-01-01 -f q1.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}

			a, err := opts.Open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open records: %w", err)
			}

			result, err := a.Engine.AllRecords(q)
			if err != nil {
				printUserError(opts.Err, err)
				return err
			}

			if file == "" || file == "-" {
				if err := a.Exporter.WriteDelimited(opts.Out, result.Items); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				return nil
			}

			if err := writeExportFile(file, func(w io.Writer) error {
				return a.Exporter.WriteDelimited(w, result.Items)
			}); err != nil {
				return err
			}
			fmt.Fprintf(opts.Err, "✓ exported %d records to %s\n", len(result.Items), file)
			return nil
		},
	}

	qf.bind(cmd.Flags())
	cmd.Flags().StringVarP(&file, "file", "f", "-", "output file, - for stdout")

	return cmd
}

// writeExportFile creates path and runs write against it, reporting a failed
// close as an error.
func writeExportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
