package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newColumnsCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "list the columns in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.Open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open records: %w", err)
			}

			cols := a.Catalog.All()
			rows := make([][]string, len(cols))
			for i, c := range cols {
				rows[i] = []string{c.Name, c.Label, c.Type.String()}
			}
			fmt.Fprintln(opts.Out, renderTable([]string{"NAME", "LABEL", "TYPE"}, rows))
			return nil
		},
	}
}
