package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/searchtable/internal/core"
)

func newSuggestCmd(opts Options) *cobra.Command {
	var (
		qf    queryFlags
		term  string
		limit int
		scope string
	)

	cmd := &cobra.Command{
		Use:   "suggest <column>",
		Short: "list distinct values of a column under the current filters",
		Long: `List the distinct values of a column across the records that match every
filter except the column's own --col filter.

With --scope query the search flag that maps to the column is lifted too
(Name clears --keyword and --name; Category, Status, ID and Field01 clear
their flags).`,
		Example: `  # Statuses present in one category
  $ recordctl suggest Status --category 原料部

  # Order numbers containing 2024
  $ recordctl suggest Field01 --term 2024 --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}

			a, err := opts.Open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open records: %w", err)
			}

			for _, v := range a.Engine.Suggest(args[0], q, term, limit, core.ParseScope(scope)) {
				fmt.Fprintln(opts.Out, v)
			}
			return nil
		},
	}

	qf.bind(cmd.Flags())
	cmd.Flags().StringVarP(&term, "term", "t", "", "keep values containing this text")
	cmd.Flags().IntVarP(&limit, "limit", "n", core.DefaultSuggestionLimit, "maximum number of values (at most 50)")
	cmd.Flags().StringVar(&scope, "scope", string(core.ScopeColumn), "constraints to lift: column or query")

	return cmd
}
