package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-categorizer/internal/categorize"
)

func newCategorizeCmd() *cobra.Command {
	var listLabels bool

	cmd := &cobra.Command{
		Use:   "categorize DESCRIPTION [AMOUNT]",
		Short: "Print the category for a transaction description",
		Example: `  statement-categorizer categorize "STARBUCKS STORE 1234" 5.25
  statement-categorizer categorize -- "Payment Thank You-Mobile" -500.00
  statement-categorizer categorize --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if listLabels {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listLabels {
				for _, label := range categorize.Labels() {
					fmt.Fprintln(out, label)
				}
				return nil
			}

			amount := decimal.Zero
			if len(args) == 2 {
				var err error
				amount, err = decimal.NewFromString(args[1])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[1], err)
				}
			}
			fmt.Fprintln(out, categorize.Categorize(args[0], amount))
			return nil
		},
	}

	cmd.Flags().BoolVar(&listLabels, "list", false, "List every category label in rule order")
	return cmd
}
