package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display your past transactions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	g, store, err := newGame()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := g.History(userKey)
	if err != nil {
		return fmt.Errorf("get history: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No history to display.")
		return nil
	}

	for i, rec := range recs {
		verb := "Sold"
		if rec.Amount.IsNegative() {
			verb = "Bought"
		}
		fmt.Printf("%d. %s %d %s for $%s on %s\n",
			i+1, verb, rec.Quantity, rec.Symbol, rec.Amount.Abs().StringFixed(2), rec.Date)
	}
	return nil
}
