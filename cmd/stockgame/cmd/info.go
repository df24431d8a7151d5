package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <ticker>",
	Short: "Retrieve current data for a stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	g, store, err := newGame()
	if err != nil {
		return err
	}
	defer store.Close()

	q, err := g.StockInfo(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("stock info: %w", err)
	}

	arrow := "↑"
	if q.PercentChange.IsNegative() {
		arrow = "↓"
	}
	fmt.Printf("%s  $%s  %s%% %s\n", q.Symbol, q.Price.StringFixed(2), q.PercentChange.StringFixed(2), arrow)
	return nil
}
