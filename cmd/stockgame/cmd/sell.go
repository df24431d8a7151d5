package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KhiemNguyen15/StockMarketGame/ledger"
)

var sellCmd = &cobra.Command{
	Use:   "sell <ticker> [quantity]",
	Short: "Sell your stocks",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSell,
}

func init() {
	rootCmd.AddCommand(sellCmd)
}

func runSell(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	qty, err := parseQuantity(args)
	if err != nil {
		return err
	}

	g, store, err := newGame()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := g.Sell(cmd.Context(), userKey, args[0], qty)
	if ledger.IsRejected(err) {
		fmt.Println("Insufficient shares.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sell: %w", err)
	}

	fmt.Printf("Sold %d %s for $%s. Balance: $%s\n",
		r.Quantity, r.Symbol, r.Total.StringFixed(2), r.Balance.StringFixed(2))
	return nil
}
