package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KhiemNguyen15/StockMarketGame/ledger"
)

var buyCmd = &cobra.Command{
	Use:   "buy <ticker> [quantity]",
	Short: "Purchase stocks",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBuy,
}

func init() {
	rootCmd.AddCommand(buyCmd)
}

func runBuy(cmd *cobra.Command, args []string) error {
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

	r, err := g.Buy(cmd.Context(), userKey, args[0], qty)
	if ledger.IsRejected(err) {
		fmt.Println("Insufficient funds.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}

	fmt.Printf("Purchased %d %s for $%s. Balance: $%s\n",
		r.Quantity, r.Symbol, r.Total.StringFixed(2), r.Balance.StringFixed(2))
	return nil
}

// parseQuantity reads the optional quantity argument, defaulting to 1.
func parseQuantity(args []string) (int64, error) {
	if len(args) < 2 {
		return 1, nil
	}
	qty, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || qty < 1 {
		return 0, fmt.Errorf("invalid quantity %q", args[1])
	}
	return qty, nil
}
