package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Display your current stocks",
	Args:  cobra.NoArgs,
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	g, store, err := newGame()
	if err != nil {
		return err
	}
	defer store.Close()

	holdings, err := g.Portfolio(userKey)
	if err != nil {
		return fmt.Errorf("get portfolio: %w", err)
	}

	if len(holdings) == 0 {
		fmt.Println("No stocks to display.")
		return nil
	}

	for _, h := range holdings {
		fmt.Printf("%-8s %d\n", h.Symbol, h.Quantity)
	}
	return nil
}
