package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Display your current balance",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	g, store, err := newGame()
	if err != nil {
		return err
	}
	defer store.Close()

	bal, err := g.Balance(userKey)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}

	fmt.Printf("$%s\n", bal.StringFixed(2))
	return nil
}
