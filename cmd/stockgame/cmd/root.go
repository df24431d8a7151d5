package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/KhiemNguyen15/StockMarketGame/config"
	"github.com/KhiemNguyen15/StockMarketGame/game"
	"github.com/KhiemNguyen15/StockMarketGame/ledger"
	"github.com/KhiemNguyen15/StockMarketGame/quote"
)

var rootCmd = &cobra.Command{
	Use:   "stockgame",
	Short: "A stock-market paper trading game",
	Long: `Stockgame is a paper trading game with play money.

It provides commands for:
  - Looking up live stock quotes
  - Buying and selling shares with a simulated cash balance
  - Inspecting your balance, portfolio and transaction history

Every player starts with a configurable cash balance and all trades are
recorded in a durable SQLite ledger.`,
}

var (
	cfgFile string
	userKey string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVarP(&userKey, "user", "u", "", "user key to play as")
}

// newGame builds the game from configuration. The caller owns the
// returned store and must close it.
func newGame() (*game.Game, ledger.Store, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	starting := decimal.NewFromFloat(cfg.Game.StartingBalance).Round(2)
	store, err := ledger.NewSQLite(cfg.Database.Path, starting)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	var quotes quote.Source
	switch cfg.Quotes.Provider {
	case "alphavantage":
		timeout, err := cfg.Quotes.ParseTimeout()
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		quotes = quote.NewAlphaVantage(cfg.Quotes.APIKey, timeout)
	default:
		quotes = demoQuotes()
	}

	return game.New(store, quotes), store, nil
}

// demoQuotes seeds a handful of symbols so the static provider is
// playable out of the box.
func demoQuotes() *quote.Static {
	s := quote.NewStatic()
	s.Set("AAPL", decimal.NewFromFloat(185.50), decimal.NewFromFloat(0.42))
	s.Set("MSFT", decimal.NewFromFloat(410.25), decimal.NewFromFloat(-0.17))
	s.Set("GME", decimal.NewFromFloat(24.80), decimal.NewFromFloat(3.05))
	return s
}

func requireUser() error {
	if userKey == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}
