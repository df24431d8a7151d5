package main

import (
	"os"

	"github.com/KhiemNguyen15/StockMarketGame/cmd/stockgame/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
