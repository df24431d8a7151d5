// Package game composes ledger and quote operations into the player
// workflows: look up a stock, buy, sell, inspect balance, portfolio and
// history. It owns no state of its own; everything durable lives in the
// ledger.
package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KhiemNguyen15/StockMarketGame/id"
	"github.com/KhiemNguyen15/StockMarketGame/ledger"
	"github.com/KhiemNguyen15/StockMarketGame/quote"
)

// ErrInvalidQuantity means a buy or sell asked for fewer than one
// share.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Quote is the two numbers the game shows for a symbol.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	PercentChange decimal.Decimal
}

// Receipt summarizes a completed buy or sell.
type Receipt struct {
	Ref      string
	Symbol   string
	Quantity int64
	Price    decimal.Decimal
	Total    decimal.Decimal
	Balance  decimal.Decimal
}

// Game wires a ledger store and a quote source together.
type Game struct {
	store  ledger.Store
	quotes quote.Source
	now    func() time.Time
}

// New returns a Game over the given store and quote source.
func New(store ledger.Store, quotes quote.Source) *Game {
	return &Game{store: store, quotes: quotes, now: time.Now}
}

// StockInfo returns the current price and percent change for symbol.
func (g *Game) StockInfo(ctx context.Context, symbol string) (Quote, error) {
	symbol = normalize(symbol)

	price, err := g.quotes.Price(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	change, err := g.quotes.PercentChange(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Symbol: symbol, Price: price, PercentChange: change}, nil
}

// Balance returns the user's cash balance.
func (g *Game) Balance(userKey string) (decimal.Decimal, error) {
	return g.store.Balance(userKey)
}

// Buy purchases qty shares of symbol at the current price. The cash
// debit, share credit and history record commit as one atomic unit;
// insufficient funds reject the whole trade.
func (g *Game) Buy(ctx context.Context, userKey, symbol string, qty int64) (Receipt, error) {
	if qty < 1 {
		return Receipt{}, ErrInvalidQuantity
	}
	symbol = normalize(symbol)

	price, err := g.quotes.Price(ctx, symbol)
	if err != nil {
		return Receipt{}, err
	}
	cost := price.Mul(decimal.NewFromInt(qty)).Round(2)

	req := ledger.TradeRequest{
		Ref:     id.New(),
		UserKey: userKey,
		Symbol:  symbol,
		Shares:  qty,
		Cash:    cost.Neg(),
		Date:    g.now().Format("2006-01-02"),
	}
	if err := g.store.Trade(req); err != nil {
		return Receipt{}, err
	}

	return g.receipt(req, price, cost)
}

// Sell disposes of qty shares of symbol at the current price.
// Insufficient shares reject the whole trade; a rejected or failed
// trade leaves balance and holdings untouched.
func (g *Game) Sell(ctx context.Context, userKey, symbol string, qty int64) (Receipt, error) {
	if qty < 1 {
		return Receipt{}, ErrInvalidQuantity
	}
	symbol = normalize(symbol)

	price, err := g.quotes.Price(ctx, symbol)
	if err != nil {
		return Receipt{}, err
	}
	proceeds := price.Mul(decimal.NewFromInt(qty)).Round(2)

	req := ledger.TradeRequest{
		Ref:     id.New(),
		UserKey: userKey,
		Symbol:  symbol,
		Shares:  -qty,
		Cash:    proceeds,
		Date:    g.now().Format("2006-01-02"),
	}
	if err := g.store.Trade(req); err != nil {
		return Receipt{}, err
	}

	return g.receipt(req, price, proceeds)
}

// Portfolio returns the user's holdings with zero-quantity rows
// filtered out. The ledger keeps those rows; hiding them is display
// policy, decided here.
func (g *Game) Portfolio(userKey string) ([]ledger.Holding, error) {
	all, err := g.store.Holdings(userKey)
	if err != nil {
		return nil, err
	}

	var out []ledger.Holding
	for _, h := range all {
		if h.Quantity == 0 {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// History returns the user's transaction records oldest-first.
func (g *Game) History(userKey string) ([]ledger.Transaction, error) {
	return g.store.History(userKey)
}

func (g *Game) receipt(req ledger.TradeRequest, price, total decimal.Decimal) (Receipt, error) {
	bal, err := g.store.Balance(req.UserKey)
	if err != nil {
		return Receipt{}, err
	}

	qty := req.Shares
	if qty < 0 {
		qty = -qty
	}
	return Receipt{
		Ref:      req.Ref,
		Symbol:   req.Symbol,
		Quantity: qty,
		Price:    price,
		Total:    total,
		Balance:  bal,
	}, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
