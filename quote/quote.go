// Package quote supplies current price and percent change for a stock
// symbol. The game core only ever consumes these two numbers.
package quote

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol means the provider has no quote for the symbol,
// either because the ticker does not exist or the upstream response
// was unusable. Callers treat it as a precondition failure and mutate
// nothing.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Source provides quotes for stock symbols.
type Source interface {
	// Price returns the current price for symbol.
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)

	// PercentChange returns the day's percent change for symbol.
	PercentChange(ctx context.Context, symbol string) (decimal.Decimal, error)
}
