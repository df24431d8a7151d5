package quote

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type staticQuote struct {
	price         decimal.Decimal
	percentChange decimal.Decimal
}

// Static is a fixed in-memory Source for offline play and tests.
// Symbols not present behave exactly like unknown tickers upstream.
type Static struct {
	mu     sync.RWMutex
	quotes map[string]staticQuote
}

// NewStatic returns an empty static source.
func NewStatic() *Static {
	return &Static{quotes: make(map[string]staticQuote)}
}

// Set installs or replaces the quote for symbol.
func (s *Static) Set(symbol string, price, percentChange decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[strings.ToUpper(symbol)] = staticQuote{price: price, percentChange: percentChange}
}

func (s *Static) Price(_ context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero, ErrUnknownSymbol
	}
	return q.price, nil
}

func (s *Static) PercentChange(_ context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero, ErrUnknownSymbol
	}
	return q.percentChange, nil
}

var _ Source = (*Static)(nil)
