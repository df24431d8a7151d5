package quote

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticQuotes(t *testing.T) {
	s := NewStatic()
	s.Set("aapl", decimal.RequireFromString("185.50"), decimal.RequireFromString("-0.42"))

	// Lookups are case-insensitive on both sides.
	price, err := s.Price(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("185.50")))

	change, err := s.PercentChange(context.Background(), "aapl")
	require.NoError(t, err)
	assert.True(t, change.Equal(decimal.RequireFromString("-0.42")))
}

func TestStaticUnknownSymbol(t *testing.T) {
	s := NewStatic()

	_, err := s.Price(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = s.PercentChange(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
