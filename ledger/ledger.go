// Package ledger owns the persistent state of the paper-trading game:
// cash balances, per-symbol share holdings, and the append-only
// transaction history. All mutations go through a Store; nothing else
// touches the backing storage.
package ledger

import (
	"github.com/shopspring/decimal"
)

// Account is a user's cash balance record. Accounts are created lazily
// with the store's starting balance on first mutation and never deleted.
type Account struct {
	UserKey string
	Balance decimal.Decimal
}

// Holding is a user's share count for one symbol. Rows are created
// lazily at quantity 0 and never deleted, so a symbol that was ever
// held stays listed even after selling out.
type Holding struct {
	UserKey  string
	Symbol   string
	Quantity int64
}

// Transaction is one immutable history record. Seq is assigned by the
// store in insertion order. Amount is signed: negative means money
// spent, positive means money received. Quantity is the unsigned share
// count of the trade. Date has day granularity, formatted 2006-01-02.
type Transaction struct {
	Seq      int64
	Ref      string
	UserKey  string
	Symbol   string
	Quantity int64
	Amount   decimal.Decimal
	Date     string
}

// TradeRequest bundles the three writes of a buy or sell so a Store can
// apply them as one atomic unit. Shares is signed (positive buys,
// negative sells); Cash is signed the same way as Transaction.Amount.
type TradeRequest struct {
	Ref     string
	UserKey string
	Symbol  string
	Shares  int64
	Cash    decimal.Decimal
	Date    string
}

// Store is the ledger's transactional API.
//
// Reads never fail for unknown keys: Balance and HoldingQuantity return
// zero values instead. Mutations are all-or-nothing; a rejection
// (ErrInsufficientFunds, ErrInsufficientShares) leaves state untouched,
// including any lazy row creation. Any other non-nil error is a storage
// fault.
type Store interface {
	// Balance returns the user's cash balance, or zero for an
	// account that has never been mutated.
	Balance(userKey string) (decimal.Decimal, error)

	// AdjustBalance atomically applies delta to the user's balance,
	// creating the account with the starting balance first if
	// absent. Returns ErrInsufficientFunds when the result would be
	// negative.
	AdjustBalance(userKey string, delta decimal.Decimal) error

	// HoldingQuantity returns the user's share count for symbol, or
	// zero when no holding row exists.
	HoldingQuantity(userKey, symbol string) (int64, error)

	// AdjustHolding atomically applies delta to the holding,
	// creating the row at quantity 0 first if absent. Returns
	// ErrInsufficientShares when the result would be negative.
	AdjustHolding(userKey, symbol string, delta int64) error

	// Holdings returns every holding row for the user, including
	// zero-quantity ones, ordered by symbol.
	Holdings(userKey string) ([]Holding, error)

	// Append writes one history record. Seq is assigned by the
	// store; the value in tx is ignored. Append never validates
	// against balances or holdings.
	Append(tx Transaction) error

	// History returns the user's records oldest-first.
	History(userKey string) ([]Transaction, error)

	// Trade applies balance delta, holding delta and history append
	// as a single atomic unit. A rejection or storage fault leaves
	// all three untouched.
	Trade(req TradeRequest) error

	Close() error
}

// record converts a trade request into the history row it produces.
func (r TradeRequest) record() Transaction {
	qty := r.Shares
	if qty < 0 {
		qty = -qty
	}
	return Transaction{
		Ref:      r.Ref,
		UserKey:  r.UserKey,
		Symbol:   r.Symbol,
		Quantity: qty,
		Amount:   r.Cash,
		Date:     r.Date,
	}
}
