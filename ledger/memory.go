package ledger

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Memory is an in-memory Store for tests and throwaway games. It keeps
// the same semantics as SQLite: lazy row creation, all-or-nothing
// mutations, symbol-ordered holdings and seq-ordered history.
type Memory struct {
	mu       sync.Mutex
	starting decimal.Decimal
	balances map[string]decimal.Decimal
	holdings map[string]map[string]int64
	history  []Transaction
	nextSeq  int64
}

// NewMemory returns an empty in-memory store with the given starting
// balance for lazily created accounts.
func NewMemory(starting decimal.Decimal) *Memory {
	return &Memory{
		starting: starting,
		balances: make(map[string]decimal.Decimal),
		holdings: make(map[string]map[string]int64),
	}
}

func (m *Memory) Balance(userKey string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bal, ok := m.balances[userKey]
	if !ok {
		return decimal.Zero, nil
	}
	return bal, nil
}

func (m *Memory) AdjustBalance(userKey string, delta decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustBalanceLocked(userKey, delta)
}

func (m *Memory) HoldingQuantity(userKey, symbol string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.holdings[userKey][symbol], nil
}

func (m *Memory) AdjustHolding(userKey, symbol string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustHoldingLocked(userKey, symbol, delta)
}

func (m *Memory) Holdings(userKey string) ([]Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.holdings[userKey]
	symbols := make([]string, 0, len(rows))
	for sym := range rows {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var out []Holding
	for _, sym := range symbols {
		out = append(out, Holding{UserKey: userKey, Symbol: sym, Quantity: rows[sym]})
	}
	return out, nil
}

func (m *Memory) Append(txn Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appendLocked(txn)
	return nil
}

// History returns the user's records oldest-first, copied out so the
// caller cannot reach internal state.
func (m *Memory) History(userKey string) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Transaction
	for _, rec := range m.history {
		if rec.UserKey == userKey {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Trade validates both adjustments before writing anything, so a
// rejection leaves balance, holdings and history all untouched.
func (m *Memory) Trade(req TradeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bal, ok := m.balances[req.UserKey]
	if !ok {
		bal = m.starting
	}
	nextBal := bal.Add(req.Cash)
	if nextBal.IsNegative() {
		return ErrInsufficientFunds
	}

	nextQty := m.holdings[req.UserKey][req.Symbol] + req.Shares
	if nextQty < 0 {
		return ErrInsufficientShares
	}

	m.balances[req.UserKey] = nextBal
	m.setHoldingLocked(req.UserKey, req.Symbol, nextQty)
	m.appendLocked(req.record())
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) adjustBalanceLocked(userKey string, delta decimal.Decimal) error {
	bal, ok := m.balances[userKey]
	if !ok {
		bal = m.starting
	}

	next := bal.Add(delta)
	if next.IsNegative() {
		return ErrInsufficientFunds
	}

	m.balances[userKey] = next
	return nil
}

func (m *Memory) adjustHoldingLocked(userKey, symbol string, delta int64) error {
	next := m.holdings[userKey][symbol] + delta
	if next < 0 {
		return ErrInsufficientShares
	}

	m.setHoldingLocked(userKey, symbol, next)
	return nil
}

func (m *Memory) setHoldingLocked(userKey, symbol string, qty int64) {
	rows, ok := m.holdings[userKey]
	if !ok {
		rows = make(map[string]int64)
		m.holdings[userKey] = rows
	}
	rows[symbol] = qty
}

func (m *Memory) appendLocked(txn Transaction) {
	m.nextSeq++
	txn.Seq = m.nextSeq
	m.history = append(m.history, txn)
}

var _ Store = (*Memory)(nil)
