package ledger

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLite is the durable Store implementation. One mutex serializes all
// read-modify-write sequences; the unexported *Locked helpers assume it
// is already held and never take it themselves, so public operations
// can compose them without re-entering the lock.
type SQLite struct {
	mu       sync.Mutex
	db       *sql.DB
	starting decimal.Decimal
}

// NewSQLite opens (or creates) the database at path, applies the schema
// and returns a ready store. Accounts created lazily by this store
// start with the given balance.
func NewSQLite(path string, starting decimal.Decimal) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, starting: starting}, nil
}

func (s *SQLite) Balance(userKey string) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow(`SELECT balance FROM users WHERE user_id = ?`, userKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance: %w", err)
	}

	bal, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt balance for %q: %w", userKey, err)
	}
	return bal, nil
}

func (s *SQLite) AdjustBalance(userKey string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.adjustBalanceLocked(tx, userKey, delta); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) HoldingQuantity(userKey, symbol string) (int64, error) {
	var qty int64
	err := s.db.QueryRow(
		`SELECT quantity FROM user_stocks WHERE user_id = ? AND stock_name = ?`,
		userKey, symbol,
	).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read holding: %w", err)
	}
	return qty, nil
}

func (s *SQLite) AdjustHolding(userKey, symbol string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.adjustHoldingLocked(tx, userKey, symbol, delta); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) Holdings(userKey string) ([]Holding, error) {
	rows, err := s.db.Query(
		`SELECT stock_name, quantity FROM user_stocks WHERE user_id = ? ORDER BY stock_name`,
		userKey,
	)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		h := Holding{UserKey: userKey}
		if err := rows.Scan(&h.Symbol, &h.Quantity); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Append(txn Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := appendLocked(tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// History returns the user's records oldest-first (seq order).
func (s *SQLite) History(userKey string) ([]Transaction, error) {
	rows, err := s.db.Query(`
		SELECT seq, ref, user_id, stock_name, quantity, amount, date
		FROM transactions
		WHERE user_id = ?
		ORDER BY seq ASC`, userKey)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var (
			rec Transaction
			raw string
		)
		if err := rows.Scan(&rec.Seq, &rec.Ref, &rec.UserKey, &rec.Symbol, &rec.Quantity, &raw, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Amount, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount in seq %d: %w", rec.Seq, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Trade runs the balance debit/credit, holding credit/debit and history
// append inside one SQL transaction. Rejection of either adjustment
// rolls the whole thing back.
func (s *SQLite) Trade(req TradeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.adjustBalanceLocked(tx, req.UserKey, req.Cash); err != nil {
		return err
	}
	if err := s.adjustHoldingLocked(tx, req.UserKey, req.Symbol, req.Shares); err != nil {
		return err
	}
	if err := appendLocked(tx, req.record()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// adjustBalanceLocked does the upsert-read-check-write for one account.
// Caller holds s.mu and owns the transaction.
func (s *SQLite) adjustBalanceLocked(tx *sql.Tx, userKey string, delta decimal.Decimal) error {
	// Single-step upsert, not check-then-insert.
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO users (user_id, balance) VALUES (?, ?)`,
		userKey, s.starting.String(),
	); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	var raw string
	if err := tx.QueryRow(`SELECT balance FROM users WHERE user_id = ?`, userKey).Scan(&raw); err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	cur, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("corrupt balance for %q: %w", userKey, err)
	}

	next := cur.Add(delta)
	if next.IsNegative() {
		return ErrInsufficientFunds
	}

	if _, err := tx.Exec(
		`UPDATE users SET balance = ? WHERE user_id = ?`,
		next.String(), userKey,
	); err != nil {
		return fmt.Errorf("write balance: %w", err)
	}
	return nil
}

// adjustHoldingLocked mirrors adjustBalanceLocked for one holding row.
func (s *SQLite) adjustHoldingLocked(tx *sql.Tx, userKey, symbol string, delta int64) error {
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO user_stocks (user_id, stock_name, quantity) VALUES (?, ?, 0)`,
		userKey, symbol,
	); err != nil {
		return fmt.Errorf("create holding: %w", err)
	}

	var cur int64
	if err := tx.QueryRow(
		`SELECT quantity FROM user_stocks WHERE user_id = ? AND stock_name = ?`,
		userKey, symbol,
	).Scan(&cur); err != nil {
		return fmt.Errorf("read holding: %w", err)
	}

	next := cur + delta
	if next < 0 {
		return ErrInsufficientShares
	}

	if _, err := tx.Exec(
		`UPDATE user_stocks SET quantity = ? WHERE user_id = ? AND stock_name = ?`,
		next, userKey, symbol,
	); err != nil {
		return fmt.Errorf("write holding: %w", err)
	}
	return nil
}

func appendLocked(tx *sql.Tx, txn Transaction) error {
	if _, err := tx.Exec(`
		INSERT INTO transactions (ref, user_id, stock_name, quantity, amount, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.Ref, txn.UserKey, txn.Symbol, txn.Quantity, txn.Amount.String(), txn.Date,
	); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

var _ Store = (*SQLite)(nil)
