package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(path, starting1000)
	require.NoError(t, err)

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('users','user_stocks','transactions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["users"])
	assert.True(t, found["user_stocks"])
	assert.True(t, found["transactions"])
}

func TestSQLiteReopenIsIdempotent(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.AdjustBalance("alice", decimal.RequireFromString("-250.00")))
	require.NoError(t, s.AdjustHolding("alice", "AAPL", 2))
	require.NoError(t, s.Close())

	// Opening over an existing database must neither fail nor wipe it.
	s2, err := NewSQLite(path, starting1000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	bal, err := s2.Balance("alice")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("750.00")), "got %s", bal)

	qty, err := s2.HoldingQuantity("alice", "AAPL")
	require.NoError(t, err)
	assert.EqualValues(t, 2, qty)
}

func TestSQLiteBalancePrecision(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	// Ten additions of 0.10 must land on exactly 1001.00, which REAL
	// storage would not guarantee.
	dime := decimal.RequireFromString("0.10")
	for i := 0; i < 10; i++ {
		require.NoError(t, s.AdjustBalance("alice", dime))
	}

	bal, err := s.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, "1001", bal.String())
}
