// ledger/schema.go
package ledger

// Schema is applied idempotently every time a SQLite store is opened.
// Balances and amounts are stored as canonical decimal strings so no
// precision is lost to REAL affinity.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	balance TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_stocks (
	user_id TEXT NOT NULL,
	stock_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (user_id, stock_name),
	FOREIGN KEY (user_id) REFERENCES users(user_id)
);

CREATE TABLE IF NOT EXISTS transactions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL,
	user_id TEXT NOT NULL,
	stock_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	amount TEXT NOT NULL,
	date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
`
