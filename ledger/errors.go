package ledger

import "errors"

// Rejections are expected business outcomes, not storage faults.
// Callers use IsRejected to tell the two apart.
var (
	// ErrInsufficientFunds means the balance adjustment would have
	// driven the account negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares means the holding adjustment would have
	// driven the share count negative.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// IsRejected reports whether err is a business-rule rejection rather
// than a storage error.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrInsufficientShares)
}
