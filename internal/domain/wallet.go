package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a custodial balance keyed by account number. The account
// number is the owner's normalized phone number.
type Wallet struct {
	AccountID string
	UserID    string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit reports whether the wallet held enough funds at read time.
// It is advisory only; the store re-evaluates the predicate atomically
// at write time.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && w.Balance.GreaterThanOrEqual(amount)
}
