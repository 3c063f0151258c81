package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferState is a state of the funds transfer protocol.
type TransferState string

const (
	// TransferPending means no mutation has happened yet.
	TransferPending TransferState = "pending"

	// TransferRejected means the transfer was refused before any
	// balance was touched.
	TransferRejected TransferState = "rejected"

	// TransferDebited means the source was debited but the credit has
	// not resolved yet.
	TransferDebited TransferState = "debited"

	// TransferCompleted means debit and credit both succeeded.
	TransferCompleted TransferState = "completed"

	// TransferCompensated means the credit failed and the debited
	// amount was returned to the source. Net effect is zero.
	TransferCompensated TransferState = "compensated"

	// TransferInconsistent means the credit failed and the
	// compensating credit also failed. Funds are unaccounted for and
	// operator intervention is required.
	TransferInconsistent TransferState = "inconsistent"
)

// Terminal reports whether no further state change can occur.
func (s TransferState) Terminal() bool {
	switch s {
	case TransferRejected, TransferCompleted, TransferCompensated, TransferInconsistent:
		return true
	}

	return false
}

// Transfer represents one movement of funds between two wallets.
type Transfer struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	State         TransferState
	CreatedAt     time.Time
}

// Validate checks the request shape before any mutation.
func (t *Transfer) Validate() error {
	if t.FromAccountID == "" || t.ToAccountID == "" {
		return ErrMissingAccountID
	}

	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
