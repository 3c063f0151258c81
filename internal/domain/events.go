package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event topics published by the ledger.
const (
	TopicTransferCompleted = "wallet.transfer.completed"
	TopicLedgerAlert       = "wallet.ledger.alert"
)

// TransferCompletedEvent is published after a transfer reaches the
// COMPLETED state.
type TransferCompletedEvent struct {
	TransferID    string          `json:"transfer_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// LedgerAlertEvent is the out-of-band operator alert raised when a
// transfer ends in the INCONSISTENT state.
type LedgerAlertEvent struct {
	TransferID    string          `json:"transfer_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// RecoveryRecord is the persisted trace of an inconsistent transfer,
// kept until an operator reconciles the balances by hand.
type RecoveryRecord struct {
	ID            string
	TransferID    string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Reason        string
	CreatedAt     time.Time
}
