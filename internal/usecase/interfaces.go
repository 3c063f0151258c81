package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// WalletStore defines data access for wallets. The conditional
// decrement is the only cross-request synchronization point the
// transfer protocol depends on; no multi-row transaction is assumed
// and balances are never written with a plain read-then-write.
type WalletStore interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error)

	// ConditionalDecrement subtracts amount from the wallet balance
	// only if the predicate "balance >= amount" holds, evaluated
	// atomically at the store. Returns domain.ErrInsufficientFunds
	// when the predicate fails and domain.ErrWalletNotFound when the
	// wallet does not exist.
	ConditionalDecrement(ctx context.Context, accountID string, amount decimal.Decimal) error

	// Increment unconditionally adds amount to the wallet balance.
	Increment(ctx context.Context, accountID string, amount decimal.Decimal) error

	List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByOTP(ctx context.Context, otp string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// RecoveryRepository persists traces of inconsistent transfers for
// operator reconciliation.
type RecoveryRepository interface {
	Create(ctx context.Context, record *domain.RecoveryRecord) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store errors. Permanent
// errors (domain sentinels, constraint violations) are returned
// immediately.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// EventPublisher publishes ledger events to an external system.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// TransferMetrics records transfer protocol outcomes.
type TransferMetrics interface {
	RecordTransfer(state domain.TransferState)
	ObserveTransferDuration(d time.Duration)
}

// WalletMetrics records wallet provisioning.
type WalletMetrics interface {
	RecordWalletCreated()
}

// Notifier delivers best-effort out-of-band notifications to users.
type Notifier interface {
	SendOTP(ctx context.Context, email, otp string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so the caller may retry under it.
	Delete(ctx context.Context, key string) error
}
