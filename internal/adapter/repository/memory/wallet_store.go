package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// WalletStore is an in-memory implementation of usecase.WalletStore.
// The mutex gives it the same semantics as the SQL store: the balance
// predicate of ConditionalDecrement is evaluated atomically with the
// write, never from a caller-side read.
type WalletStore struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet
}

// NewWalletStore creates an empty in-memory wallet store.
func NewWalletStore() *WalletStore {
	return &WalletStore{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Create inserts a new wallet.
func (s *WalletStore) Create(_ context.Context, wallet *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[wallet.AccountID]; ok {
		return domain.ErrDuplicateWallet
	}

	copied := *wallet
	s.wallets[wallet.AccountID] = &copied

	return nil
}

// GetByAccountID retrieves a wallet by account number.
func (s *WalletStore) GetByAccountID(_ context.Context, accountID string) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[accountID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}

	copied := *wallet

	return &copied, nil
}

// ConditionalDecrement debits the wallet only if the balance covers
// the amount, checked and applied under the store lock.
func (s *WalletStore) ConditionalDecrement(_ context.Context, accountID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[accountID]
	if !ok {
		return domain.ErrWalletNotFound
	}

	if wallet.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	wallet.Balance = wallet.Balance.Sub(amount)
	wallet.UpdatedAt = time.Now().UTC()

	return nil
}

// Increment credits the wallet unconditionally.
func (s *WalletStore) Increment(_ context.Context, accountID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[accountID]
	if !ok {
		return domain.ErrWalletNotFound
	}

	wallet.Balance = wallet.Balance.Add(amount)
	wallet.UpdatedAt = time.Now().UTC()

	return nil
}

// List lists wallets ordered by account number.
func (s *WalletStore) List(_ context.Context, limit, offset int) ([]*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.wallets))
	for id := range s.wallets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return nil, nil
	}

	ids = ids[offset:]
	if limit < len(ids) {
		ids = ids[:limit]
	}

	wallets := make([]*domain.Wallet, 0, len(ids))
	for _, id := range ids {
		copied := *s.wallets[id]
		wallets = append(wallets, &copied)
	}

	return wallets, nil
}
