package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
	"github.com/ayodeji-m/kobowallet/internal/usecase"
)

// MockWalletStore is a mock implementation of WalletStore. Without
// overrides it behaves like a real in-memory store with the same
// conditional-decrement semantics.
type MockWalletStore struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet

	CreateFunc               func(ctx context.Context, wallet *domain.Wallet) error
	GetByAccountIDFunc       func(ctx context.Context, accountID string) (*domain.Wallet, error)
	ConditionalDecrementFunc func(ctx context.Context, accountID string, amount decimal.Decimal) error
	IncrementFunc            func(ctx context.Context, accountID string, amount decimal.Decimal) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

func NewMockWalletStore() *MockWalletStore {
	return &MockWalletStore{
		wallets: make(map[string]*domain.Wallet),
	}
}

func (m *MockWalletStore) Create(ctx context.Context, wallet *domain.Wallet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[wallet.AccountID]; ok {
		return domain.ErrDuplicateWallet
	}
	m.wallets[wallet.AccountID] = wallet
	return nil
}

func (m *MockWalletStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	if m.GetByAccountIDFunc != nil {
		return m.GetByAccountIDFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[accountID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	copied := *w
	return &copied, nil
}

func (m *MockWalletStore) ConditionalDecrement(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if m.ConditionalDecrementFunc != nil {
		return m.ConditionalDecrementFunc(ctx, accountID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[accountID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	if w.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

func (m *MockWalletStore) Increment(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, accountID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[accountID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

func (m *MockWalletStore) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wallets := make([]*domain.Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		copied := *w
		wallets = append(wallets, &copied)
	}
	return wallets, nil
}

// Balance returns the current balance for assertions.
func (m *MockWalletStore) Balance(accountID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[accountID]; ok {
		return w.Balance
	}
	return decimal.Zero
}

// MockRecoveryRepository records recovery records in memory.
type MockRecoveryRepository struct {
	mu      sync.Mutex
	Records []*domain.RecoveryRecord

	CreateFunc func(ctx context.Context, record *domain.RecoveryRecord) error
}

func NewMockRecoveryRepository() *MockRecoveryRepository {
	return &MockRecoveryRepository{}
}

func (m *MockRecoveryRepository) Create(ctx context.Context, record *domain.RecoveryRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

// MockEventPublisher records published events in memory.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent

	PublishFunc func(ctx context.Context, topic string, event any) error
}

type PublishedEvent struct {
	Topic string
	Event any
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event any) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Topic: topic, Event: event})
	return nil
}

// ByTopic returns the recorded events for a topic.
func (m *MockEventPublisher) ByTopic(topic string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PublishedEvent
	for _, e := range m.Events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// MockRetrier executes the operation once without backoff.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + time.Now().UTC().Format("20060102") + "-" + itoa(m.counter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// MockIdempotencyStore is an in-memory IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{values: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.values[key] = response
	} else {
		m.values[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}

func (m *MockIdempotencyStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var _ usecase.WalletStore = (*MockWalletStore)(nil)
var _ usecase.RecoveryRepository = (*MockRecoveryRepository)(nil)
var _ usecase.EventPublisher = (*MockEventPublisher)(nil)
var _ usecase.Retrier = (*MockRetrier)(nil)
var _ usecase.IDGenerator = (*MockIDGenerator)(nil)
var _ usecase.IdempotencyStore = (*MockIdempotencyStore)(nil)
