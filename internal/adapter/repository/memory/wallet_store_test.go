package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayodeji-m/kobowallet/internal/adapter/repository/memory"
	"github.com/ayodeji-m/kobowallet/internal/domain"
)

func TestWalletStore_CreateAndGet(t *testing.T) {
	store := memory.NewWalletStore()
	ctx := context.Background()

	wallet := &domain.Wallet{
		AccountID: "8012345678",
		UserID:    "user-1",
		Currency:  "NGN",
		Balance:   decimal.NewFromInt(100),
	}

	require.NoError(t, store.Create(ctx, wallet))

	got, err := store.GetByAccountID(ctx, "8012345678")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	// Mutating the returned copy must not leak into the store
	got.Balance = decimal.NewFromInt(999)
	again, err := store.GetByAccountID(ctx, "8012345678")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(100)))

	err = store.Create(ctx, wallet)
	assert.ErrorIs(t, err, domain.ErrDuplicateWallet)

	_, err = store.GetByAccountID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletStore_ConditionalDecrement(t *testing.T) {
	store := memory.NewWalletStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Wallet{
		AccountID: "8012345678",
		Balance:   decimal.NewFromInt(100),
	}))

	require.NoError(t, store.ConditionalDecrement(ctx, "8012345678", decimal.NewFromInt(60)))

	err := store.ConditionalDecrement(ctx, "8012345678", decimal.NewFromInt(60))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Balance is unchanged by the refused debit
	wallet, err := store.GetByAccountID(ctx, "8012345678")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(40)))

	// Draining to exactly zero is allowed
	require.NoError(t, store.ConditionalDecrement(ctx, "8012345678", decimal.NewFromInt(40)))

	err = store.ConditionalDecrement(ctx, "missing", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletStore_Increment(t *testing.T) {
	store := memory.NewWalletStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Wallet{
		AccountID: "8012345678",
		Balance:   decimal.Zero,
	}))

	require.NoError(t, store.Increment(ctx, "8012345678", decimal.NewFromInt(25)))
	require.NoError(t, store.Increment(ctx, "8012345678", decimal.NewFromInt(75)))

	wallet, err := store.GetByAccountID(ctx, "8012345678")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))

	err = store.Increment(ctx, "missing", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletStore_List(t *testing.T) {
	store := memory.NewWalletStore()
	ctx := context.Background()

	for _, id := range []string{"8033333333", "8011111111", "8022222222"} {
		require.NoError(t, store.Create(ctx, &domain.Wallet{AccountID: id}))
	}

	wallets, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "8011111111", wallets[0].AccountID)
	assert.Equal(t, "8022222222", wallets[1].AccountID)
	assert.Equal(t, "8033333333", wallets[2].AccountID)

	wallets, err = store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "8022222222", wallets[0].AccountID)

	wallets, err = store.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestWalletStore_ConcurrentDecrementsNeverOverdraw(t *testing.T) {
	store := memory.NewWalletStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Wallet{
		AccountID: "8012345678",
		Balance:   decimal.NewFromInt(50),
	}))

	const workers = 100
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.ConditionalDecrement(ctx, "8012345678", amount); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)

	wallet, err := store.GetByAccountID(ctx, "8012345678")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.Zero), "balance: %s", wallet.Balance)
	assert.False(t, wallet.Balance.IsNegative())
}
