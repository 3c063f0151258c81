package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/adapter/http/dto"
	"github.com/ayodeji-m/kobowallet/internal/adapter/http/handler"
	"github.com/ayodeji-m/kobowallet/internal/adapter/repository/memory"
	"github.com/ayodeji-m/kobowallet/internal/domain"
	"github.com/ayodeji-m/kobowallet/internal/usecase"
	"github.com/ayodeji-m/kobowallet/internal/usecase/mocks"
)

func newTransferHandler(t *testing.T, store usecase.WalletStore) *handler.TransferHandler {
	t.Helper()

	uc := usecase.NewTransferUseCase(
		store,
		mocks.NewMockRecoveryRepository(),
		mocks.NewMockEventPublisher(),
		mocks.NewMockRetrier(),
		mocks.NewMockIDGenerator(),
		nil,
		zerolog.Nop(),
	)

	return handler.NewTransferHandler(uc)
}

func seedMemoryWallet(t *testing.T, store *memory.WalletStore, accountID string, balance int64) {
	t.Helper()
	if err := store.Create(context.Background(), &domain.Wallet{
		AccountID: accountID,
		Currency:  "NGN",
		Balance:   decimal.NewFromInt(balance),
	}); err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}
}

func TestTransferHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*memory.WalletStore)
		wantStatus int
		wantState  string
	}{
		{
			name: "successful transfer",
			body: `{"from_account_id":"8011111111","to_account_id":"8022222222","amount":"100"}`,
			setup: func(store *memory.WalletStore) {
				seedMemoryWallet(t, store, "8011111111", 500)
				seedMemoryWallet(t, store, "8022222222", 0)
			},
			wantStatus: http.StatusOK,
			wantState:  "completed",
		},
		{
			name: "insufficient funds",
			body: `{"from_account_id":"8011111111","to_account_id":"8022222222","amount":"1000"}`,
			setup: func(store *memory.WalletStore) {
				seedMemoryWallet(t, store, "8011111111", 500)
				seedMemoryWallet(t, store, "8022222222", 0)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown wallet",
			body: `{"from_account_id":"8099999999","to_account_id":"8022222222","amount":"100"}`,
			setup: func(store *memory.WalletStore) {
				seedMemoryWallet(t, store, "8022222222", 0)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "same account",
			body: `{"from_account_id":"8011111111","to_account_id":"8011111111","amount":"100"}`,
			setup: func(store *memory.WalletStore) {
				seedMemoryWallet(t, store, "8011111111", 500)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"from_account_id":`,
			setup:      func(store *memory.WalletStore) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewWalletStore()
			tt.setup(store)

			h := newTransferHandler(t, store)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.wantState != "" {
				var resp dto.TransferResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Status != tt.wantState {
					t.Errorf("expected state %s, got %s", tt.wantState, resp.Status)
				}
				if resp.TransferID == "" {
					t.Error("expected a transfer id")
				}
			}
		})
	}
}

func TestTransferHandler_CreateMovesFunds(t *testing.T) {
	store := memory.NewWalletStore()
	seedMemoryWallet(t, store, "8011111111", 500)
	seedMemoryWallet(t, store, "8022222222", 100)

	h := newTransferHandler(t, store)

	body := `{"from_account_id":"8011111111","to_account_id":"8022222222","amount":"150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	source, err := store.GetByAccountID(context.Background(), "8011111111")
	if err != nil {
		t.Fatalf("failed to read source wallet: %v", err)
	}
	dest, err := store.GetByAccountID(context.Background(), "8022222222")
	if err != nil {
		t.Fatalf("failed to read destination wallet: %v", err)
	}

	if !source.Balance.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected source balance 350, got %s", source.Balance)
	}
	if !dest.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected destination balance 250, got %s", dest.Balance)
	}
}
