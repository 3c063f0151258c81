package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// WalletUseCase handles wallet provisioning and queries.
type WalletUseCase struct {
	wallets       WalletStore
	users         UserRepository
	metrics       WalletMetrics
	logger        zerolog.Logger
	dialingPrefix string
}

// NewWalletUseCase creates a new WalletUseCase. metrics may be nil.
func NewWalletUseCase(wallets WalletStore, users UserRepository, metrics WalletMetrics, dialingPrefix string, logger zerolog.Logger) *WalletUseCase {
	if dialingPrefix == "" {
		dialingPrefix = domain.DefaultDialingPrefix
	}

	return &WalletUseCase{
		wallets:       wallets,
		users:         users,
		metrics:       metrics,
		logger:        logger,
		dialingPrefix: dialingPrefix,
	}
}

// CreateWalletInput represents input for provisioning a wallet.
type CreateWalletInput struct {
	UserID      string
	PhoneNumber string
	Currency    string
}

// CreateWallet provisions a zero-balance wallet whose account number
// is the owner's normalized phone number.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePhoneNumber(input.PhoneNumber); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	// Best-effort contact update. The account number below is derived
	// from the request, not from this write, so a failure here must
	// not block provisioning.
	user.PhoneNumber = input.PhoneNumber
	if err := uc.users.Update(ctx, user); err != nil {
		uc.logger.Warn().Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user phone number")
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		AccountID: domain.NormalizeAccountNumber(input.PhoneNumber, uc.dialingPrefix),
		UserID:    user.ID,
		Currency:  strings.ToUpper(strings.TrimSpace(input.Currency)),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordWalletCreated()
	}

	uc.logger.Info().
		Str("account_id", wallet.AccountID).
		Str("user_id", wallet.UserID).
		Str("currency", wallet.Currency).
		Msg("wallet created")

	return wallet, nil
}

// WalletWithOwner is a wallet joined with its owner's email for
// display.
type WalletWithOwner struct {
	Wallet     *domain.Wallet
	OwnerEmail string
}

// ListWalletsInput represents input for listing wallets.
type ListWalletsInput struct {
	Limit  int
	Offset int
}

// ListWallets materializes wallets with owner identity resolved.
func (uc *WalletUseCase) ListWallets(ctx context.Context, input ListWalletsInput) ([]*WalletWithOwner, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	wallets, err := uc.wallets.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	emails := make(map[string]string, len(wallets))
	result := make([]*WalletWithOwner, 0, len(wallets))

	for _, w := range wallets {
		email, ok := emails[w.UserID]
		if !ok {
			user, err := uc.users.GetByID(ctx, w.UserID)
			if err != nil {
				uc.logger.Warn().Err(err).
					Str("user_id", w.UserID).
					Msg("failed to resolve wallet owner")
			} else {
				email = user.Email
			}
			emails[w.UserID] = email
		}

		result = append(result, &WalletWithOwner{Wallet: w, OwnerEmail: email})
	}

	return result, nil
}

// GetWallet retrieves a single wallet by account number.
func (uc *WalletUseCase) GetWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	if accountID == "" {
		return nil, domain.ErrMissingAccountID
	}

	return uc.wallets.GetByAccountID(ctx, accountID)
}
