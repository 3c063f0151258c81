package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists for this account number")

	// Transfer errors
	ErrMissingAccountID  = errors.New("account number is required")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransferFailed is returned when the credit step failed and the
	// debited amount was returned to the sender. No net balance change
	// occurred; the caller may retry.
	ErrTransferFailed = errors.New("transfer failed, funds returned to sender")

	// ErrLedgerInconsistent is returned when a debit succeeded but both
	// the credit and the compensating re-credit failed. It must never
	// be downgraded or swallowed: money is unaccounted for until an
	// operator resolves the recovery record.
	ErrLedgerInconsistent = errors.New("ledger inconsistent: debited funds not credited and compensation failed")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrInvalidOTP    = errors.New("invalid or expired OTP")

	// Authentication errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
