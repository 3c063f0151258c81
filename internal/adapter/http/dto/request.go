package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/usecase"
)

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.SignupInput {
	return usecase.SignupInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password reset initiation.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents a password reset completion.
type ResetPasswordRequest struct {
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// CreateWalletRequest represents a request to provision a wallet.
type CreateWalletRequest struct {
	PhoneNumber string `json:"phone_number"`
	Currency    string `json:"currency"`
}

// ToUseCaseInput converts to use case input for the given owner.
func (r *CreateWalletRequest) ToUseCaseInput(userID string) usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		UserID:      userID,
		PhoneNumber: r.PhoneNumber,
		Currency:    r.Currency,
	}
}

// CreateTransferRequest represents a funds transfer request.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
}
