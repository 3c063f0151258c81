package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxTransferAmount = "1000000000" // 1 billion, minor units
	MinPasswordLength = 8
	MaxPasswordLength = 128

	// DefaultDialingPrefix is the international prefix stripped during
	// account number normalization when none is configured.
	DefaultDialingPrefix = "+234"
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"NGN": true, "USD": true, "EUR": true, "GBP": true,
	"GHS": true, "KES": true, "ZAR": true, "XOF": true,
	"CAD": true, "AUD": true, "JPY": true, "CNY": true,
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// NormalizeAccountNumber derives a wallet account number from a phone
// number: the configured international prefix is stripped if present,
// otherwise a single leading zero is stripped. The remainder is the
// account number.
func NormalizeAccountNumber(phoneNumber, dialingPrefix string) string {
	phoneNumber = strings.TrimSpace(phoneNumber)

	if dialingPrefix == "" {
		dialingPrefix = DefaultDialingPrefix
	}

	if rest, ok := strings.CutPrefix(phoneNumber, dialingPrefix); ok {
		return rest
	}

	if rest, ok := strings.CutPrefix(phoneNumber, "0"); ok {
		return rest
	}

	return phoneNumber
}

// ValidatePhoneNumber validates a phone-number-like identifier.
func ValidatePhoneNumber(phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)

	if phoneNumber == "" {
		return fmt.Errorf("%w: phone number cannot be empty", ErrInvalidPhoneNumber)
	}

	if !phoneRegex.MatchString(phoneNumber) {
		return fmt.Errorf("%w: %s", ErrInvalidPhoneNumber, phoneNumber)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 200
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
