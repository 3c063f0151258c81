package usecase

import "time"

const (
	// DefaultSettleWindow bounds the DEBITED -> terminal portion of a
	// transfer. It is detached from the caller's context so an
	// in-flight transfer is never abandoned mid-state.
	DefaultSettleWindow = 30 * time.Second

	// IdempotencyKeyTTL is how long recorded transfer responses are
	// kept for replay.
	IdempotencyKeyTTL = 24 * time.Hour

	// OTPLength is the number of digits in a password reset code.
	OTPLength = 6
)
