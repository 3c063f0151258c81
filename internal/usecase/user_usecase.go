package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// UserUseCase handles the user directory: signup, login and the
// password reset OTP flow.
type UserUseCase struct {
	users    UserRepository
	notifier Notifier
	idGen    IDGenerator
	logger   zerolog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(users UserRepository, notifier Notifier, idGen IDGenerator, logger zerolog.Logger) *UserUseCase {
	return &UserUseCase{
		users:    users,
		notifier: notifier,
		idGen:    idGen,
		logger:   logger,
	}
}

// SignupInput represents input for creating a user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates a new user with a hashed password.
func (uc *UserUseCase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := uc.users.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Name:           input.Name,
		HashedPassword: string(hashed),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}

// Authenticate verifies email/password credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// ForgotPassword generates a reset OTP, stores it on the user and
// delivers it out of band. Delivery is best-effort.
func (uc *UserUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	user.OTP = otp
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}

	if uc.notifier != nil {
		if err := uc.notifier.SendOTP(ctx, user.Email, otp); err != nil {
			uc.logger.Warn().Err(err).
				Str("user_id", user.ID).
				Msg("failed to deliver OTP")
		}
	}

	return nil
}

// ResetPassword sets a new password for the user holding the OTP and
// clears the OTP.
func (uc *UserUseCase) ResetPassword(ctx context.Context, otp, newPassword string) error {
	if otp == "" {
		return domain.ErrInvalidOTP
	}

	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := uc.users.GetByOTP(ctx, otp)
	if err != nil {
		return domain.ErrInvalidOTP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = string(hashed)
	user.OTP = ""
	user.UpdatedAt = time.Now().UTC()

	return uc.users.Update(ctx, user)
}

func generateOTP() (string, error) {
	const digits = "0123456789"

	otp := make([]byte, OTPLength)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		otp[i] = digits[n.Int64()]
	}

	return string(otp), nil
}
