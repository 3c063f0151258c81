package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

const pgErrUniqueViolation = "23505"

// WalletStore implements usecase.WalletStore on PostgreSQL. Every
// balance mutation is a single-row, single-statement update; the
// conditional decrement carries its predicate in the WHERE clause so
// the check-and-write is atomic without an explicit transaction.
type WalletStore struct {
	pool *pgxpool.Pool
}

// NewWalletStore creates a new WalletStore.
func NewWalletStore(pool *pgxpool.Pool) *WalletStore {
	return &WalletStore{pool: pool}
}

// Create inserts a new wallet.
func (s *WalletStore) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (account_id, user_id, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		wallet.AccountID,
		wallet.UserID,
		wallet.Currency,
		decimalToNumeric(wallet.Balance),
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateWallet
		}

		return err
	}

	return nil
}

// GetByAccountID retrieves a wallet by account number.
func (s *WalletStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	query := `
		SELECT account_id, user_id, currency, balance, created_at, updated_at
		FROM wallets
		WHERE account_id = $1
	`

	wallet, err := scanWallet(s.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	return wallet, nil
}

// ConditionalDecrement debits the wallet only if the balance predicate
// holds. The predicate is part of the UPDATE statement, so PostgreSQL
// evaluates check and write atomically on the row.
func (s *WalletStore) ConditionalDecrement(ctx context.Context, accountID string, amount decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = balance - $2, updated_at = $3
		WHERE account_id = $1 AND balance >= $2
	`

	tag, err := s.pool.Exec(ctx, query, accountID, decimalToNumeric(amount), time.Now().UTC())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		// Zero rows means either a failed predicate or a missing
		// wallet; a second read tells them apart.
		if _, err := s.GetByAccountID(ctx, accountID); err != nil {
			return err
		}

		return domain.ErrInsufficientFunds
	}

	return nil
}

// Increment credits the wallet unconditionally.
func (s *WalletStore) Increment(ctx context.Context, accountID string, amount decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = balance + $2, updated_at = $3
		WHERE account_id = $1
	`

	tag, err := s.pool.Exec(ctx, query, accountID, decimalToNumeric(amount), time.Now().UTC())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// List lists wallets with pagination.
func (s *WalletStore) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	query := `
		SELECT account_id, user_id, currency, balance, created_at, updated_at
		FROM wallets
		ORDER BY created_at, account_id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (*domain.Wallet, error) {
	var (
		wallet  domain.Wallet
		balance pgtype.Numeric
	)

	err := row.Scan(
		&wallet.AccountID,
		&wallet.UserID,
		&wallet.Currency,
		&balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	wallet.Balance = numericToDecimal(balance)

	return &wallet, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
