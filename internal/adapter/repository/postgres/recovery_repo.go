package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// RecoveryRepository persists traces of inconsistent transfers to the
// recovery queue table. Rows stay until an operator reconciles the
// balances and deletes them by hand.
type RecoveryRepository struct {
	pool *pgxpool.Pool
}

// NewRecoveryRepository creates a new RecoveryRepository.
func NewRecoveryRepository(pool *pgxpool.Pool) *RecoveryRepository {
	return &RecoveryRepository{pool: pool}
}

// Create inserts a recovery record.
func (r *RecoveryRepository) Create(ctx context.Context, record *domain.RecoveryRecord) error {
	query := `
		INSERT INTO recovery_queue (id, transfer_id, from_account_id, to_account_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.TransferID,
		record.FromAccountID,
		record.ToAccountID,
		decimalToNumeric(record.Amount),
		record.Reason,
		record.CreatedAt,
	)

	return err
}
