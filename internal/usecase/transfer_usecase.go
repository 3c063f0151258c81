package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// TransferUseCase implements the funds transfer protocol: a
// deterministic state machine over the wallet store's conditional
// decrement, with compensation when the credit step fails. It is the
// only component that mutates balances.
type TransferUseCase struct {
	wallets      WalletStore
	recoveryRepo RecoveryRepository
	publisher    EventPublisher
	retrier      Retrier
	idGen        IDGenerator
	metrics      TransferMetrics
	logger       zerolog.Logger
	settleWindow time.Duration
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	wallets WalletStore,
	recoveryRepo RecoveryRepository,
	publisher EventPublisher,
	retrier Retrier,
	idGen IDGenerator,
	metrics TransferMetrics,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		wallets:      wallets,
		recoveryRepo: recoveryRepo,
		publisher:    publisher,
		retrier:      retrier,
		idGen:        idGen,
		metrics:      metrics,
		logger:       logger,
		settleWindow: DefaultSettleWindow,
	}
}

// TransferInput represents a transfer request.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Transfer moves amount from the source wallet to the destination
// wallet. On any non-nil error the returned Transfer still carries the
// terminal state the protocol reached, so callers can tell "never
// touched" (rejected) apart from "touched then reversed" (compensated).
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transfer, error) {
	start := time.Now()

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		State:         domain.TransferPending,
		CreatedAt:     start.UTC(),
	}

	if err := transfer.Validate(); err != nil {
		return uc.reject(transfer, err)
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return uc.reject(transfer, err)
	}

	source, err := uc.wallets.GetByAccountID(ctx, input.FromAccountID)
	if err != nil {
		return uc.reject(transfer, err)
	}

	if _, err := uc.wallets.GetByAccountID(ctx, input.ToAccountID); err != nil {
		return uc.reject(transfer, err)
	}

	if !source.CanDebit(input.Amount) {
		return uc.reject(transfer, domain.ErrInsufficientFunds)
	}

	// The debit predicate is re-evaluated atomically at the store, so
	// a balance change between the read above and this write surfaces
	// here as ErrInsufficientFunds with no partial effect.
	if err := uc.wallets.ConditionalDecrement(ctx, input.FromAccountID, input.Amount); err != nil {
		return uc.reject(transfer, err)
	}

	transfer.State = domain.TransferDebited

	// Once debited the transfer must reach a terminal state even if
	// the caller cancels or times out: abandoning it here would strand
	// the debited funds.
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.settleWindow)
	defer cancel()

	return uc.settle(settleCtx, transfer, start)
}

// settle runs the DEBITED -> terminal portion of the state machine.
// Duration is observed here, once the terminal state is known, so the
// histogram includes the credit and compensation retries.
func (uc *TransferUseCase) settle(ctx context.Context, transfer *domain.Transfer, start time.Time) (*domain.Transfer, error) {
	creditErr := uc.retrier.Retry(ctx, func() error {
		return uc.wallets.Increment(ctx, transfer.ToAccountID, transfer.Amount)
	})
	if creditErr == nil {
		transfer.State = domain.TransferCompleted
		uc.record(transfer.State, time.Since(start))
		uc.publish(ctx, domain.TopicTransferCompleted, domain.TransferCompletedEvent{
			TransferID:    transfer.ID,
			FromAccountID: transfer.FromAccountID,
			ToAccountID:   transfer.ToAccountID,
			Amount:        transfer.Amount,
			OccurredAt:    time.Now().UTC(),
		})

		uc.logger.Info().
			Str("transfer_id", transfer.ID).
			Str("from", transfer.FromAccountID).
			Str("to", transfer.ToAccountID).
			Str("amount", transfer.Amount.String()).
			Msg("transfer completed")

		return transfer, nil
	}

	compErr := uc.retrier.Retry(ctx, func() error {
		return uc.wallets.Increment(ctx, transfer.FromAccountID, transfer.Amount)
	})
	if compErr == nil {
		transfer.State = domain.TransferCompensated
		uc.record(transfer.State, time.Since(start))

		uc.logger.Warn().
			Str("transfer_id", transfer.ID).
			AnErr("credit_error", creditErr).
			Msg("credit failed, debit compensated")

		return transfer, fmt.Errorf("%w: credit: %v", domain.ErrTransferFailed, creditErr)
	}

	transfer.State = domain.TransferInconsistent
	uc.record(transfer.State, time.Since(start))
	uc.raiseAlert(ctx, transfer, creditErr, compErr)

	return transfer, fmt.Errorf("%w: credit: %v, compensation: %v",
		domain.ErrLedgerInconsistent, creditErr, compErr)
}

// raiseAlert persists a recovery record and publishes an operator
// alert for an inconsistent transfer. Neither step may mask the
// inconsistency itself; failures here are logged and swallowed.
func (uc *TransferUseCase) raiseAlert(ctx context.Context, transfer *domain.Transfer, creditErr, compErr error) {
	reason := fmt.Sprintf("credit: %v; compensation: %v", creditErr, compErr)

	uc.logger.Error().
		Str("transfer_id", transfer.ID).
		Str("from", transfer.FromAccountID).
		Str("to", transfer.ToAccountID).
		Str("amount", transfer.Amount.String()).
		Str("reason", reason).
		Msg("LEDGER INCONSISTENT: manual reconciliation required")

	if uc.recoveryRepo != nil {
		record := &domain.RecoveryRecord{
			ID:            uc.idGen.Generate(),
			TransferID:    transfer.ID,
			FromAccountID: transfer.FromAccountID,
			ToAccountID:   transfer.ToAccountID,
			Amount:        transfer.Amount,
			Reason:        reason,
			CreatedAt:     time.Now().UTC(),
		}
		if err := uc.recoveryRepo.Create(ctx, record); err != nil {
			uc.logger.Error().Err(err).
				Str("transfer_id", transfer.ID).
				Msg("failed to persist recovery record")
		}
	}

	uc.publish(ctx, domain.TopicLedgerAlert, domain.LedgerAlertEvent{
		TransferID:    transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        transfer.Amount,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	})
}

func (uc *TransferUseCase) reject(transfer *domain.Transfer, err error) (*domain.Transfer, error) {
	transfer.State = domain.TransferRejected
	uc.record(transfer.State, 0)

	return transfer, err
}

func (uc *TransferUseCase) record(state domain.TransferState, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.RecordTransfer(state)
	if elapsed > 0 {
		uc.metrics.ObserveTransferDuration(elapsed)
	}
}

func (uc *TransferUseCase) publish(ctx context.Context, topic string, event any) {
	if uc.publisher == nil {
		return
	}

	if err := uc.publisher.Publish(ctx, topic, event); err != nil {
		uc.logger.Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}
