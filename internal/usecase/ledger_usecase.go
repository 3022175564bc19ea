package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/studentledger/internal/domain"
)

// LedgerUseCase handles recording, transferring, deleting and summarizing
// ledger records for an owner.
type LedgerUseCase struct {
	txManager TxManager
	repo      TransactionRepository
	recorder  Recorder
	clock     Clock
	logger    zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase. A nil recorder or clock
// falls back to a no-op recorder and the system clock.
func NewLedgerUseCase(
	txManager TxManager,
	repo TransactionRepository,
	recorder Recorder,
	clock Clock,
	logger zerolog.Logger,
) *LedgerUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &LedgerUseCase{
		txManager: txManager,
		repo:      repo,
		recorder:  recorder,
		clock:     clock,
		logger:    logger,
	}
}

// TransferInput represents input for moving funds from general to tuition.
type TransferInput struct {
	Amount string
	// Date is an optional YYYY-MM-DD; today is used when empty.
	Date string
}

// Dashboard is a ledger snapshot with its derived summary.
type Dashboard struct {
	Transactions []*domain.Transaction
	Summary      domain.Summary
}

// RecordTransaction resolves an intent and persists the resulting records
// in a single store transaction.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, ownerID string, intent domain.TransactionIntent) ([]*domain.Transaction, error) {
	records, err := domain.ResolveIntent(intent)
	if err != nil {
		return nil, err
	}

	if err := uc.persist(ctx, OperationRecord, ownerID, records); err != nil {
		return nil, err
	}

	return records, nil
}

// TransferToTuition records the paired expense/income legs of a transfer.
func (uc *LedgerUseCase) TransferToTuition(ctx context.Context, ownerID string, input TransferInput) ([]*domain.Transaction, error) {
	asOf := uc.clock.Now()
	if input.Date != "" {
		d, err := domain.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		asOf = d
	}

	out, in, err := domain.ResolveTransfer(input.Amount, asOf)
	if err != nil {
		return nil, err
	}

	records := []*domain.Transaction{out, in}
	if err := uc.persist(ctx, OperationTransfer, ownerID, records); err != nil {
		return nil, err
	}

	uc.recorder.TransferCreated()

	return records, nil
}

// DeleteTransaction removes a record. Unknown IDs are not an error.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	found, err := uc.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return uc.persistenceFailure(OperationDelete, err)
	}

	uc.recorder.TransactionDeleted(found)

	if !found {
		uc.logger.Debug().Str("transaction_id", id).Msg("delete of unknown transaction ignored")
	}

	return nil
}

// ListTransactions returns the owner's ledger, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	transactions, err := uc.repo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, uc.persistenceFailure(OperationList, err)
	}

	return transactions, nil
}

// GetDashboard returns the ledger together with its summary. The summary is
// recomputed from the snapshot on every call.
func (uc *LedgerUseCase) GetDashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	transactions, err := uc.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Transactions: transactions,
		Summary:      domain.Summarize(transactions),
	}, nil
}

func (uc *LedgerUseCase) persist(ctx context.Context, operation, ownerID string, records []*domain.Transaction) error {
	now := uc.clock.Now().UTC()
	for _, r := range records {
		r.OwnerID = ownerID
		r.CreatedAt = now
		if err := r.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return uc.persistenceFailure(operation, err)
	}
	defer tx.Rollback(ctx)

	ids, err := uc.insert(ctx, tx, records)
	if err != nil {
		return uc.persistenceFailure(operation, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uc.persistenceFailure(operation, err)
	}

	for i, id := range ids {
		records[i].ID = id
	}

	uc.recorder.EntriesCreated(records)

	return nil
}

// insert appends a lone record with Create and a split pair with CreateMany.
func (uc *LedgerUseCase) insert(ctx context.Context, tx Tx, records []*domain.Transaction) ([]string, error) {
	if len(records) == 1 {
		id, err := uc.repo.Create(ctx, tx, records[0])
		if err != nil {
			return nil, err
		}
		return []string{id}, nil
	}
	return uc.repo.CreateMany(ctx, tx, records)
}

func (uc *LedgerUseCase) persistenceFailure(operation string, err error) error {
	uc.recorder.PersistenceFailed(operation)
	uc.logger.Error().Err(err).Str("operation", operation).Msg("ledger store operation failed")
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceFailure, operation, err)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// NopRecorder discards ledger counters.
type NopRecorder struct{}

func (NopRecorder) EntriesCreated([]*domain.Transaction) {}
func (NopRecorder) TransferCreated()                     {}
func (NopRecorder) TransactionDeleted(bool)              {}
func (NopRecorder) PersistenceFailed(string)             {}
