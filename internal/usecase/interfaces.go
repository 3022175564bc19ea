package usecase

import (
	"context"
	"time"

	"github.com/iho/studentledger/internal/domain"
)

// TransactionRepository defines data access for ledger records.
type TransactionRepository interface {
	// Create appends one record inside tx and returns its store-assigned ID.
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) (string, error)
	// CreateMany appends records inside tx in order. Atomic once tx commits.
	CreateMany(ctx context.Context, tx Tx, transactions []*domain.Transaction) ([]string, error)
	// Delete removes the owner's record. Returns false if nothing matched.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
	// ListAll returns the owner's ledger ordered by date descending, then ID.
	ListAll(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Tx represents a store transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Recorder receives ledger counters.
type Recorder interface {
	EntriesCreated(transactions []*domain.Transaction)
	TransferCreated()
	TransactionDeleted(found bool)
	PersistenceFailed(operation string)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes a claimed key so the request may be retried.
	Release(ctx context.Context, key string) error
}
