package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/infrastructure/postgres/generated"
	"github.com/iho/studentledger/internal/usecase"
)

var errForeignTx = errors.New("postgres: transaction was not started by this store")

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
	idGen   usecase.IDGenerator
}

// NewTransactionRepository creates a new TransactionRepository. IDs are
// assigned on insert by idGen.
func NewTransactionRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *TransactionRepository {
	return newTransactionRepository(pool, idGen)
}

func newTransactionRepository(db generated.DBTX, idGen usecase.IDGenerator) *TransactionRepository {
	return &TransactionRepository{
		queries: generated.New(db),
		idGen:   idGen,
	}
}

// Create inserts a single record inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) (string, error) {
	ids, err := r.CreateMany(ctx, tx, []*domain.Transaction{transaction})
	if err != nil {
		return "", err
	}

	return ids[0], nil
}

// CreateMany inserts records inside tx in order. Nothing is visible to other
// readers until tx commits.
func (r *TransactionRepository) CreateMany(ctx context.Context, tx usecase.Tx, transactions []*domain.Transaction) ([]string, error) {
	pgTx, ok := tx.(*Tx)
	if !ok {
		return nil, errForeignTx
	}
	queries := r.queries.WithTx(pgTx.PgxTx())

	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		id := r.idGen.Generate()

		err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
			ID:          id,
			OwnerID:     t.OwnerID,
			TxDate:      timeToPgDate(t.Date),
			Kind:        string(t.Kind),
			Category:    t.Category,
			Description: t.Description,
			Amount:      decimalToNumeric(t.Amount),
			Allocation:  string(t.Allocation),
			CreatedAt:   timeToPgTimestamptz(t.CreatedAt),
		})
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// Delete removes the owner's record with the given id.
func (r *TransactionRepository) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	affected, err := r.queries.DeleteTransaction(ctx, generated.DeleteTransactionParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListAll returns every record of the owner, newest first.
func (r *TransactionRepository) ListAll(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToTransaction(row))
	}

	return transactions, nil
}

func rowToTransaction(row generated.LedgerTransaction) *domain.Transaction {
	return &domain.Transaction{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Date:        pgDateToTime(row.TxDate),
		Kind:        domain.Kind(row.Kind),
		Category:    row.Category,
		Description: row.Description,
		Amount:      numericToDecimal(row.Amount),
		Allocation:  domain.Allocation(row.Allocation),
		CreatedAt:   row.CreatedAt.Time,
	}
}
