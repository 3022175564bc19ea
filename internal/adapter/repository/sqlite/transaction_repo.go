package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/usecase"
)

var errForeignTx = errors.New("sqlite: transaction was not started by this store")

const (
	insertTransaction = `INSERT INTO ledger_transactions (id, owner_id, tx_date, kind, category, description, amount, allocation, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	deleteTransaction = `DELETE FROM ledger_transactions WHERE owner_id = ? AND id = ?`

	listTransactionsByOwner = `SELECT id, owner_id, tx_date, kind, category, description, amount, allocation, created_at
FROM ledger_transactions
WHERE owner_id = ?
ORDER BY tx_date DESC, id ASC`
)

// TransactionRepository implements usecase.TransactionRepository. Amounts are
// stored as decimal strings so no precision is lost.
type TransactionRepository struct {
	db    *sql.DB
	idGen usecase.IDGenerator
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB, idGen usecase.IDGenerator) *TransactionRepository {
	return &TransactionRepository{db: db, idGen: idGen}
}

// Create inserts a single record inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) (string, error) {
	ids, err := r.CreateMany(ctx, tx, []*domain.Transaction{transaction})
	if err != nil {
		return "", err
	}

	return ids[0], nil
}

// CreateMany inserts records inside tx in order.
func (r *TransactionRepository) CreateMany(ctx context.Context, tx usecase.Tx, transactions []*domain.Transaction) ([]string, error) {
	sqlTx, ok := tx.(*Tx)
	if !ok {
		return nil, errForeignTx
	}

	stmt, err := sqlTx.tx.PrepareContext(ctx, insertTransaction)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		id := r.idGen.Generate()

		_, err := stmt.ExecContext(ctx,
			id,
			t.OwnerID,
			t.Date.UTC().Format(domain.DateLayout),
			string(t.Kind),
			t.Category,
			t.Description,
			t.Amount.String(),
			string(t.Allocation),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// Delete removes the owner's record with the given id.
func (r *TransactionRepository) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, deleteTransaction, ownerID, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListAll returns every record of the owner, newest first.
func (r *TransactionRepository) ListAll(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactionsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var (
		t                         domain.Transaction
		date, kind, amount, alloc string
		createdAt                 string
	)

	if err := rows.Scan(&t.ID, &t.OwnerID, &date, &kind, &t.Category, &t.Description, &amount, &alloc, &createdAt); err != nil {
		return nil, err
	}

	parsedDate, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("row %s: bad date %q: %w", t.ID, date, err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("row %s: bad amount %q: %w", t.ID, amount, err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("row %s: bad created_at %q: %w", t.ID, createdAt, err)
	}

	t.Date = parsedDate
	t.Kind = domain.Kind(kind)
	t.Amount = value
	t.Allocation = domain.Allocation(alloc)
	t.CreatedAt = created

	return &t, nil
}
