package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/studentledger/internal/adapter/repository/sqlite"
	"github.com/iho/studentledger/internal/domain"
	infrasqlite "github.com/iho/studentledger/internal/infrastructure/sqlite"
	"github.com/iho/studentledger/internal/usecase"
)

type counterIDs struct{ n int }

func (c *counterIDs) Generate() string {
	c.n++
	return fmt.Sprintf("01%04d", c.n)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, infrasqlite.RunMigrations(path, zerolog.Nop()))

	db, err := infrasqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func record(date string, kind domain.Kind, category string, alloc domain.Allocation, amount string) *domain.Transaction {
	d, _ := time.Parse(domain.DateLayout, date)
	return &domain.Transaction{
		OwnerID:    "u1",
		Date:       d,
		Kind:       kind,
		Category:   category,
		Allocation: alloc,
		Amount:     decimal.RequireFromString(amount),
		CreatedAt:  time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	txMgr := sqlite.NewTxManager(db)
	repo := sqlite.NewTransactionRepository(db, &counterIDs{})

	tx, err := txMgr.Begin(ctx)
	require.NoError(t, err)

	ids, err := repo.CreateMany(ctx, tx, []*domain.Transaction{
		record("2024-01-10", domain.KindIncome, "Job", domain.AllocationTuition, "30.003"),
		record("2024-01-10", domain.KindIncome, "Job", domain.AllocationGeneral, "70.007"),
		record("2024-01-12", domain.KindExpense, "Food", domain.AllocationNone, "12.5"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, []string{"010001", "010002", "010003"}, ids)

	list, err := repo.ListAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "010003", list[0].ID, "newest date first")
	assert.Equal(t, "010001", list[1].ID, "same date ordered by id")
	assert.Equal(t, "010002", list[2].ID)
	assert.True(t, list[1].Amount.Equal(decimal.RequireFromString("30.003")))
	assert.Equal(t, domain.AllocationNone, list[0].Allocation)
	assert.Equal(t, "Food", list[0].Category)

	other, err := repo.ListAll(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTransactionRepository_RollbackDiscardsWrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	txMgr := sqlite.NewTxManager(db)
	repo := sqlite.NewTransactionRepository(db, &counterIDs{})

	tx, err := txMgr.Begin(ctx)
	require.NoError(t, err)

	_, err = repo.Create(ctx, tx, record("2024-01-10", domain.KindExpense, "Rent", domain.AllocationNone, "800"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
	// A second rollback after completion is harmless.
	require.NoError(t, tx.Rollback(ctx))

	list, err := repo.ListAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionRepository_CheckConstraintFailsWholeBatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	txMgr := sqlite.NewTxManager(db)
	repo := sqlite.NewTransactionRepository(db, &counterIDs{})

	tx, err := txMgr.Begin(ctx)
	require.NoError(t, err)

	_, err = repo.CreateMany(ctx, tx, []*domain.Transaction{
		record("2024-01-10", domain.KindIncome, "Job", domain.AllocationTuition, "300"),
		record("2024-01-10", domain.KindIncome, "Job", domain.AllocationNone, "700"),
	})
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	list, err := repo.ListAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	txMgr := sqlite.NewTxManager(db)
	repo := sqlite.NewTransactionRepository(db, &counterIDs{})

	tx, err := txMgr.Begin(ctx)
	require.NoError(t, err)
	id, err := repo.Create(ctx, tx, record("2024-01-10", domain.KindExpense, "Rent", domain.AllocationNone, "800"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	found, err := repo.Delete(ctx, "someone-else", id)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = repo.Delete(ctx, "u1", id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Delete(ctx, "u1", id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTransactionRepository_ForeignTx(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewTransactionRepository(db, &counterIDs{})

	_, err := repo.Create(context.Background(), nopTx{}, record("2024-01-10", domain.KindExpense, "Rent", domain.AllocationNone, "1"))
	assert.Error(t, err)
}

func TestLedgerUseCase_WithSQLiteStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	uc := usecase.NewLedgerUseCase(
		sqlite.NewTxManager(db),
		sqlite.NewTransactionRepository(db, &counterIDs{}),
		nil, nil, zerolog.Nop(),
	)

	_, err := uc.RecordTransaction(ctx, "u1", domain.TransactionIntent{
		Date: "2024-01-01", Kind: "Expense", Category: "Tuition", Amount: "5000",
	})
	require.NoError(t, err)
	_, err = uc.RecordTransaction(ctx, "u1", domain.TransactionIntent{
		Date: "2024-01-02", Kind: "Income", Category: "Job", Amount: "1000", TuitionPercent: "30",
	})
	require.NoError(t, err)
	_, err = uc.TransferToTuition(ctx, "u1", usecase.TransferInput{Amount: "200", Date: "2024-01-03"})
	require.NoError(t, err)

	dash, err := uc.GetDashboard(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, dash.Transactions, 5)

	assert.True(t, dash.Summary.TuitionRemaining.Equal(decimal.NewFromInt(4500)), "got %s", dash.Summary.TuitionRemaining)
	assert.True(t, dash.Summary.GeneralBalance.Equal(decimal.NewFromInt(500)), "got %s", dash.Summary.GeneralBalance)
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := sqlite.NewUserRepository(db)

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:             "user-1",
		Email:          "sam@example.com",
		Name:           "Sam",
		HashedPassword: "hash",
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.Create(ctx, user))

	err := repo.Create(ctx, &domain.User{ID: "user-2", Email: "sam@example.com", HashedPassword: "x", CreatedAt: now, UpdatedAt: now})
	assert.True(t, errors.Is(err, domain.ErrUserAlreadyExists), "got %v", err)

	got, err := repo.GetByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
	assert.True(t, got.Active)
	assert.True(t, got.CreatedAt.Equal(now))

	got, err = repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

type nopTx struct{}

func (nopTx) Commit(context.Context) error   { return nil }
func (nopTx) Rollback(context.Context) error { return nil }
