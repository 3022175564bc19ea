package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/usecase"
)

// MockTransactionRepository is an in-memory TransactionRepository. Writes
// made through a *MockTx become visible only when that tx commits.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	counter      int

	CreateManyFunc func(ctx context.Context, tx usecase.Tx, transactions []*domain.Transaction) ([]string, error)
	DeleteFunc     func(ctx context.Context, ownerID, id string) (bool, error)
	ListAllFunc    func(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) (string, error) {
	ids, err := m.CreateMany(ctx, tx, []*domain.Transaction{transaction})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (m *MockTransactionRepository) CreateMany(ctx context.Context, tx usecase.Tx, transactions []*domain.Transaction) ([]string, error) {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, tx, transactions)
	}

	m.mu.Lock()
	ids := make([]string, len(transactions))
	staged := make([]domain.Transaction, len(transactions))
	for i, t := range transactions {
		m.counter++
		ids[i] = fmt.Sprintf("tx-%04d", m.counter)
		staged[i] = *t
		staged[i].ID = ids[i]
	}
	m.mu.Unlock()

	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range staged {
			m.transactions[staged[i].ID] = &staged[i]
		}
	}

	if mtx, ok := tx.(*MockTx); ok {
		mtx.onCommit = append(mtx.onCommit, apply)
	} else {
		apply()
	}

	return ids, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok || t.OwnerID != ownerID {
		return false, nil
	}
	delete(m.transactions, id)
	return true, nil
}

func (m *MockTransactionRepository) ListAll(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		if t.OwnerID == ownerID {
			copied := *t
			result = append(result, &copied)
		}
	}
	domain.SortLedger(result)
	return result, nil
}

// Len returns the number of committed records.
func (m *MockTransactionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	mu    sync.Mutex
	begun []*MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTx{}
	m.mu.Lock()
	m.begun = append(m.begun, tx)
	m.mu.Unlock()
	return tx, nil
}

// Begun returns every tx handed out by Begin.
func (m *MockTxManager) Begun() []*MockTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTx(nil), m.begun...)
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
	onCommit   []func()
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	for _, f := range m.onCommit {
		f()
	}
	m.onCommit = nil
	m.Committed = true
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.Committed {
		return nil
	}
	m.onCommit = nil
	m.RolledBack = true
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock returns a fixed time.
type MockClock struct {
	At time.Time
}

func (m MockClock) Now() time.Time { return m.At }

// MockRecorder counts ledger events.
type MockRecorder struct {
	mu                 sync.Mutex
	Entries            int
	Transfers          int
	Deleted            int
	DeletedNotFound    int
	PersistenceFailure map[string]int
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{PersistenceFailure: make(map[string]int)}
}

func (m *MockRecorder) EntriesCreated(transactions []*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries += len(transactions)
}

func (m *MockRecorder) TransferCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transfers++
}

func (m *MockRecorder) TransactionDeleted(found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if found {
		m.Deleted++
	} else {
		m.DeletedNotFound++
	}
}

func (m *MockRecorder) PersistenceFailed(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceFailure[operation]++
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte(usecase.IdempotencyProcessing)
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns the stored value for key.
func (m *MockIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
