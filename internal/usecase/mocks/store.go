package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// MockBankStore is an in-memory account store with real per-account
// exclusive locks. Locks taken by GetByNumbersForUpdate are held until the
// transaction commits or rolls back, mirroring SELECT ... FOR UPDATE, so
// concurrency tests exercise the same locking discipline as the postgres
// adapter. It implements both TransactionManager and AccountRepository.
type MockBankStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account // by account number
	locks    map[string]*sync.Mutex     // by account number
}

func NewMockBankStore() *MockBankStore {
	return &MockBankStore{
		accounts: make(map[string]*domain.Account),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Put seeds an account.
func (s *MockBankStore) Put(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = account
	if _, ok := s.locks[account.AccountNumber]; !ok {
		s.locks[account.AccountNumber] = &sync.Mutex{}
	}
}

// Balance returns the committed balance of an account.
func (s *MockBankStore) Balance(number string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[number]; ok {
		return a.Balance
	}
	return decimal.Zero
}

type storeTx struct {
	store   *MockBankStore
	held    []*sync.Mutex
	pending map[string]decimal.Decimal // account ID -> new balance
	done    bool
}

// Begin starts a transaction.
func (s *MockBankStore) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &storeTx{
		store:   s,
		pending: make(map[string]decimal.Decimal),
	}, nil
}

func (t *storeTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	for _, a := range t.store.accounts {
		if balance, ok := t.pending[a.ID]; ok {
			a.Balance = balance
		}
	}
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *storeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

func (t *storeTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
}

// Create inserts an account outside any transaction.
func (s *MockBankStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountNumber]; ok {
		return domain.ErrAccountNumberTaken
	}
	s.accounts[account.AccountNumber] = account
	s.locks[account.AccountNumber] = &sync.Mutex{}
	return nil
}

// GetByNumber returns a snapshot of an account without locking it.
func (s *MockBankStore) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	snapshot := *a
	return &snapshot, nil
}

// GetByNumbersForUpdate locks the requested accounts in the order given
// and returns snapshots taken under the locks. Unknown numbers are
// silently skipped, matching the SQL ANY($1) behavior.
func (s *MockBankStore) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	t := tx.(*storeTx)

	var accounts []*domain.Account
	for _, n := range numbers {
		s.mu.Lock()
		lock, ok := s.locks[n]
		s.mu.Unlock()
		if !ok {
			continue
		}

		lock.Lock()
		t.held = append(t.held, lock)

		s.mu.Lock()
		snapshot := *s.accounts[n]
		s.mu.Unlock()

		accounts = append(accounts, &snapshot)
	}

	return accounts, nil
}

// UpdateBalance stages a balance write; it becomes visible on commit.
func (s *MockBankStore) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t := tx.(*storeTx)
	t.pending[id] = balance
	return nil
}

// ListByClient returns snapshots of a client's accounts.
func (s *MockBankStore) ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var accounts []*domain.Account
	for _, a := range s.accounts {
		if a.ClientID == clientID {
			snapshot := *a
			accounts = append(accounts, &snapshot)
		}
	}
	return accounts, nil
}
