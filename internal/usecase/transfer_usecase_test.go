package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func seedAccount(store *mocks.MockBankStore, id, clientID, number, currency string, balance int64) {
	store.Put(&domain.Account{
		ID:            id,
		ClientID:      clientID,
		AccountNumber: number,
		Currency:      currency,
		Balance:       decimal.NewFromInt(balance),
	})
}

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(store *mocks.MockBankStore)
		input     usecase.TransferInput
		errorType error
	}{
		{
			name: "successful transfer",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 100)
				seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 0)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(40),
				ClientID:          "client-1",
			},
		},
		{
			name:  "reject same account",
			setup: func(store *mocks.MockBankStore) {},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-001",
				Amount:            decimal.NewFromInt(10),
				ClientID:          "client-1",
			},
			errorType: domain.ErrSameAccount,
		},
		{
			name:  "reject zero amount",
			setup: func(store *mocks.MockBankStore) {},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.Zero,
				ClientID:          "client-1",
			},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:  "reject negative amount",
			setup: func(store *mocks.MockBankStore) {},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(-10),
				ClientID:          "client-1",
			},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name: "source account not found",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 0)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-404",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(10),
				ClientID:          "client-1",
			},
			errorType: domain.ErrAccountNotFound,
		},
		{
			name: "destination account not found",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 100)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-404",
				Amount:            decimal.NewFromInt(10),
				ClientID:          "client-1",
			},
			errorType: domain.ErrAccountNotFound,
		},
		{
			name: "reject currency mismatch",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 100)
				seedAccount(store, "acc-2", "client-2", "ACC-002", "EUR", 100)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(10),
				ClientID:          "client-1",
			},
			errorType: domain.ErrCurrencyMismatch,
		},
		{
			name: "reject caller who does not own source",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 100)
				seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 100)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(10),
				ClientID:          "client-2",
			},
			errorType: domain.ErrUnauthorized,
		},
		{
			name: "reject insufficient funds",
			setup: func(store *mocks.MockBankStore) {
				seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 20)
				seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 0)
			},
			input: usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(50),
				ClientID:          "client-1",
			},
			errorType: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockBankStore()
			tt.setup(store)

			before := store.Balance(tt.input.FromAccountNumber).Add(store.Balance(tt.input.ToAccountNumber))

			uc := usecase.NewTransferUseCase(store, store, mocks.NewMockRetrier(), nil)
			transfer, err := uc.Transfer(context.Background(), tt.input)

			if tt.errorType != nil {
				if err != tt.errorType {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				// no mutation on failure
				after := store.Balance(tt.input.FromAccountNumber).Add(store.Balance(tt.input.ToAccountNumber))
				if !after.Equal(before) {
					t.Fatalf("balances changed on failed transfer: before %s, after %s", before, after)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if transfer == nil {
				t.Fatal("expected transfer result, got nil")
			}

			if !store.Balance("ACC-001").Equal(decimal.NewFromInt(60)) {
				t.Errorf("expected source balance 60, got %s", store.Balance("ACC-001"))
			}
			if !store.Balance("ACC-002").Equal(decimal.NewFromInt(40)) {
				t.Errorf("expected destination balance 40, got %s", store.Balance("ACC-002"))
			}
			if !transfer.FromBalance.Equal(decimal.NewFromInt(60)) || !transfer.ToBalance.Equal(decimal.NewFromInt(40)) {
				t.Errorf("result balances wrong: from %s, to %s", transfer.FromBalance, transfer.ToBalance)
			}
			if transfer.Currency != "USD" {
				t.Errorf("expected currency USD, got %s", transfer.Currency)
			}
		})
	}
}

func TestTransferUseCase_ConcurrentSameDirection(t *testing.T) {
	store := mocks.NewMockBankStore()
	seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 1000)
	seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 0)

	uc := usecase.NewTransferUseCase(store, store, mocks.NewMockRetrier(), nil)

	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transfer(context.Background(), usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(50),
				ClientID:          "client-1",
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 10 {
		t.Fatalf("expected all 10 transfers to succeed, got %d", successCount.Load())
	}

	if !store.Balance("ACC-001").Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected source balance 500, got %s", store.Balance("ACC-001"))
	}
	if !store.Balance("ACC-002").Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected destination balance 500, got %s", store.Balance("ACC-002"))
	}
}

// Opposite-direction transfers on the same pair must not deadlock thanks
// to the canonical lock order, and the pair's total must be conserved.
func TestTransferUseCase_ConcurrentOppositeDirections(t *testing.T) {
	store := mocks.NewMockBankStore()
	seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 500)
	seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 500)

	uc := usecase.NewTransferUseCase(store, store, mocks.NewMockRetrier(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = uc.Transfer(context.Background(), usecase.TransferInput{
				FromAccountNumber: "ACC-001",
				ToAccountNumber:   "ACC-002",
				Amount:            decimal.NewFromInt(1),
				ClientID:          "client-1",
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = uc.Transfer(context.Background(), usecase.TransferInput{
				FromAccountNumber: "ACC-002",
				ToAccountNumber:   "ACC-001",
				Amount:            decimal.NewFromInt(1),
				ClientID:          "client-2",
			})
		}()
	}
	wg.Wait()

	total := store.Balance("ACC-001").Add(store.Balance("ACC-002"))
	if !total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("conservation violated: total %s, want 1000", total)
	}

	if store.Balance("ACC-001").IsNegative() || store.Balance("ACC-002").IsNegative() {
		t.Fatalf("negative balance observed: %s / %s", store.Balance("ACC-001"), store.Balance("ACC-002"))
	}
}

func TestTransferUseCase_InvalidatesAccountListCache(t *testing.T) {
	store := mocks.NewMockBankStore()
	seedAccount(store, "acc-1", "client-1", "ACC-001", "USD", 100)
	seedAccount(store, "acc-2", "client-2", "ACC-002", "USD", 0)

	cache := mocks.NewMockCache()
	cache.Set(context.Background(), "accounts:client:client-1", "stale", 0)
	cache.Set(context.Background(), "accounts:client:client-2", "stale", 0)

	uc := usecase.NewTransferUseCase(store, store, mocks.NewMockRetrier(), cache)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountNumber: "ACC-001",
		ToAccountNumber:   "ACC-002",
		Amount:            decimal.NewFromInt(10),
		ClientID:          "client-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"accounts:client:client-1", "accounts:client:client-2"} {
		if _, err := cache.Get(context.Background(), key); err != mocks.ErrCacheMiss {
			t.Errorf("expected %s to be invalidated", key)
		}
	}
}
