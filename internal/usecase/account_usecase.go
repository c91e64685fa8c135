package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles account opening and read paths.
type AccountUseCase struct {
	accountRepo AccountRepository
	clientRepo  ClientRepository
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil to
// disable listing caching.
func NewAccountUseCase(
	accountRepo AccountRepository,
	clientRepo ClientRepository,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	ClientID       string
	AccountNumber  string
	Currency       string
	InitialBalance decimal.Decimal
}

// OpenAccount creates a new account for an existing client.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if input.AccountNumber == "" {
		return nil, domain.ErrInvalidNumber
	}

	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrNegativeBalance
	}

	exists, err := uc.clientRepo.Exists(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrClientNotFound
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		ClientID:      input.ClientID,
		AccountNumber: input.AccountNumber,
		Currency:      input.Currency,
		Balance:       input.InitialBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountListCacheKey(input.ClientID))
	}

	return account, nil
}

// GetAccountByNumber retrieves an account by its account number without
// taking any lock.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsByClient lists all accounts owned by a client. A client
// without accounts yields an empty list; an unknown client is an error.
func (uc *AccountUseCase) ListAccountsByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, accountListCacheKey(clientID)); err == nil {
			var accounts []*domain.Account
			if err := json.Unmarshal([]byte(cached), &accounts); err == nil {
				return accounts, nil
			}
		}
	}

	exists, err := uc.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrClientNotFound
	}

	accounts, err := uc.accountRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(accounts); err == nil {
			_ = uc.cache.Set(ctx, accountListCacheKey(clientID), string(data), uc.cacheTTL)
		}
	}

	return accounts, nil
}

func accountListCacheKey(clientID string) string {
	return "accounts:client:" + clientID
}
