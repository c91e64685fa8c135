package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransferUseCase moves money between two accounts. Both account rows are
// locked before any balance is read, always in ascending account-number
// order regardless of transfer direction, so two opposite transfers on the
// same pair can never deadlock each other. The retrier covers conflicts
// the ordering cannot prevent (overlapping multi-pair workloads).
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	retrier     Retrier
	cache       Cache
}

// NewTransferUseCase creates a new TransferUseCase. cache may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	retrier Retrier,
	cache Cache,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		retrier:     retrier,
		cache:       cache,
	}
}

// TransferInput represents a transfer request.
type TransferInput struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	// ClientID is the identity the transfer runs on behalf of. It must
	// own the source account; the destination owner is not checked.
	ClientID string
}

// Transfer debits the source account and credits the destination within a
// single transaction. On any validation failure the transaction is rolled
// back and no balance changes are visible.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transfer, error) {
	err := domain.ValidateTransferRequest(input.FromAccountNumber, input.ToAccountNumber, input.Amount)
	if err != nil {
		return nil, err
	}

	var result *domain.Transfer

	err = uc.retrier.Retry(ctx, func() error {
		transfer, fromClientID, toClientID, err := uc.transferOnce(ctx, input)
		if err != nil {
			return err
		}

		result = transfer
		uc.invalidateAccountLists(ctx, fromClientID, toClientID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *TransferUseCase) transferOnce(ctx context.Context, input TransferInput) (*domain.Transfer, string, string, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, "", "", err
	}
	defer tx.Rollback(ctx)

	// Canonical lock order: sorted account numbers, never from/to roles.
	numbers := []string{input.FromAccountNumber, input.ToAccountNumber}
	sort.Strings(numbers)

	accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, numbers)
	if err != nil {
		return nil, "", "", err
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.AccountNumber {
		case input.FromAccountNumber:
			from = a
		case input.ToAccountNumber:
			to = a
		}
	}

	if from == nil || to == nil {
		return nil, "", "", domain.ErrAccountNotFound
	}

	if from.Currency != to.Currency {
		return nil, "", "", domain.ErrCurrencyMismatch
	}

	if from.ClientID != input.ClientID {
		return nil, "", "", domain.ErrUnauthorized
	}

	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, "", "", err
	}

	now := time.Now().UTC()

	fromBalance := from.ApplyDebit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, fromBalance, now); err != nil {
		return nil, "", "", err
	}

	toBalance := to.ApplyCredit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, toBalance, now); err != nil {
		return nil, "", "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", "", err
	}

	transfer := &domain.Transfer{
		FromAccountNumber: from.AccountNumber,
		ToAccountNumber:   to.AccountNumber,
		Amount:            input.Amount,
		Currency:          from.Currency,
		FromBalance:       fromBalance,
		ToBalance:         toBalance,
		TransferredAt:     now,
	}

	return transfer, from.ClientID, to.ClientID, nil
}

// invalidateAccountLists drops cached account listings for both owners.
// Best effort: a stale cache entry expires on its own TTL.
func (uc *TransferUseCase) invalidateAccountLists(ctx context.Context, clientIDs ...string) {
	if uc.cache == nil {
		return
	}

	seen := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		_ = uc.cache.Delete(ctx, accountListCacheKey(id))
	}
}
