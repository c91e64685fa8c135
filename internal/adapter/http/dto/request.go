package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// CreateClientRequest represents a request to register a client.
type CreateClientRequest struct {
	Name string `json:"name"`
}

// RenameClientRequest represents a request to rename a client.
type RenameClientRequest struct {
	Name string `json:"name"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	AccountNumber  string          `json:"account_number"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput(clientID string) usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		ClientID:       clientID,
		AccountNumber:  r.AccountNumber,
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
	}
}

// TransferRequest represents a request to transfer money between accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	ClientID          string          `json:"client_id"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountNumber: r.FromAccountNumber,
		ToAccountNumber:   r.ToAccountNumber,
		Amount:            r.Amount,
		ClientID:          r.ClientID,
	}
}
