package domain

import "errors"

var (
	// Client errors
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidName    = errors.New("client name must not be empty")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidNumber      = errors.New("account number must not be empty")
	ErrAccountNumberTaken = errors.New("account number already in use")
	ErrInvalidCurrency    = errors.New("currency must be a three-letter ISO code")
	ErrNegativeBalance    = errors.New("balance must not be negative")

	// Transfer errors
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrCurrencyMismatch  = errors.New("cannot transfer between different currencies")
	ErrUnauthorized      = errors.New("client does not own the source account")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLockTimeout       = errors.New("account lock could not be acquired in time")
)
