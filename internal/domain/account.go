package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a client-owned account holding a balance in a single
// currency. AccountNumber is the external lookup key; ClientID and Currency
// are fixed for the lifetime of the account.
type Account struct {
	ID            string
	ClientID      string
	AccountNumber string
	Currency      string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateDebit checks if the account can be debited by amount without
// going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ValidateCurrency checks that code looks like an ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return ErrInvalidCurrency
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ErrInvalidCurrency
		}
	}
	return nil
}
