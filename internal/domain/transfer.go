package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer describes a committed balance movement between two accounts.
// FromBalance and ToBalance are the balances after the move.
type Transfer struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Currency          string
	FromBalance       decimal.Decimal
	ToBalance         decimal.Decimal
	TransferredAt     time.Time
}

// ValidateTransferRequest applies the request-shape checks that need no
// store access: distinct accounts and a strictly positive amount.
func ValidateTransferRequest(fromNumber, toNumber string, amount decimal.Decimal) error {
	if fromNumber == toNumber {
		return ErrSameAccount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
