package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateTransferRequest(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  decimal.Decimal
		wantErr error
	}{
		{
			name:   "valid request",
			from:   "ACC-001",
			to:     "ACC-002",
			amount: decimal.NewFromInt(10),
		},
		{
			name:    "same account",
			from:    "ACC-001",
			to:      "ACC-001",
			amount:  decimal.NewFromInt(10),
			wantErr: ErrSameAccount,
		},
		{
			name:    "zero amount",
			from:    "ACC-001",
			to:      "ACC-002",
			amount:  decimal.Zero,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			from:    "ACC-001",
			to:      "ACC-002",
			amount:  decimal.NewFromInt(-5),
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransferRequest(tt.from, tt.to, tt.amount)
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
