package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountValidateDebit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if err := acc.ValidateDebit(decimal.NewFromInt(100)); err != nil {
		t.Fatalf("debit of full balance should be allowed, got %v", err)
	}

	if err := acc.ValidateDebit(decimal.NewFromInt(101)); err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAccountApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromFloat(10.50)}

	debited := acc.ApplyDebit(decimal.NewFromFloat(0.25))
	if !debited.Equal(decimal.NewFromFloat(10.25)) {
		t.Fatalf("expected 10.25 after debit, got %s", debited)
	}

	credited := acc.ApplyCredit(decimal.NewFromFloat(0.75))
	if !credited.Equal(decimal.NewFromFloat(11.25)) {
		t.Fatalf("expected 11.25 after credit, got %s", credited)
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"USD", false},
		{"EUR", false},
		{"usd", true},
		{"US", true},
		{"USDT", true},
		{"", true},
		{"U1D", true},
	}

	for _, tt := range tests {
		err := ValidateCurrency(tt.code)
		if tt.wantErr && err == nil {
			t.Errorf("ValidateCurrency(%q) expected error, got nil", tt.code)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateCurrency(%q) unexpected error: %v", tt.code, err)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateName("   "); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}
