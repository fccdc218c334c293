package domain_test

import (
	"testing"
	"time"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_FormattedBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance decimal.Decimal
		want    string
	}{
		{"whole amount", decimal.NewFromInt(1500), "1500.00"},
		{"fractional amount", decimal.RequireFromString("12.5"), "12.50"},
		{"rounds to two digits", decimal.RequireFromString("0.005"), "0.01"},
		{"zero", decimal.Zero, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.Account{CurrentBalance: tt.balance}
			assert.Equal(t, tt.want, acc.FormattedBalance())
		})
	}
}

func TestAccount_CanDebit(t *testing.T) {
	acc := domain.Account{CurrentBalance: decimal.NewFromInt(100)}

	assert.True(t, acc.CanDebit(decimal.NewFromInt(100)))
	assert.True(t, acc.CanDebit(decimal.Zero))
	assert.False(t, acc.CanDebit(decimal.NewFromInt(101)))
}

func TestAccount_IsDeleted(t *testing.T) {
	now := time.Now()

	assert.False(t, domain.Account{}.IsDeleted())
	assert.True(t, domain.Account{DeletedAt: &now}.IsDeleted())
}
