package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		amount  int64
		want    int64
		wantErr error
	}{
		{
			name:    "exact balance",
			account: domain.Account{BalanceMinor: 500},
			amount:  500,
			want:    0,
		},
		{
			name:    "overdraft rejected",
			account: domain.Account{BalanceMinor: 499},
			amount:  500,
			want:    499,
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:    "issuer goes negative",
			account: domain.Account{BalanceMinor: 0, AllowNegative: true},
			amount:  10_000,
			want:    -10_000,
		},
		{
			name:    "underflow",
			account: domain.Account{BalanceMinor: math.MinInt64 + 1, AllowNegative: true},
			amount:  2,
			want:    math.MinInt64 + 1,
			wantErr: domain.ErrBalanceOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := tt.account
			err := acc.Withdraw(tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, acc.BalanceMinor)
		})
	}
}

func TestAccount_Deposit(t *testing.T) {
	acc := domain.Account{BalanceMinor: 100}
	require.NoError(t, acc.Deposit(250))
	assert.Equal(t, int64(350), acc.BalanceMinor)

	full := domain.Account{BalanceMinor: math.MaxInt64 - 1}
	assert.ErrorIs(t, full.Deposit(2), domain.ErrBalanceOverflow)
	assert.Equal(t, int64(math.MaxInt64-1), full.BalanceMinor)
}

func TestAccount_HasFunds(t *testing.T) {
	acc := domain.Account{BalanceMinor: 1000}
	assert.True(t, acc.HasFunds(1000))
	assert.False(t, acc.HasFunds(1001))
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := domain.NormalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)

	for _, bad := range []string{"", "US", "USDT", "U5D", "ÜSD"} {
		_, err := domain.NormalizeCurrency(bad)
		assert.Error(t, err, bad)
	}
}

func TestMinorUnitExponent(t *testing.T) {
	assert.Equal(t, int32(2), domain.MinorUnitExponent("USD"))
	assert.Equal(t, int32(0), domain.MinorUnitExponent("JPY"))
	assert.Equal(t, int32(3), domain.MinorUnitExponent("KWD"))
}
