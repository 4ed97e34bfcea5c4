package domain_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func validCommand() domain.TransferCommand {
	return domain.TransferCommand{
		IdempotencyKey: "key-1",
		FromAccountID:  1,
		ToAccountID:    2,
		AmountMinor:    500,
		Currency:       "usd",
	}
}

func TestTransferCommand_Normalize(t *testing.T) {
	cmd := validCommand()
	cmd.Description = strings.Repeat("d", 300)
	cmd.ExternalRef = stringPtr(strings.Repeat("r", 200))

	got, err := cmd.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Len(t, got.Description, domain.MaxDescriptionLength)
	require.NotNil(t, got.ExternalRef)
	assert.Len(t, *got.ExternalRef, domain.MaxExternalRefLength)
	assert.Len(t, *cmd.ExternalRef, 200, "input must not be mutated")
}

func TestTransferCommand_NormalizeRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.TransferCommand)
	}{
		{"same account", func(c *domain.TransferCommand) { c.ToAccountID = c.FromAccountID }},
		{"missing key", func(c *domain.TransferCommand) { c.IdempotencyKey = "  " }},
		{"key too long", func(c *domain.TransferCommand) { c.IdempotencyKey = strings.Repeat("k", 81) }},
		{"zero amount", func(c *domain.TransferCommand) { c.AmountMinor = 0 }},
		{"negative amount", func(c *domain.TransferCommand) { c.AmountMinor = -5 }},
		{"bad currency", func(c *domain.TransferCommand) { c.Currency = "dollars" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)
			_, err := cmd.Normalize()
			assert.Error(t, err)
		})
	}
}

func TestTransferCommand_SameAccountCheckedFirst(t *testing.T) {
	cmd := domain.TransferCommand{FromAccountID: 3, ToAccountID: 3}
	_, err := cmd.Normalize()
	assert.ErrorIs(t, err, domain.ErrSameAccount)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", domain.Truncate("héllo", 5))
	assert.Equal(t, "hé", domain.Truncate("héllo", 2))
	assert.Nil(t, domain.TruncatePtr(nil, 3))
}
