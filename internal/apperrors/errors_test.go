package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	notFound := apperrors.NewNotFoundError("account 7")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", notFound, apperrors.ErrNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", notFound), apperrors.ErrNotFound},
		{"validation", apperrors.NewValidationError("bad"), apperrors.ErrValidation},
		{"conflict", apperrors.NewConflictError("dup"), apperrors.ErrConflict},
		{"repository duplicate", fmt.Errorf("%w: key", apperrors.ErrDuplicate), apperrors.ErrConflict},
		{"internal wrapping not found", apperrors.NewInternalError("broken", notFound), apperrors.ErrInternal},
		{"plain error", errors.New("boom"), apperrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.Kind(tt.err))
		})
	}
	assert.Nil(t, apperrors.Kind(nil))
}

func TestAppErrorIs(t *testing.T) {
	err := apperrors.NewValidationError("Insufficient funds")

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Insufficient funds", apperrors.Message(err))
}
