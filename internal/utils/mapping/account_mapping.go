package mapping

import (
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_service/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		Currency:      d.Currency,
		BalanceMinor:  d.BalanceMinor,
		AllowNegative: d.AllowNegative,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Currency:      m.Currency,
		BalanceMinor:  m.BalanceMinor,
		AllowNegative: m.AllowNegative,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}
