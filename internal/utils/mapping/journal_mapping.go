package mapping

import (
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_service/internal/models"
)

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:             m.ID,
		IdempotencyKey: m.IdempotencyKey,
		Description:    m.Description,
		ExternalRef:    m.ExternalRef,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:             d.ID,
		JournalEntryID: d.EntryID,
		AccountID:      d.AccountID,
		AmountMinor:    d.AmountMinor,
		Side:           string(d.Side),
		Currency:       d.Currency,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		ID:          m.ID,
		EntryID:     m.JournalEntryID,
		AccountID:   m.AccountID,
		AmountMinor: m.AmountMinor,
		Side:        domain.Side(m.Side),
		Currency:    m.Currency,
	}
}

// ToDomainJournalLines converts a slice of model JournalLines
func ToDomainJournalLines(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainJournalLine(m)
	}
	return lines
}
