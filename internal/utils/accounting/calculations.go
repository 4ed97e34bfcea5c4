package accounting

import (
	"fmt"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
)

// SignedAmount returns the balance effect of a line on its account.
// Wallet polarity: a DEBIT line increases the balance, a CREDIT line decreases it.
func SignedAmount(line domain.JournalLine) (int64, error) {
	if line.AmountMinor <= 0 {
		return 0, fmt.Errorf("line amount must be positive for line ID %d", line.ID)
	}
	switch line.Side {
	case domain.Debit:
		return line.AmountMinor, nil
	case domain.Credit:
		return -line.AmountMinor, nil
	}
	return 0, fmt.Errorf("unknown side '%s' encountered for line ID %d", line.Side, line.ID)
}

// ValidateTransferLines checks that lines form one balanced two-account entry and
// returns its DEBIT and CREDIT line.
func ValidateTransferLines(lines []domain.JournalLine) (debit, credit domain.JournalLine, err error) {
	if len(lines) != 2 {
		return debit, credit, fmt.Errorf("entry must have exactly two lines, got %d", len(lines))
	}

	var sum int64
	var debits, credits int
	for _, line := range lines {
		signed, err := SignedAmount(line)
		if err != nil {
			return debit, credit, err
		}
		sum += signed

		if line.Side == domain.Debit {
			debit = line
			debits++
		} else {
			credit = line
			credits++
		}
	}

	if debits != 1 || credits != 1 {
		return debit, credit, fmt.Errorf("entry must have one DEBIT and one CREDIT line, got %d and %d", debits, credits)
	}
	if sum != 0 {
		return debit, credit, fmt.Errorf("entry lines do not balance to zero: sum is %d", sum)
	}
	if debit.Currency != credit.Currency {
		return debit, credit, fmt.Errorf("entry lines disagree on currency: %s and %s", debit.Currency, credit.Currency)
	}
	return debit, credit, nil
}
