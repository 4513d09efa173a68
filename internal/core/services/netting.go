package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	"github.com/Musoni/mifosx-sub001/internal/utils/accounting"
)

// ErrRunningBalanceNotCalculated signals an upstream data-integrity gap: a
// ledger line without a computed running balance. Booking must not proceed on
// half-updated balances, so this is fatal for the whole closure request.
var ErrRunningBalanceNotCalculated = errors.New("running balance not calculated for ledger entry")

// ComputeIncomeExpenseBooking builds the single balancing journal entry that
// drains every income and expense account toward zero against the designated
// equity account.
//
// It returns (nil, nil) when the debit and credit buckets already cancel:
// a perfectly netted period is a valid outcome, not an error, and produces no
// booking.
func ComputeIncomeExpenseBooking(
	lines []domain.IncomeExpenseLine,
	equityAccountID string,
	officeID string,
	entryDate time.Time,
	comments string,
	currencyCode string,
) (*domain.BalancedJournalEntry, error) {
	for _, line := range lines {
		if !line.RunningBalanceCalculated {
			return nil, fmt.Errorf("%w: account %s (office %s, entry %d)",
				ErrRunningBalanceNotCalculated, line.AccountID, line.OfficeID, line.EntryID)
		}
	}

	var debits, credits []domain.JournalEntryLine
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero

	for _, line := range lines {
		if line.Balance.IsZero() {
			continue
		}
		side, amount, err := accounting.Contribution(line.AccountType, line.Balance)
		if err != nil {
			return nil, fmt.Errorf("classifying account %s: %w", line.AccountID, err)
		}
		entryLine := domain.JournalEntryLine{AccountID: line.AccountID, Amount: amount}
		if side == domain.Debit {
			debits = append(debits, entryLine)
			debitTotal = debitTotal.Add(amount)
		} else {
			credits = append(credits, entryLine)
			creditTotal = creditTotal.Add(amount)
		}
	}

	// The synthetic equity line makes up the difference between the buckets.
	switch {
	case debitTotal.GreaterThan(creditTotal):
		credits = append(credits, domain.JournalEntryLine{
			AccountID: equityAccountID,
			Amount:    debitTotal.Sub(creditTotal),
		})
	case creditTotal.GreaterThan(debitTotal):
		debits = append(debits, domain.JournalEntryLine{
			AccountID: equityAccountID,
			Amount:    creditTotal.Sub(debitTotal),
		})
	default:
		// Already balanced, nothing to book off.
		return nil, nil
	}

	entry := &domain.BalancedJournalEntry{
		OfficeID:     officeID,
		CurrencyCode: currencyCode,
		EntryDate:    entryDate,
		Comments:     comments,
		Debits:       debits,
		Credits:      credits,
	}
	if !entry.Balanced() {
		return nil, fmt.Errorf("income/expense booking for office %s does not balance: debits %s, credits %s",
			officeID, entry.DebitTotal(), entry.CreditTotal())
	}
	return entry, nil
}
