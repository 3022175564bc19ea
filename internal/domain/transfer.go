package domain

import (
	"fmt"
	"time"
)

// Transfer leg descriptions.
const (
	TransferOutDescription = "Transfer to Tuition Fund (from General)"
	TransferInDescription  = "Tuition Payment (from General Balance)"
)

// ResolveTransfer builds the paired records for moving amount from the
// general fund to the tuition fund. The expense leg lowers the general
// balance; the income leg lowers the tuition still owed. Balances are not
// consulted, so the general fund may go negative.
func ResolveTransfer(amount string, asOf time.Time) (*Transaction, *Transaction, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, nil, err
	}

	if !value.IsPositive() {
		return nil, nil, fmt.Errorf("%w: transfer amount must be positive", ErrInvalidAmount)
	}

	date := TruncateDate(asOf)

	out := &Transaction{
		Date:        date,
		Category:    CategoryTransfer,
		Description: TransferOutDescription,
		Kind:        KindExpense,
		Allocation:  AllocationGeneral,
		Amount:      value,
	}

	in := &Transaction{
		Date:        date,
		Category:    CategoryTransfer,
		Description: TransferInDescription,
		Kind:        KindIncome,
		Allocation:  AllocationTuition,
		Amount:      value,
	}

	return out, in, nil
}
