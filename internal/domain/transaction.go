package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// ParseKind parses a kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	default:
		return "", ErrInvalidKind
	}
}

// Allocation tags an income record with the fund it feeds.
type Allocation string

const (
	AllocationNone    Allocation = ""
	AllocationTuition Allocation = "Tuition"
	AllocationGeneral Allocation = "General"
)

// ParseAllocation parses a stored allocation value. Empty input maps to AllocationNone.
func ParseAllocation(s string) (Allocation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AllocationNone, nil
	case "tuition":
		return AllocationTuition, nil
	case "general":
		return AllocationGeneral, nil
	default:
		return "", ErrInvalidAllocation
	}
}

// Well-known categories.
const (
	CategoryTuition  = "Tuition"
	CategoryTransfer = "Transfer"
)

// Transaction is a single ledger record. Records are never updated once stored.
type Transaction struct {
	CreatedAt   time.Time
	Date        time.Time
	ID          string
	OwnerID     string
	Category    string
	Description string
	Kind        Kind
	Allocation  Allocation
	Amount      decimal.Decimal
}

// Validate checks the invariants every stored record must satisfy.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	switch t.Kind {
	case KindIncome:
		if t.Allocation != AllocationTuition && t.Allocation != AllocationGeneral {
			return ErrInvalidAllocation
		}
	case KindExpense:
	default:
		return ErrInvalidKind
	}

	return ValidateCategory(t.Category)
}

// IsTuitionCost reports whether the record counts toward tuition owed.
func (t *Transaction) IsTuitionCost() bool {
	return t.Kind == KindExpense && t.Category == CategoryTuition
}

// AllocationLabel returns the allocation for display, or "-" when unset.
func (t *Transaction) AllocationLabel() string {
	if t.Allocation == AllocationNone {
		return "-"
	}
	return string(t.Allocation)
}
