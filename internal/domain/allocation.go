package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PlanKind enumerates the ways an income can be allocated.
type PlanKind int

const (
	PlanGeneralOnly PlanKind = iota
	PlanTuitionOnly
	PlanSplit
)

// AllocationPlan is resolved once from the raw tuition percent. Percent is
// only meaningful for PlanSplit and lies strictly between 0 and 100.
type AllocationPlan struct {
	Kind    PlanKind
	Percent decimal.Decimal
}

// PlanFromPercent maps a percentage in [0, 100] to its plan.
func PlanFromPercent(percent decimal.Decimal) AllocationPlan {
	switch {
	case percent.LessThanOrEqual(decimal.Zero):
		return AllocationPlan{Kind: PlanGeneralOnly}
	case percent.GreaterThanOrEqual(hundred):
		return AllocationPlan{Kind: PlanTuitionOnly}
	default:
		return AllocationPlan{Kind: PlanSplit, Percent: percent}
	}
}

// TransactionIntent is a user-submitted transaction before validation.
// Fields hold raw form values.
type TransactionIntent struct {
	Date           string
	Kind           string
	Category       string
	Description    string
	Amount         string
	TuitionPercent string
}

// ResolveIntent turns an intent into the records to persist. Expenses and
// single-fund incomes produce one record; a split income produces the
// tuition leg followed by the general leg.
func ResolveIntent(intent TransactionIntent) ([]*Transaction, error) {
	amount, err := ParseAmount(intent.Amount)
	if err != nil {
		return nil, err
	}

	date, err := ParseDate(intent.Date)
	if err != nil {
		return nil, err
	}

	kind, err := ParseKind(intent.Kind)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(intent.Category)
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(intent.Description)
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}

	base := Transaction{
		Date:        date,
		Category:    category,
		Description: description,
		Kind:        kind,
		Amount:      amount,
	}

	if kind == KindExpense {
		return []*Transaction{&base}, nil
	}

	percent, err := ParsePercent(intent.TuitionPercent)
	if err != nil {
		return nil, err
	}

	return allocateIncome(base, PlanFromPercent(percent)), nil
}

func allocateIncome(base Transaction, plan AllocationPlan) []*Transaction {
	switch plan.Kind {
	case PlanTuitionOnly:
		t := base
		t.Allocation = AllocationTuition
		return []*Transaction{&t}

	case PlanSplit:
		// Tuition is rounded half-to-even to cents; general takes the remainder
		// so both legs always add back to the entered amount.
		tuitionAmount := base.Amount.Mul(plan.Percent).Shift(-2).RoundBank(2)
		generalPercent := hundred.Sub(plan.Percent)

		tuition := base
		tuition.Allocation = AllocationTuition
		tuition.Amount = tuitionAmount
		tuition.Description = annotate(base.Description, "Tuition", plan.Percent)

		general := base
		general.Allocation = AllocationGeneral
		general.Amount = base.Amount.Sub(tuitionAmount)
		general.Description = annotate(base.Description, "General", generalPercent)

		return []*Transaction{&tuition, &general}

	default:
		t := base
		t.Allocation = AllocationGeneral
		return []*Transaction{&t}
	}
}

func annotate(description, fund string, percent decimal.Decimal) string {
	note := fmt.Sprintf("(%s Allocation: %s%%)", fund, percent.String())
	if description == "" {
		return note
	}
	return description + " " + note
}
