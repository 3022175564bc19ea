package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Summary holds the figures derived from a ledger snapshot. Balances may be
// negative: an over-funded tuition or overdrawn general fund is reported, not
// rejected.
type Summary struct {
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	TotalTuitionCost  decimal.Decimal
	TuitionAidApplied decimal.Decimal
	TuitionRemaining  decimal.Decimal
	GeneralIncome     decimal.Decimal
	GeneralExpenses   decimal.Decimal
	GeneralBalance    decimal.Decimal
}

// Summarize computes the summary for a ledger snapshot. It never fails and
// keeps no state between calls.
func Summarize(transactions []*Transaction) Summary {
	s := Summary{
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if t == nil {
			continue
		}

		switch t.Kind {
		case KindIncome:
			switch t.Allocation {
			case AllocationTuition:
				s.TuitionAidApplied = s.TuitionAidApplied.Add(t.Amount)
			case AllocationGeneral:
				s.GeneralIncome = s.GeneralIncome.Add(t.Amount)
				s.IncomeByCategory[t.Category] = s.IncomeByCategory[t.Category].Add(t.Amount)
			}

		case KindExpense:
			if t.IsTuitionCost() {
				s.TotalTuitionCost = s.TotalTuitionCost.Add(t.Amount)
				continue
			}
			s.GeneralExpenses = s.GeneralExpenses.Add(t.Amount)
			s.ExpenseByCategory[t.Category] = s.ExpenseByCategory[t.Category].Add(t.Amount)
		}
	}

	for category, total := range s.ExpenseByCategory {
		s.ExpenseByCategory[category] = total.Abs()
	}

	s.TuitionRemaining = s.TotalTuitionCost.Sub(s.TuitionAidApplied)
	s.GeneralBalance = s.GeneralIncome.Sub(s.GeneralExpenses)

	return s
}

// ChartData is the pie-chart series for the dashboard, ordered by category.
type ChartData struct {
	IncomeLabels  []string
	IncomeValues  []decimal.Decimal
	ExpenseLabels []string
	ExpenseValues []decimal.Decimal
}

// Chart returns the category breakdowns as parallel label/value series.
func (s Summary) Chart() ChartData {
	var c ChartData
	c.IncomeLabels, c.IncomeValues = series(s.IncomeByCategory)
	c.ExpenseLabels, c.ExpenseValues = series(s.ExpenseByCategory)
	return c
}

func series(m map[string]decimal.Decimal) ([]string, []decimal.Decimal) {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	values := make([]decimal.Decimal, len(labels))
	for i, k := range labels {
		values[i] = m[k]
	}

	return labels, values
}

// SortLedger orders a snapshot by date descending, then by id so records
// written together keep their insertion order.
func SortLedger(transactions []*Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		a, b := transactions[i], transactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	})
}
