package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/studentledger/internal/domain"
)

func rows(n int) []Row {
	out := make([]Row, n)
	for i := range out {
		out[i] = Row{Cells: [6]string{"2024-01-01", "Expense", "Food", "-", "-", "$1.00"}}
	}
	return out
}

func TestPaginate_Empty(t *testing.T) {
	pages := Paginate(nil)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].Rows)
}

func TestPaginate_FirstPageCapacity(t *testing.T) {
	pages := Paginate(rows(36))
	require.Len(t, pages, 1)
	assert.Equal(t, FirstRowY, pages[0].Rows[0].Y)
	assert.Equal(t, 720.0, pages[0].Rows[35].Y)
}

func TestPaginate_BreaksBeforeBottomMargin(t *testing.T) {
	pages := Paginate(rows(36 + 45 + 1))
	require.Len(t, pages, 3)

	assert.Len(t, pages[0].Rows, 36)
	assert.Len(t, pages[1].Rows, 45)
	assert.Len(t, pages[2].Rows, 1)

	assert.Equal(t, ContinuationY, pages[1].Rows[0].Y)
	assert.Equal(t, ContinuationY, pages[2].Rows[0].Y)

	for _, page := range pages {
		for _, row := range page.Rows {
			assert.LessOrEqual(t, row.Y, PageHeight-MarginBottom)
		}
	}
}

func TestRowFor(t *testing.T) {
	tx := &domain.Transaction{
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Kind:        domain.KindIncome,
		Category:    "Salary",
		Description: "Campus bookstore part-time job",
		Allocation:  domain.AllocationGeneral,
		Amount:      decimal.RequireFromString("1234.5"),
	}

	row := RowFor(tx)

	assert.Equal(t, [6]string{
		"2024-01-10",
		"Income",
		"Salary",
		"Campus bookstore par...",
		"General",
		"$1,234.50",
	}, row.Cells)

	tx.Allocation = domain.AllocationNone
	tx.Description = ""
	row = RowFor(tx)
	assert.Equal(t, "-", row.Cells[3])
	assert.Equal(t, "-", row.Cells[4])
}
