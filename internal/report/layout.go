package report

import (
	"github.com/iho/studentledger/internal/domain"
)

// Page geometry in points, measured from the top edge of a US Letter page.
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	MarginLeft   = 50.0
	MarginBottom = 72.0

	TitleY         = 50.0
	SummaryY       = 95.0
	summaryLeading = 14.0
	HistoryY       = 150.0
	HeaderY        = 175.0
	HeaderRuleY    = 180.0
	FirstRowY      = 195.0
	ContinuationY  = 50.0
	RowHeight      = 15.0
)

// Column x offsets for Date, Type, Category, Description, Fund and Amount.
var ColumnX = [6]float64{50, 130, 190, 310, 450, 520}

// Headers are the table column titles.
var Headers = [6]string{"Date", "Type", "Category", "Description", "Fund", "Amount"}

// Row is one table line ready for drawing.
type Row struct {
	Cells [6]string
}

// PlacedRow is a row with its baseline position on a page.
type PlacedRow struct {
	Row
	Y float64
}

// Page is the set of rows drawn on one sheet. Only the first page carries
// the title, summary and table header.
type Page struct {
	Rows []PlacedRow
}

// RowFor formats a transaction as a table row.
func RowFor(t *domain.Transaction) Row {
	return Row{Cells: [6]string{
		t.Date.Format(domain.DateLayout),
		string(t.Kind),
		t.Category,
		TruncateDescription(t.Description),
		t.AllocationLabel(),
		FormatCurrency(t.Amount),
	}}
}

// Paginate assigns each row a page and baseline. A new page is started once
// the next baseline would fall inside the bottom margin. It always returns
// at least one page.
func Paginate(rows []Row) []Page {
	limit := PageHeight - MarginBottom

	pages := []Page{{}}
	y := FirstRowY

	for _, row := range rows {
		if y > limit {
			pages = append(pages, Page{})
			y = ContinuationY
		}

		current := &pages[len(pages)-1]
		current.Rows = append(current.Rows, PlacedRow{Row: row, Y: y})
		y += RowHeight
	}

	return pages
}
