package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/iho/studentledger/internal/domain"
)

// Title is printed at the top of the first page.
const Title = "Student Financial Report"

// Renderer draws ledger reports as PDF.
type Renderer struct {
	fontFamily string
}

// NewRenderer creates a Renderer using the Helvetica core font.
func NewRenderer() *Renderer {
	return &Renderer{fontFamily: "Helvetica"}
}

// Render writes a PDF for the ledger snapshot and its summary to w.
func (r *Renderer) Render(w io.Writer, transactions []*domain.Transaction, summary domain.Summary) error {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		if t == nil {
			continue
		}
		rows = append(rows, RowFor(t))
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("studentledger", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, page := range Paginate(rows) {
		pdf.AddPage()
		if i == 0 {
			r.drawHeading(pdf, tr, summary)
		}

		pdf.SetFont(r.fontFamily, "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, row := range page.Rows {
			for col, cell := range row.Cells {
				pdf.Text(ColumnX[col], row.Y, tr(cell))
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}

func (r *Renderer) drawHeading(pdf *fpdf.Fpdf, tr func(string) string, summary domain.Summary) {
	pdf.SetFont(r.fontFamily, "B", 18)
	pdf.Text(MarginLeft, TitleY, Title)

	pdf.SetFont(r.fontFamily, "B", 12)
	lines := []string{
		"General Income (Funds for Expenses): " + FormatCurrency(summary.GeneralIncome),
		"General Expenses: " + FormatCurrency(summary.GeneralExpenses),
		"Net Balance: " + FormatCurrency(summary.GeneralBalance),
	}
	for i, line := range lines {
		pdf.Text(MarginLeft, SummaryY+float64(i)*summaryLeading, tr(line))
	}

	pdf.SetFont(r.fontFamily, "B", 14)
	pdf.Text(MarginLeft, HistoryY, "Transaction History")

	pdf.SetFont(r.fontFamily, "B", 10)
	pdf.SetTextColor(128, 128, 128)
	for col, header := range Headers {
		pdf.Text(ColumnX[col], HeaderY, header)
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(MarginLeft, HeaderRuleY, PageWidth-MarginLeft, HeaderRuleY)
}
