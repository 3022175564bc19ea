package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/infrastructure/metrics"
)

// ReportFilename is the attachment name of the PDF report.
const ReportFilename = "financial_report.pdf"

// ReportRenderer draws a ledger snapshot as a document.
type ReportRenderer interface {
	Render(w io.Writer, transactions []*domain.Transaction, summary domain.Summary) error
}

// ReportHandler serves the PDF report.
type ReportHandler struct {
	ledger   LedgerService
	renderer ReportRenderer
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewReportHandler creates a new ReportHandler. m may be nil.
func NewReportHandler(ledger LedgerService, renderer ReportRenderer, m *metrics.Metrics, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		ledger:   ledger,
		renderer: renderer,
		metrics:  m,
		logger:   logger,
	}
}

// PDF renders the owner's ledger and summary as an attachment.
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	dashboard, err := h.ledger.GetDashboard(r.Context(), owner)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load ledger", err.Error())
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, dashboard.Transactions, dashboard.Summary); err != nil {
		h.logger.Error().Err(err).Str("owner_id", owner).Msg("report rendering failed")
		writeError(w, http.StatusInternalServerError, "failed to render report", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ReportsRendered.Inc()
		h.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ReportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
