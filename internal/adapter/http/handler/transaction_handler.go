package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/studentledger/internal/adapter/http/dto"
	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/usecase"
)

// LedgerService is the subset of LedgerUseCase the handlers depend on.
type LedgerService interface {
	RecordTransaction(ctx context.Context, ownerID string, intent domain.TransactionIntent) ([]*domain.Transaction, error)
	TransferToTuition(ctx context.Context, ownerID string, input usecase.TransferInput) ([]*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	ListTransactions(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
	GetDashboard(ctx context.Context, ownerID string) (*usecase.Dashboard, error)
}

// TransactionHandler handles ledger record requests.
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create records an income or expense. A split income returns both legs.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	records, err := h.ledger.RecordTransaction(r.Context(), owner, req.ToIntent())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionListResponse{
		Transactions: dto.TransactionsFromDomain(records),
	})
}

// List returns the owner's ledger, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	records, err := h.ledger.ListTransactions(r.Context(), owner)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionListResponse{
		Transactions: dto.TransactionsFromDomain(records),
	})
}

// Delete removes a record. Unknown IDs also return 204.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.ledger.DeleteTransaction(r.Context(), owner, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Transfer moves funds from the general fund to tuition.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.TuitionTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	records, err := h.ledger.TransferToTuition(r.Context(), owner, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionListResponse{
		Transactions: dto.TransactionsFromDomain(records),
	})
}

// Summary returns the derived figures and chart series.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	dashboard, err := h.ledger.GetDashboard(r.Context(), owner)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(dashboard.Summary))
}
