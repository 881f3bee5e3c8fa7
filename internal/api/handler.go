package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/models"
)

// LedgerService is the part of ledger.Service the API needs.
type LedgerService interface {
	Create(d models.Draft) (models.Transaction, error)
	Update(id string, d models.Draft) (models.Transaction, error)
	Delete(id string) error
	List() ([]models.Transaction, error)
	Get(id string) (models.Transaction, error)
	Query(c ledger.Criteria) ([]models.Transaction, error)
	Summary() (ledger.Summary, error)
}

var _ LedgerService = (*ledger.Service)(nil)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log     *zap.Logger
	service LedgerService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, service LedgerService) *APIHandler {
	return &APIHandler{log: log, service: service}
}

// Routes registers every endpoint on a new mux.
func (h *APIHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", h.ListTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", h.GetTransaction)
	mux.HandleFunc("POST /api/transactions", h.CreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", h.UpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", h.DeleteTransaction)
	mux.HandleFunc("GET /api/statistics", h.Statistics)
	mux.HandleFunc("GET /api/allocation", h.Allocation)
	mux.HandleFunc("GET /api/filters", h.Filters)
	mux.HandleFunc("GET /health", h.Health)
	return mux
}

// ListTransactions returns the transactions matching the asset, action and
// broker query parameters.
func (h *APIHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := ledger.Criteria{
		Asset:  q.Get("asset"),
		Action: q.Get("action"),
		Broker: q.Get("broker"),
	}

	transactions, err := h.service.Query(criteria)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// GetTransaction returns a single transaction.
func (h *APIHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.service.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// CreateTransaction records a new transaction from a draft.
func (h *APIHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	tx, err := h.service.Create(d)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction replaces an existing transaction.
func (h *APIHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	tx, err := h.service.Update(r.PathValue("id"), d)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// DeleteTransaction removes a transaction. Absent ids succeed too.
func (h *APIHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatisticsResponse is the structure for the /api/statistics endpoint.
type StatisticsResponse struct {
	NetTotal         float64 `json:"net_total"`
	AssetCount       int     `json:"asset_count"`
	TransactionCount int     `json:"transaction_count"`
}

// Statistics returns the overview figures.
func (h *APIHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, StatisticsResponse{
		NetTotal:         summary.NetTotal.InexactFloat64(),
		AssetCount:       summary.AssetCount,
		TransactionCount: summary.TransactionCount,
	})
}

// AllocationEntry is one slice of the /api/allocation response.
type AllocationEntry struct {
	Asset      string  `json:"asset"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Allocation returns the signed total and share of every asset.
func (h *APIHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.List()
	if err != nil {
		h.fail(w, err)
		return
	}

	shares := ledger.Allocation(transactions)
	entries := make([]AllocationEntry, 0, len(shares))
	for _, s := range shares {
		entries = append(entries, AllocationEntry{
			Asset:      s.Asset,
			Total:      s.Total.InexactFloat64(),
			Percentage: s.Percentage.InexactFloat64(),
		})
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// FiltersResponse lists the values offered by the filter selectors.
type FiltersResponse struct {
	Assets  []string `json:"assets"`
	Brokers []string `json:"brokers"`
}

// Filters returns the distinct assets and brokers.
func (h *APIHandler) Filters(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.List()
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, FiltersResponse{
		Assets:  ledger.Assets(transactions),
		Brokers: ledger.Brokers(transactions),
	})
}

// Health reports that the server is up.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (models.Draft, bool) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body: " + err.Error()})
		return models.Draft{}, false
	}
	return req.draft(), true
}

func (h *APIHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("Request failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to write response", zap.Error(err))
	}
}
