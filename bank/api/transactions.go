package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type TransactionHandler struct {
	transactions *service.Transactions
}

func NewTransactionHandler(transactions *service.Transactions) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions/create", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/transactions/account/{account_number}", h.ListByAccount).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{transaction_id}", h.Get).Methods(http.MethodGet)
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTransactionInput
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	rec, err := h.transactions.Create(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, rec)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.transactions.Get(r.Context(), userFromContext(r.Context()), mux.Vars(r)["transaction_id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, rec)
}

func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	recs, err := h.transactions.ListByAccount(r.Context(), userFromContext(r.Context()), mux.Vars(r)["account_number"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, recs)
}
