package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type AccountHandler struct {
	accounts *service.Accounts
}

func NewAccountHandler(accounts *service.Accounts) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/account/info", h.Info).Methods(http.MethodGet)
	router.HandleFunc("/account/update", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/account/delete", h.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/account/create", h.Create).Methods(http.MethodPost)
}

func (h *AccountHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.accounts.Info(r.Context(), userFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, info)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAccountInput
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	info, err := h.accounts.Update(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, info)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), userFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAccountInput
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	info, err := h.accounts.Create(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, info)
}
