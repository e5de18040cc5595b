package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type SupportHandler struct {
	support *service.Support
}

func NewSupportHandler(support *service.Support) *SupportHandler {
	return &SupportHandler{support: support}
}

func (h *SupportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/support/", h.Create).Methods(http.MethodPost)
}

func (h *SupportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.SupportInput
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	out, err := h.support.Create(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, out)
}
