package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type SessionHandler struct {
	sessions *service.Sessions
}

func NewSessionHandler(sessions *service.Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sessions/initialize", h.Initialize).Methods(http.MethodPost)
	router.HandleFunc("/sessions/active", h.Active).Methods(http.MethodGet)
}

func (h *SessionHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Initialize(r.Context(), userFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, sess)
}

func (h *SessionHandler) Active(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Active(r.Context(), userFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, sess)
}
