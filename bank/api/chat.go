package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type ChatHandler struct {
	chat *service.Chat
}

func NewChatHandler(chat *service.Chat) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chat/", h.Turn).Methods(http.MethodPost)
}

func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	reply, err := h.chat.Turn(r.Context(), userFromContext(r.Context()), r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) || errors.Is(err, service.ErrNoActiveSession) {
			writeServiceError(w, r, err)
			return
		}
		log.Error().Err(err).Msg("chat turn failed")
		writeErrorResponse(w, http.StatusBadGateway, chatFailureDetail)
		return
	}
	writeJSONResponse(w, http.StatusCreated, reply)
}
