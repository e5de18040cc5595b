package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type UserHandler struct {
	users *service.Users
}

func NewUserHandler(users *service.Users) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterPublicRoutes(router *mux.Router) {
	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/verify", h.Verify).Methods(http.MethodPost)
	router.HandleFunc("/user/me", h.Me).Methods(http.MethodGet)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.users.Register(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	res, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, res)
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Verify(r.Context(), userFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "User is verified"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, userFromContext(r.Context()))
}
