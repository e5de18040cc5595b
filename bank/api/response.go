package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

const chatFailureDetail = "The assistant could not complete your request. Please try again."

var errorTable = []struct {
	err    error
	status int
	detail string
}{
	{service.ErrEmailTaken, http.StatusBadRequest, "User with this email already exists"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "Could not validate credentials"},
	{service.ErrInactiveUser, http.StatusUnauthorized, "User is not active"},
	{service.ErrMinimumBalance, http.StatusBadRequest, "Minimum initial balance must be at least $100.0"},
	{service.ErrPhoneNotSet, http.StatusBadRequest, "User phone number is not set"},
	{service.ErrEmptyQuery, http.StatusBadRequest, "Query must not be empty"},
	{service.ErrNoActiveAccount, http.StatusNotFound, "Active account not found for user"},
	{service.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{service.ErrTransactionNotFound, http.StatusNotFound, "Transaction not found"},
	{service.ErrNoActiveSession, http.StatusNotFound, "No active session found."},
	{service.ErrNotFound, http.StatusNotFound, "Not Found"},
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, detail string) {
	writeJSONResponse(w, status, errorResponse{Detail: detail})
}

// writeServiceError maps a service error to its status and detail; unknown
// errors are logged and answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			if e.status == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			writeErrorResponse(w, e.status, e.detail)
			return
		}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
