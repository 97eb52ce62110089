package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"betsim/domain/entities"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps domain sentinel errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, entities.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrAlreadySettled),
		errors.Is(err, entities.ErrAlreadyRedeemed),
		errors.Is(err, entities.ErrAlreadyCashedOut),
		errors.Is(err, entities.ErrAlreadyTerminal),
		errors.Is(err, entities.ErrLimitReached):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrExpired),
		errors.Is(err, entities.ErrMatchClosed),
		errors.Is(err, entities.ErrRoundNotRunning):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidOutcome):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrGatewayFailure):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		log.WithError(err).Error("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
