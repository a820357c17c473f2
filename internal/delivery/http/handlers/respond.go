package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aegntic/growth-service/internal/delivery/http/dto"
	"github.com/aegntic/growth-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// writeDomainError maps sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals stay inside.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationRejected):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSiteNotFound),
		errors.Is(err, domain.ErrRelationshipNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateCommissionPeriod):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, target any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// parseTime accepts RFC3339 and returns the zero time for an empty string,
// letting usecases default to now.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
