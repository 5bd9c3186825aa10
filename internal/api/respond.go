package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shareit/internal/models"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	body := map[string]string{"error": message}
	if statusCode == http.StatusBadRequest {
		body["message"] = message
	}
	writeJSON(w, statusCode, body)
}

// respondError maps domain errors to HTTP statuses. Ownership failures
// stay 404-shaped so resources are not revealed to strangers.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicateBooking),
		errors.Is(err, models.ErrAlreadyCommented),
		errors.Is(err, models.ErrAlreadyDecided):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnknownState),
		errors.Is(err, models.ErrInvalidPagination),
		errors.Is(err, models.ErrInvalidPeriod),
		errors.Is(err, models.ErrNotAvailable),
		errors.Is(err, models.ErrWithoutBooking):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// callerID reads the acting user id from the identity header.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return 0, errMissingUserID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errMissingUserID
	}
	return id, nil
}

var errMissingUserID = errors.New("valid " + models.HeaderUserID + " header is required")

func pathID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get(":id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

func parsePage(r *http.Request) (models.Page, error) {
	q := r.URL.Query()
	var from, size *int

	if raw := q.Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, models.ErrInvalidPagination
		}
		from = &v
	}
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, models.ErrInvalidPagination
		}
		size = &v
	}

	return models.NewPage(from, size)
}
