package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingHandler struct {
	Service domain.BookingService
	logger  *zerolog.Logger
}

type createBookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if body.Start.IsZero() || body.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	booking := models.Booking{
		ItemID:   body.ItemID,
		BookerID: bookerID,
		Start:    body.Start,
		End:      body.End,
	}
	if err := h.Service.Add(r.Context(), &booking); err != nil {
		respondError(w, h.logger, err)
		return
	}
	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	callerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := h.Service.Approve(r.Context(), bookingID, callerID, approved)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	callerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.Service.Get(r.Context(), bookingID, callerID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListByBooker(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListByBooker)
}

func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListByOwner)
}

func (h *BookingHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, userID int64, state models.BookingState, page models.Page) ([]models.Booking, error),
) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := models.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	bookings, err := fetch(r.Context(), userID, state, page)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ExportByOwner streams an xlsx report of all bookings on the caller's items.
func (h *BookingHandler) ExportByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.Service.ListByOwner(r.Context(), ownerID, models.StateAll, models.Page{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	workbook, err := export.BookingsWorkbook(bookings)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := workbook.Write(w); err != nil {
		h.logger.Error().Err(err).Msg("write xlsx report")
	}
}
