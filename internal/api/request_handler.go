package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestHandler struct {
	Service domain.RequestService
	logger  *zerolog.Logger
}

type createRequestRequest struct {
	Description string `json:"description"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestorID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	request := models.ItemRequest{
		Description: body.Description,
		RequestorID: requestorID,
	}
	if err := h.Service.Create(r.Context(), &request); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) GetAllForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.Service.GetAllForUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RequestHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views, err := h.Service.GetAll(r.Context(), userID, page)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.Service.GetByID(r.Context(), userID, requestID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
