package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemHandler struct {
	Service domain.ItemService
	logger  *zerolog.Logger
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"request_id"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if body.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	item := models.Item{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	}
	if err := h.Service.Add(r.Context(), ownerID, &item); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	callerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.Service.Get(r.Context(), itemID, callerID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ItemHandler) GetByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views, err := h.Service.GetByOwner(r.Context(), ownerID, page)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	items, err := h.Service.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}

	item, err := h.Service.Update(r.Context(), callerID, itemID, patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Delete(r.Context(), callerID, itemID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	comment := models.Comment{
		Text:     body.Text,
		ItemID:   itemID,
		AuthorID: authorID,
	}
	if err := h.Service.AddComment(r.Context(), &comment); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
