package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/models"
)

var errMissingUserID = errors.New("valid " + models.HeaderUserID + " header is required")

func requireUserID(r *http.Request) error {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return errMissingUserID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return errMissingUserID
	}
	return nil
}

func requirePathID(r *http.Request) error {
	raw := r.URL.Query().Get(":id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return errors.New("invalid id in path")
	}
	return nil
}

func validPagination(r *http.Request) error {
	q := r.URL.Query()
	var from, size *int

	if raw := q.Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return models.ErrInvalidPagination
		}
		from = &v
	}
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return models.ErrInvalidPagination
		}
		size = &v
	}

	_, err := models.NewPage(from, size)
	return err
}

func readBody(w http.ResponseWriter, r *http.Request, out any) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return body, true
}

// forward passes the request through with no checks.
func (g *Gateway) forward(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, nil)
}

// forwardWithID checks the path id only.
func (g *Gateway) forwardWithID(w http.ResponseWriter, r *http.Request) {
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

// authForward requires the identity header.
func (g *Gateway) authForward(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

// authForwardWithID requires the identity header and a sane path id.
func (g *Gateway) authForwardWithID(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

// listPaged requires the identity header and a well-formed from/size pair.
func (g *Gateway) listPaged(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validPagination(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

func (g *Gateway) createUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validEmail(payload.Email) {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) updateUser(w http.ResponseWriter, r *http.Request) {
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if payload.Email != nil && !validEmail(*payload.Email) {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) createItem(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(payload.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if payload.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) updateItem(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if payload.Description != nil && strings.TrimSpace(*payload.Description) == "" {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) searchItems(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validPagination(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

func (g *Gateway) createComment(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) createBooking(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		ItemID int64     `json:"item_id"`
		Start  time.Time `json:"start"`
		End    time.Time `json:"end"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if payload.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if payload.Start.IsZero() || payload.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	if payload.Start.Before(g.now().Add(-time.Minute)) {
		writeError(w, http.StatusBadRequest, "start must not be in the past")
		return
	}
	if !payload.End.After(payload.Start) {
		writeError(w, http.StatusBadRequest, "end must be after start")
		return
	}
	g.proxy(w, r, body)
}

func (g *Gateway) approveBooking(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePathID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}
	g.proxy(w, r, nil)
}

func (g *Gateway) listBookings(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := models.ParseBookingState(r.URL.Query().Get("state")); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown state: "+r.URL.Query().Get("state"))
		return
	}
	if err := validPagination(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.proxy(w, r, nil)
}

func (g *Gateway) createRequest(w http.ResponseWriter, r *http.Request) {
	if err := requireUserID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Description string `json:"description"`
	}
	body, ok := readBody(w, r, &payload)
	if !ok {
		return
	}
	if strings.TrimSpace(payload.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	g.proxy(w, r, body)
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
