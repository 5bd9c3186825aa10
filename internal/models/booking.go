package models

import (
	"strings"
	"time"
)

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Booking struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated in read views only.
	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}

// Decided reports whether the booking reached a terminal status.
func (b *Booking) Decided() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}

// BookingState is the query filter for booking lists. CURRENT, PAST and
// FUTURE are evaluated against the server clock; WAITING and REJECTED
// match the stored status exactly.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState parses a state filter case-insensitively. An empty
// value defaults to ALL.
func ParseBookingState(raw string) (BookingState, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	state := BookingState(strings.ToUpper(strings.TrimSpace(raw)))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	}
	return "", ErrUnknownState
}
