package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries a partial update; nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Available == nil
}

// BookingRef is the short booking form shown inside item views.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"booker_id"`
}

// ItemView is the read view of an item: comments always, last/next
// booking only when the caller owns the item.
type ItemView struct {
	Item
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []Comment   `json:"comments"`
}
