package models

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	// ErrNotOwner is deliberately reported as a not-found-shaped failure
	// at the HTTP boundary to avoid leaking resource existence.
	ErrNotOwner = errors.New("caller does not own the resource")

	ErrNotAvailable     = errors.New("item is not available for booking")
	ErrDuplicateBooking = errors.New("waiting booking already exists for item and booker")
	ErrAlreadyDecided   = errors.New("booking is already approved or rejected")
	ErrDuplicateEmail   = errors.New("email is already in use")
	ErrAlreadyCommented = errors.New("author already commented on this item")
	ErrWithoutBooking   = errors.New("author has no completed booking for this item")

	ErrUnknownState      = errors.New("unknown booking state")
	ErrInvalidPagination = errors.New("from and size must be supplied together")
	ErrInvalidPeriod     = errors.New("booking end must be after start")
)
