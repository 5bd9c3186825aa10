package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Store is the persistence boundary for all entities.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error)
	GetItemsByRequestID(ctx context.Context, requestID int64) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error)
	GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItemID(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	GetRequestsExcluding(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequest, error)
}

// RateLimiter answers whether a caller identified by key may proceed
// within the current window.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type UserService interface {
	Add(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]models.User, error)
}

type ItemService interface {
	Add(ctx context.Context, ownerID int64, item *models.Item) error
	Get(ctx context.Context, itemID, callerID int64) (*models.ItemView, error)
	Update(ctx context.Context, callerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, callerID, itemID int64) error
	Search(ctx context.Context, text string, page models.Page) ([]models.Item, error)
	GetByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.ItemView, error)
	AddComment(ctx context.Context, comment *models.Comment) error
}

type BookingService interface {
	Add(ctx context.Context, booking *models.Booking) error
	Approve(ctx context.Context, bookingID, callerID int64, approved bool) (*models.Booking, error)
	Get(ctx context.Context, bookingID, callerID int64) (*models.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, page models.Page) ([]models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, page models.Page) ([]models.Booking, error)
}

type RequestService interface {
	Create(ctx context.Context, request *models.ItemRequest) error
	GetAllForUser(ctx context.Context, userID int64) ([]models.ItemRequestView, error)
	GetAll(ctx context.Context, userID int64, page models.Page) ([]models.ItemRequestView, error)
	GetByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error)
}
