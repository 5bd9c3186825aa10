package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store  domain.Store
	now    func() time.Time
	logger *zerolog.Logger
}

func NewBookingService(store domain.Store, now func() time.Time, logger *zerolog.Logger) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		store:  store,
		now:    now,
		logger: logger,
	}
}

func (s *BookingService) Add(ctx context.Context, booking *models.Booking) error {
	if !booking.End.After(booking.Start) {
		return models.ErrInvalidPeriod
	}

	item, err := s.store.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return err
	}
	if !item.Available {
		return models.ErrNotAvailable
	}

	exists, err := s.store.UserExists(ctx, booking.BookerID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrUserNotFound
	}

	// An owner asking for their own item is treated as asking for
	// something that does not exist for them.
	if item.OwnerID == booking.BookerID {
		return models.ErrItemNotFound
	}

	booking.Status = models.StatusWaiting
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", booking.ItemID).
		Int64("booker_id", booking.BookerID).
		Msg("booking created")
	return s.hydrate(ctx, booking)
}

func (s *BookingService) Approve(ctx context.Context, bookingID, callerID int64, approved bool) (*models.Booking, error) {
	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Item == nil || booking.Item.OwnerID != callerID {
		return nil, models.ErrNotOwner
	}
	if booking.Decided() {
		return nil, models.ErrAlreadyDecided
	}

	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", status).
		Msg("booking decided")
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID, callerID int64) (*models.Booking, error) {
	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != callerID && (booking.Item == nil || booking.Item.OwnerID != callerID) {
		return nil, models.ErrNotOwner
	}
	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, page models.Page) ([]models.Booking, error) {
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.store.GetBookingsByBooker(ctx, bookerID, state, s.now(), page)
}

func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, page models.Page) ([]models.Booking, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.GetBookingsByOwner(ctx, ownerID, state, s.now(), page)
}

func (s *BookingService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrUserNotFound
	}
	return nil
}

// hydrate fills the item and booker views on a freshly inserted booking.
func (s *BookingService) hydrate(ctx context.Context, booking *models.Booking) error {
	full, err := s.store.GetBookingByID(ctx, booking.ID)
	if err != nil {
		return err
	}
	*booking = *full
	return nil
}
