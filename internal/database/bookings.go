package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingSelect = `
        SELECT b.id, b.start_at, b.end_at, b.item_id, b.booker_id, b.status, b.created_at, b.updated_at,
               i.id, i.name, i.description, i.available, i.owner_id, i.request_id, i.created_at, i.updated_at,
               u.id, u.name, u.email, u.created_at, u.updated_at
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var booking models.Booking
	var item models.Item
	var booker models.User
	var requestID sql.NullInt64

	err := row.Scan(
		&booking.ID, &booking.Start, &booking.End, &booking.ItemID, &booking.BookerID,
		&booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
		&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &requestID, &item.CreatedAt, &item.UpdatedAt,
		&booker.ID, &booker.Name, &booker.Email, &booker.CreatedAt, &booker.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}
	booking.Item = &item
	booking.Booker = &booker
	return &booking, nil
}

// CreateBooking persists a new booking in WAITING status. The partial
// unique index on (item_id, booker_id, WAITING) turns a concurrent
// duplicate into ErrDuplicateBooking without a prior read.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_at, end_at, item_id, booker_id, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.Start.UTC(), booking.End.UTC(), booking.ItemID, booking.BookerID,
		models.StatusWaiting, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.Status = models.StatusWaiting
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// GetBookingsByBooker lists the user's own bookings filtered by state,
// most recent start first.
func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error) {
	return db.queryBookings(ctx, `b.booker_id = ?`, bookerID, state, now, page)
}

// GetBookingsByOwner lists bookings placed on the user's items filtered
// by state, most recent start first.
func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error) {
	return db.queryBookings(ctx, `i.owner_id = ?`, ownerID, state, now, page)
}

func (db *DB) queryBookings(ctx context.Context, scope string, scopeID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error) {
	query := bookingSelect + ` WHERE ` + scope
	args := []any{scopeID}

	switch state {
	case models.StateCurrent:
		query += ` AND b.start_at <= ? AND b.end_at >= ?`
		args = append(args, now.UTC(), now.UTC())
	case models.StatePast:
		query += ` AND b.end_at < ?`
		args = append(args, now.UTC())
	case models.StateFuture:
		query += ` AND b.start_at > ?`
		args = append(args, now.UTC())
	case models.StateWaiting, models.StateRejected:
		query += ` AND b.status = ?`
		args = append(args, string(state))
	}

	query += ` ORDER BY b.start_at DESC`
	if page.Set() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit, page.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// GetLastBooking returns the most recent approved booking started at or
// before now, nil when there is none.
func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status = ? AND start_at <= ?
              ORDER BY start_at DESC LIMIT 1`
	return db.bookingRef(ctx, query, itemID, models.StatusApproved, now.UTC())
}

// GetNextBooking returns the nearest approved booking starting after
// now, nil when there is none.
func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status = ? AND start_at > ?
              ORDER BY start_at ASC LIMIT 1`
	return db.bookingRef(ctx, query, itemID, models.StatusApproved, now.UTC())
}

func (db *DB) bookingRef(ctx context.Context, query string, args ...any) (*models.BookingRef, error) {
	var ref models.BookingRef
	err := db.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.BookerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking ref: %w", err)
	}
	return &ref, nil
}

// HasCompletedBooking reports whether the user has an approved booking
// on the item that ended before now. Commenting requires one.
func (db *DB) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND end_at < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}
