package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"
)

const itemColumns = `id, name, description, available, owner_id, request_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &requestID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}
	return &item, nil
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	var requestID any
	if item.RequestID != nil {
		requestID = *item.RequestID
	}
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, requestID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	item, err := scanItem(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// UpdateItem applies only the non-nil patch fields.
func (db *DB) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := db.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	item.UpdatedAt = time.Now().UTC()

	query := `UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.UpdatedAt, id,
	); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// SearchItems matches text as a case-insensitive substring against name
// or description, restricted to available items.
func (db *DB) SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1 AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
              ORDER BY id`
	args := []any{pattern, pattern}
	if page.Set() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit, page.Offset)
	}
	return db.queryItems(ctx, query, args...)
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	args := []any{ownerID}
	if page.Set() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit, page.Offset)
	}
	return db.queryItems(ctx, query, args...)
}

// GetItemsByRequestID lists items that name the request as their origin.
func (db *DB) GetItemsByRequestID(ctx context.Context, requestID int64) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}
