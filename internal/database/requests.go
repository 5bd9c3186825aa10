package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`
	created := request.Created
	if created.IsZero() {
		created = time.Now()
	}
	created = created.UTC()

	result, err := db.ExecContext(ctx, query, request.Description, request.RequestorID, created)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	request.Created = created
	return nil
}

func (db *DB) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`

	var request models.ItemRequest
	err := db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.Description, &request.RequestorID, &request.Created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &request, nil
}

// GetRequestsByRequestor lists the user's own requests, newest first.
func (db *DB) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id = ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requestorID)
}

// GetRequestsExcluding lists requests made by other users, newest first.
func (db *DB) GetRequestsExcluding(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id != ? ORDER BY created DESC`
	args := []any{requestorID}
	if page.Set() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit, page.Offset)
	}
	return db.queryRequests(ctx, query, args...)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ItemRequest{}
	for rows.Next() {
		var request models.ItemRequest
		if err := rows.Scan(&request.ID, &request.Description, &request.RequestorID, &request.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return requests, nil
}
