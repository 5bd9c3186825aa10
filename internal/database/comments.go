package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"
)

// CreateComment persists a comment. The unique index on
// (item_id, author_id) rejects a second comment by the same author.
func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, comment.Text, comment.ItemID, comment.AuthorID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrAlreadyCommented
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	comment.Created = now
	return nil
}

func (db *DB) GetCommentsByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ?
              ORDER BY c.created DESC`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Text, &comment.ItemID, &comment.AuthorID,
			&comment.AuthorName, &comment.Created,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}
