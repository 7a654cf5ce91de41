// ABOUTME: Custom category methods on SQLiteStore keyed by (user_id, name)
// ABOUTME: Replacing a category by name also refreshes its position in insertion order

package store

import (
	"context"
	"fmt"
	"time"
)

// UpsertCategory inserts or replaces (by name) a user's custom category.
// Replacing updates the timestamp, so the category moves to the end of the
// insertion order.
func (s *SQLiteStore) UpsertCategory(ctx context.Context, userID string, cat Category) error {
	query := `INSERT INTO categories (user_id, name, color, timestamp)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET
			color = excluded.color,
			timestamp = excluded.timestamp`

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, userID, cat.Name, cat.Color, now.Format(timeLayout)); err != nil {
		return fmt.Errorf("upserting category: %w", err)
	}

	s.logger.Debug("custom category stored", "user_id", userID, "name", cat.Name, "color", cat.Color)
	return nil
}

// ListCategories returns a user's custom categories in insertion order,
// oldest first.
func (s *SQLiteStore) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	query := `SELECT name, color FROM categories WHERE user_id = ? ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.Name, &cat.Color); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}
