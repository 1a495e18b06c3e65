package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ListRepository handles the per-user wishlist and completed-trail sets
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// AddWishlist marks a trail as wishlisted for a user. Adding an already
// wishlisted trail is a no-op.
func (r *ListRepository) AddWishlist(ctx context.Context, userID, trailID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO wishlist (user_id, trail_id) VALUES (?, ?)",
		userID, trailID)
	if err != nil {
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}
	return nil
}

// RemoveWishlist removes a trail from a user's wishlist
func (r *ListRepository) RemoveWishlist(ctx context.Context, userID, trailID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist WHERE user_id = ? AND trail_id = ?", userID, trailID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

// AddCompleted marks a trail as completed for a user
func (r *ListRepository) AddCompleted(ctx context.Context, userID, trailID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO completed (user_id, trail_id) VALUES (?, ?)",
		userID, trailID)
	if err != nil {
		return fmt.Errorf("failed to add completed entry: %w", err)
	}
	return nil
}

// RemoveCompleted removes a trail from a user's completed set
func (r *ListRepository) RemoveCompleted(ctx context.Context, userID, trailID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM completed WHERE user_id = ? AND trail_id = ?", userID, trailID)
	if err != nil {
		return fmt.Errorf("failed to remove completed entry: %w", err)
	}
	return nil
}

// ListTrailIDs returns the trail ids in one of a user's lists, newest
// entries first. table must be "wishlist" or "completed".
func (r *ListRepository) ListTrailIDs(ctx context.Context, table string, userID int64) ([]int64, error) {
	if table != "wishlist" && table != "completed" {
		return nil, fmt.Errorf("unknown list table %q", table)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT trail_id FROM "+table+" WHERE user_id = ? ORDER BY rowid DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s entry: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
