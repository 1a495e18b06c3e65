package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/search"
)

// ErrNotFound indicates that a lookup matched no rows
var ErrNotFound = errors.New("not found")

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx so hydration
// can run on whichever session the caller already holds
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// trailColumns is the SELECT list shared by search hydration and
// single-trail lookups
const trailColumns = `t.id, t.name, t.city, t.state, t.difficulty, t.route_type, t.rating,
	t.dog_friendly, t.kid_friendly, t.miles, t.kilometers,
	t.elevation_ft, t.elevation_m, t.elevation_gain_ft, t.elevation_gain_m,
	t.elevation_loss_ft, t.elevation_loss_m, t.lat, t.lon, t.description,
	t.created_at, t.updated_at`

// TrailRepository handles database operations for trails
type TrailRepository struct {
	db *sql.DB
}

// NewTrailRepository creates a new trail repository
func NewTrailRepository(db *sql.DB) *TrailRepository {
	return &TrailRepository{db: db}
}

// Search runs a filtered full-text trail search. It composes a single
// predicate from the search term and filter map, runs a COUNT query and
// an id-page query against one pooled connection, then hydrates the
// matched ids. Filter validation errors surface as-is; query failures
// are logged in full and re-signaled as search.ErrSearchExecution.
func (r *TrailRepository) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit

	filters, err := search.ParseFilters(req.Filters, search.Unit(req.Unit))
	if err != nil {
		return nil, err
	}

	binder := search.NewBinder()
	where := search.Compose(req.SearchTerm, filters, binder)

	// one exclusive connection for both phases, released on every path
	conn, err := r.db.Conn(ctx)
	if err != nil {
		log.Printf("search: failed to acquire connection: %v", err)
		return nil, search.ErrSearchExecution
	}
	defer conn.Close()

	var total int64
	countQuery := "SELECT COUNT(*) FROM trails t WHERE " + where
	if err := conn.QueryRowContext(ctx, countQuery, binder.Args()...).Scan(&total); err != nil {
		log.Printf("search: count query failed: %v", err)
		return nil, search.ErrSearchExecution
	}

	// same predicate and parameters, plus limit and offset bound last
	idQuery := fmt.Sprintf("SELECT t.id FROM trails t WHERE %s ORDER BY t.id LIMIT %s OFFSET %s",
		where, binder.Add(limit), binder.Add(offset))

	ids, err := r.fetchIDs(ctx, conn, idQuery, binder.Args())
	if err != nil {
		log.Printf("search: id query failed: %v", err)
		return nil, search.ErrSearchExecution
	}

	// hydration rejects an empty id set, so short-circuit here
	if len(ids) == 0 {
		return &models.SearchResult{TotalCount: total, Trails: []models.Trail{}}, nil
	}

	trails, err := r.hydrate(ctx, conn, ids, req.UserID)
	if err != nil {
		log.Printf("search: hydration failed: %v", err)
		return nil, search.ErrSearchExecution
	}

	return &models.SearchResult{TotalCount: total, Trails: trails}, nil
}

// fetchIDs collects the page of matching trail ids, fully draining and
// closing the result set before the shared connection is reused
func (r *TrailRepository) fetchIDs(ctx context.Context, q querier, query string, args []interface{}) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetTrailsByIDs hydrates the given trail ids, annotated with the given
// user's wishlist/completed flags when userID is non-nil. Returns
// ErrNotFound when no ids match; an empty id set is rejected outright.
func (r *TrailRepository) GetTrailsByIDs(ctx context.Context, ids []int64, userID *int64) ([]models.Trail, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty trail id set", ErrNotFound)
	}
	return r.hydrate(ctx, r.db, ids, userID)
}

// GetTrailByID retrieves a single hydrated trail
func (r *TrailRepository) GetTrailByID(ctx context.Context, id int64, userID *int64) (*models.Trail, error) {
	trails, err := r.hydrate(ctx, r.db, []int64{id}, userID)
	if err != nil {
		return nil, err
	}
	return &trails[0], nil
}

func (r *TrailRepository) hydrate(ctx context.Context, q querier, ids []int64, userID *int64) ([]models.Trail, error) {
	placeholders := make([]string, len(ids))
	idArgs := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		idArgs[i] = id
	}
	in := strings.Join(placeholders, ", ")

	// placeholders bind in textual order: the EXISTS clauses in the
	// SELECT list come before the id list in the WHERE clause
	query := "SELECT " + trailColumns
	args := idArgs
	if userID != nil {
		query += `,
			EXISTS(SELECT 1 FROM wishlist w WHERE w.user_id = ? AND w.trail_id = t.id),
			EXISTS(SELECT 1 FROM completed c WHERE c.user_id = ? AND c.trail_id = t.id)`
		args = append([]interface{}{*userID, *userID}, idArgs...)
	}
	query += " FROM trails t WHERE t.id IN (" + in + ") ORDER BY t.id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trails: %w", err)
	}
	defer rows.Close()

	var trails []models.Trail
	index := make(map[int64]int)
	for rows.Next() {
		var t models.Trail
		var dog, kid int64
		dest := []interface{}{
			&t.ID, &t.Name, &t.City, &t.State, &t.Difficulty, &t.RouteType, &t.Rating,
			&dog, &kid, &t.Miles, &t.Kilometers,
			&t.ElevationFt, &t.ElevationM, &t.ElevationGainFt, &t.ElevationGainM,
			&t.ElevationLossFt, &t.ElevationLossM, &t.Lat, &t.Lon, &t.Description,
			&t.CreatedAt, &t.UpdatedAt,
		}
		var wish, done int64
		if userID != nil {
			dest = append(dest, &wish, &done)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan trail: %w", err)
		}
		t.DogFriendly = dog != 0
		t.KidFriendly = kid != 0
		if userID != nil {
			w := wish != 0
			d := done != 0
			t.Wishlisted = &w
			t.Completed = &d
		}
		t.Features = []string{}
		t.Images = []string{}
		index[t.ID] = len(trails)
		trails = append(trails, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trails: %w", err)
	}
	// release the result set before issuing the attach queries, which
	// may share the caller's single connection
	rows.Close()
	if len(trails) == 0 {
		return nil, fmt.Errorf("%w: no trails for ids", ErrNotFound)
	}

	if err := r.attachFeatures(ctx, q, in, idArgs, trails, index); err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, q, in, idArgs, trails, index); err != nil {
		return nil, err
	}
	if err := r.attachCoords(ctx, q, in, idArgs, trails, index); err != nil {
		return nil, err
	}

	return trails, nil
}

func (r *TrailRepository) attachFeatures(ctx context.Context, q querier, in string, args []interface{}, trails []models.Trail, index map[int64]int) error {
	query := `SELECT tf.trail_id, f.name FROM trail_features tf
		JOIN features f ON f.id = tf.feature_id
		WHERE tf.trail_id IN (` + in + `) ORDER BY tf.trail_id, f.name`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query trail features: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trailID int64
		var name string
		if err := rows.Scan(&trailID, &name); err != nil {
			return fmt.Errorf("failed to scan trail feature: %w", err)
		}
		if i, ok := index[trailID]; ok {
			trails[i].Features = append(trails[i].Features, name)
		}
	}
	return rows.Err()
}

func (r *TrailRepository) attachImages(ctx context.Context, q querier, in string, args []interface{}, trails []models.Trail, index map[int64]int) error {
	query := `SELECT trail_id, path FROM trail_images
		WHERE trail_id IN (` + in + `) ORDER BY trail_id, position`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query trail images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trailID int64
		var path string
		if err := rows.Scan(&trailID, &path); err != nil {
			return fmt.Errorf("failed to scan trail image: %w", err)
		}
		if i, ok := index[trailID]; ok {
			trails[i].Images = append(trails[i].Images, path)
		}
	}
	return rows.Err()
}

func (r *TrailRepository) attachCoords(ctx context.Context, q querier, in string, args []interface{}, trails []models.Trail, index map[int64]int) error {
	query := `SELECT trail_id, lat, lon, elevation FROM trail_coords
		WHERE trail_id IN (` + in + `) ORDER BY trail_id, seq`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query trail coords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trailID int64
		var c models.Coordinate
		if err := rows.Scan(&trailID, &c.Lat, &c.Lon, &c.Elevation); err != nil {
			return fmt.Errorf("failed to scan trail coord: %w", err)
		}
		if i, ok := index[trailID]; ok {
			trails[i].Coords = append(trails[i].Coords, c)
		}
	}
	return rows.Err()
}

// Create inserts a trail with its features, images and coordinate
// geometry in one transaction and returns the new id
func (r *TrailRepository) Create(ctx context.Context, t *models.Trail) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO trails
		(name, city, state, difficulty, route_type, rating, dog_friendly, kid_friendly,
		 miles, kilometers, elevation_ft, elevation_m, elevation_gain_ft, elevation_gain_m,
		 elevation_loss_ft, elevation_loss_m, lat, lon, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.City, t.State, t.Difficulty, t.RouteType, t.Rating,
		boolToInt(t.DogFriendly), boolToInt(t.KidFriendly),
		t.Miles, t.Kilometers, t.ElevationFt, t.ElevationM,
		t.ElevationGainFt, t.ElevationGainM, t.ElevationLossFt, t.ElevationLossM,
		t.Lat, t.Lon, t.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trail: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read trail id: %w", err)
	}

	for _, name := range t.Features {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO features (name) VALUES (?)", name); err != nil {
			return 0, fmt.Errorf("failed to insert feature %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO trail_features (trail_id, feature_id)
			SELECT ?, id FROM features WHERE name = ?`, id, name); err != nil {
			return 0, fmt.Errorf("failed to link feature %s: %w", name, err)
		}
	}

	for i, path := range t.Images {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO trail_images (trail_id, path, position) VALUES (?, ?, ?)",
			id, path, i); err != nil {
			return 0, fmt.Errorf("failed to insert image: %w", err)
		}
	}

	for i, c := range t.Coords {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO trail_coords (trail_id, seq, lat, lon, elevation) VALUES (?, ?, ?, ?, ?)",
			id, i, c.Lat, c.Lon, c.Elevation); err != nil {
			return 0, fmt.Errorf("failed to insert coord: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit trail: %w", err)
	}

	return id, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
