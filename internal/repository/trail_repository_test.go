package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhaven/trails-backend-go/internal/database"
	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/search"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a single pooled connection keeps the in-memory database alive
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	t.Cleanup(func() { db.Close() })
	return db
}

func seedTrail(t *testing.T, repo *TrailRepository, trail models.Trail) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &trail)
	require.NoError(t, err)
	return id
}

func seedBasicTrails(t *testing.T, repo *TrailRepository) (caveFalls, meadow int64) {
	caveFalls = seedTrail(t, repo, models.Trail{
		Name: "Hidden Cave Falls", City: "Boulder", State: "CO",
		Difficulty: "moderate", RouteType: "out-and-back", Rating: 4.5,
		Miles: 4.0, Kilometers: 6.4,
		ElevationGainFt: 500, ElevationGainM: 152,
		Features:        []string{"Cave", "Waterfall"},
		Images:          []string{"trails/1/cover.jpg"},
	})
	meadow = seedTrail(t, repo, models.Trail{
		Name: "Sunny Meadow Loop", City: "Golden", State: "CO",
		Difficulty: "easy", RouteType: "loop", Rating: 4.0,
		Miles: 2.0, Kilometers: 3.2,
		ElevationGainFt: 120, ElevationGainM: 37,
		Features:        []string{"Waterfall"},
	})
	return caveFalls, meadow
}

func TestSearchFeaturesRequiresAllListed(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	caveFalls, _ := seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{
			"features": []interface{}{"Cave", "Waterfall"},
		},
		Unit: "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Trails, 1)
	assert.Equal(t, caveFalls, result.Trails[0].ID)
	assert.ElementsMatch(t, []string{"Cave", "Waterfall"}, result.Trails[0].Features)
}

func TestSearchInvertedDistanceRangeIsCorrected(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	caveFalls, _ := seedBasicTrails(t, repo)
	seedTrail(t, repo, models.Trail{Name: "Rim Traverse", Miles: 18.0, Kilometers: 29.0})

	// caller swapped the bounds; effectively miles in [2, 10]
	result, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{
			"minDistanceImperial": 10.0,
			"maxDistanceImperial": 2.0,
		},
		Unit: "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalCount)
	require.Len(t, result.Trails, 2)
	assert.Equal(t, caveFalls, result.Trails[0].ID)
}

func TestSearchFullTextTerm(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	caveFalls, _ := seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{
		SearchTerm: "Cave & Falls!",
		Unit:       "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Trails, 1)
	assert.Equal(t, caveFalls, result.Trails[0].ID)
}

func TestSearchTermWithFTSReservedWords(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	forest := seedTrail(t, repo, models.Trail{
		Name: "Forest Park Loop", City: "Portland", State: "OR",
		Miles: 5.0, Kilometers: 8.0,
	})
	seedBasicTrails(t, repo)

	// OR and NOT must read as plain tokens, not FTS5 operators
	result, err := repo.Search(context.Background(), models.SearchRequest{
		SearchTerm: "Portland OR",
		Unit:       "Imperial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Trails, 1)
	assert.Equal(t, forest, result.Trails[0].ID)

	result, err = repo.Search(context.Background(), models.SearchRequest{
		SearchTerm: "NOT waterfall",
		Unit:       "Imperial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalCount)
}

func TestSearchPunctuationOnlyTermMatchesEverything(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{
		SearchTerm: "&&& !!!",
		Unit:       "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalCount)
}

func TestSearchPaginationBoundary(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	for i := 0; i < 25; i++ {
		seedTrail(t, repo, models.Trail{
			Name:  fmt.Sprintf("Trail %02d", i),
			Miles: 3.0, Kilometers: 4.8,
		})
	}

	result, err := repo.Search(context.Background(), models.SearchRequest{
		Page:  3,
		Limit: 10,
		Unit:  "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), result.TotalCount)
	assert.Len(t, result.Trails, 5)
}

func TestSearchEmptyPageSkipsHydration(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"minDistanceImperial": 100.0},
		Unit:    "Imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.TotalCount)
	assert.Empty(t, result.Trails)
}

func TestSearchElevationBoundsAreStrict(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	caveFalls, _ := seedBasicTrails(t, repo)

	// strict >: a gain of exactly 500 must be excluded
	result, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"minElevationGain": 500.0},
		Unit:    "Imperial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalCount)

	result, err = repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"minElevationGain": 499.0},
		Unit:    "Imperial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Trails, 1)
	assert.Equal(t, caveFalls, result.Trails[0].ID)
}

func TestSearchInvalidFiltersRejectedBeforeQuerying(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))

	_, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"features": "cave"},
		Unit:    "Imperial",
	})
	assert.ErrorIs(t, err, search.ErrInvalidFilterValue)

	_, err = repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"minDistanceFurlong": 3.0},
		Unit:    "Imperial",
	})
	assert.ErrorIs(t, err, search.ErrInvalidFilterKey)
}

func TestSearchUnknownFilterKeyIgnored(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{
		Filters: map[string]interface{}{"surfaceColor": "red"},
		Unit:    "Imperial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestSearchAnnotatesUserFlags(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrailRepository(db)
	users := NewUserRepository(db)
	lists := NewListRepository(db)

	caveFalls, meadow := seedBasicTrails(t, repo)

	userID, err := users.Create(context.Background(), &models.User{
		Email: "hiker@example.com", Name: "Hiker", PasswordHash: "x",
	})
	require.NoError(t, err)

	require.NoError(t, lists.AddWishlist(context.Background(), userID, caveFalls))
	require.NoError(t, lists.AddCompleted(context.Background(), userID, meadow))

	result, err := repo.Search(context.Background(), models.SearchRequest{
		Unit:   "Imperial",
		UserID: &userID,
	})
	require.NoError(t, err)
	require.Len(t, result.Trails, 2)

	byID := make(map[int64]models.Trail)
	for _, trail := range result.Trails {
		byID[trail.ID] = trail
	}

	require.NotNil(t, byID[caveFalls].Wishlisted)
	assert.True(t, *byID[caveFalls].Wishlisted)
	assert.False(t, *byID[caveFalls].Completed)
	assert.True(t, *byID[meadow].Completed)
	assert.False(t, *byID[meadow].Wishlisted)
}

func TestSearchAnonymousOmitsUserFlags(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	seedBasicTrails(t, repo)

	result, err := repo.Search(context.Background(), models.SearchRequest{Unit: "Imperial"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Trails)

	assert.Nil(t, result.Trails[0].Wishlisted)
	assert.Nil(t, result.Trails[0].Completed)
}

func TestGetTrailsByIDsRejectsEmptySet(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))

	_, err := repo.GetTrailsByIDs(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTrailByIDNotFound(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))

	_, err := repo.GetTrailByID(context.Background(), 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTrailByIDHydratesEverything(t *testing.T) {
	repo := NewTrailRepository(newTestDB(t))
	id := seedTrail(t, repo, models.Trail{
		Name: "Canyon Rim", City: "Moab", State: "UT",
		Difficulty: "hard", RouteType: "point-to-point",
		Miles: 9.3, Kilometers: 15.0,
		Features: []string{"Views", "Slot Canyon"},
		Images:   []string{"trails/a.jpg", "trails/b.jpg"},
		Coords: []models.Coordinate{
			{Lat: 38.57, Lon: -109.55, Elevation: 1200},
			{Lat: 38.58, Lon: -109.54, Elevation: 1260},
		},
	})

	trail, err := repo.GetTrailByID(context.Background(), id, nil)
	require.NoError(t, err)

	assert.Equal(t, "Canyon Rim", trail.Name)
	assert.ElementsMatch(t, []string{"Views", "Slot Canyon"}, trail.Features)
	assert.Equal(t, []string{"trails/a.jpg", "trails/b.jpg"}, trail.Images)
	require.Len(t, trail.Coords, 2)
	assert.Equal(t, 38.57, trail.Coords[0].Lat)
}
