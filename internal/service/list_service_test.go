package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/repository"
)

func TestWishlistRoundTrip(t *testing.T) {
	db := newTestDB(t)
	trailRepo := repository.NewTrailRepository(db)
	svc := NewListService(repository.NewListRepository(db), trailRepo)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	trailID, err := trailRepo.Create(ctx, &models.Trail{Name: "Lake Loop"})
	require.NoError(t, err)
	userID, err := users.Create(ctx, &models.User{Email: "a@b.c", PasswordHash: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.SetWishlisted(ctx, userID, trailID, true))

	trails, err := svc.GetList(ctx, "wishlist", userID)
	require.NoError(t, err)
	require.Len(t, trails, 1)
	assert.Equal(t, trailID, trails[0].ID)
	require.NotNil(t, trails[0].Wishlisted)
	assert.True(t, *trails[0].Wishlisted)

	// toggling twice is a no-op, removing empties the list
	require.NoError(t, svc.SetWishlisted(ctx, userID, trailID, true))
	require.NoError(t, svc.SetWishlisted(ctx, userID, trailID, false))

	trails, err = svc.GetList(ctx, "wishlist", userID)
	require.NoError(t, err)
	assert.Empty(t, trails)
}

func TestCompletedRoundTrip(t *testing.T) {
	db := newTestDB(t)
	trailRepo := repository.NewTrailRepository(db)
	svc := NewListService(repository.NewListRepository(db), trailRepo)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	trailID, err := trailRepo.Create(ctx, &models.Trail{Name: "Summit Push"})
	require.NoError(t, err)
	userID, err := users.Create(ctx, &models.User{Email: "a@b.c", PasswordHash: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.SetCompleted(ctx, userID, trailID, true))

	trails, err := svc.GetList(ctx, "completed", userID)
	require.NoError(t, err)
	require.Len(t, trails, 1)
	require.NotNil(t, trails[0].Completed)
	assert.True(t, *trails[0].Completed)
}

func TestGetListUnknownTableRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(repository.NewListRepository(db), repository.NewTrailRepository(db))

	_, err := svc.GetList(context.Background(), "favorites", 1)
	assert.Error(t, err)
}
