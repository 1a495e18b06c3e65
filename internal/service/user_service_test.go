package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhaven/trails-backend-go/internal/database"
	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	t.Cleanup(func() { db.Close() })
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)), "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		Email: "hiker@example.com", Name: "Hiker", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	token, logged, err := svc.Login(ctx, models.LoginRequest{
		Email: "hiker@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "hiker@example.com", Name: "Hiker", Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{
		Email: "hiker@example.com", Name: "Other", Password: "password2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "hiker@example.com", Name: "Hiker", Password: "password1",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, models.LoginRequest{
		Email: "hiker@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{
		Email: "nobody@example.com", Password: "password1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
