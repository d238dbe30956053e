package repository_test

import (
	"context"
	"testing"

	"go-gin-events/internal/model"
	"go-gin-events/internal/repository"
	apperrors "go-gin-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndFind", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewUserRepository(getTestDB())

		created, err := repo.Create(ctx, &model.User{Name: "Judy", Email: "judy@test.com"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.NotZero(t, created.CreatedAt)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Judy", byID.Name)

		byEmail, err := repo.FindByEmail(ctx, "judy@test.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewUserRepository(getTestDB())

		_, err := repo.Create(ctx, &model.User{Name: "a", Email: "dup@test.com"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &model.User{Name: "b", Email: "dup@test.com"})
		assert.Error(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewUserRepository(getTestDB())

		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@test.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
