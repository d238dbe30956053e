package main

import (
	"context"
	"errors"
	"testing"

	"go-gin-events/internal/model"
	"go-gin-events/internal/repository/mocks"
	apperrors "go-gin-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing user", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		existing := &model.User{ID: uuid.New(), Name: "amy", Email: "amy@test.com"}
		users.EXPECT().FindByEmail(ctx, "amy@test.com").Return(existing, nil)

		user, err := findOrCreateUser(ctx, users, "amy@test.com", "ignored")

		require.NoError(t, err)
		assert.Equal(t, existing, user)
	})

	t.Run("Creates missing user with email as name", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		users.EXPECT().FindByEmail(ctx, "bob@test.com").Return(nil, apperrors.ErrUserNotFound)
		users.EXPECT().Create(ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "bob@test.com" && u.Email == "bob@test.com"
		})).RunAndReturn(func(_ context.Context, u *model.User) (*model.User, error) {
			u.ID = uuid.New()
			return u, nil
		})

		user, err := findOrCreateUser(ctx, users, "bob@test.com", "")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("Lookup error", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		users.EXPECT().FindByEmail(ctx, "c@test.com").Return(nil, errors.New("connection refused"))

		_, err := findOrCreateUser(ctx, users, "c@test.com", "c")

		assert.EqualError(t, err, "connection refused")
	})
}
