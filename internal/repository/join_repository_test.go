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

func TestJoinRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewJoinRepository(getTestDB())

		organizerID := createTestUser(t, "organizer")
		joinerID := createTestUser(t, "joiner")
		eventID := createTestEvent(t, organizerID, "Hackathon", "body")

		join, numJoins, err := repo.Create(ctx, &model.Join{
			ID:       uuid.New(),
			EventID:  eventID,
			AuthorID: joinerID,
			Content:  "count me in",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, numJoins)
		assert.Equal(t, "count me in", join.Content)
		assert.NotZero(t, join.CreatedAt)
		assertRowCount(t, "joins", 1)

		_, numJoins, err = repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: eventID, AuthorID: joinerID})
		require.NoError(t, err)
		assert.Equal(t, 2, numJoins)
	})

	t.Run("EventNotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewJoinRepository(getTestDB())

		joinerID := createTestUser(t, "joiner")

		_, _, err := repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: uuid.New(), AuthorID: joinerID})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assertRowCount(t, "joins", 0)
	})
}

func TestJoinRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()

	t.Run("OrderedByCreatedAtAsc", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewJoinRepository(getTestDB())

		organizerID := createTestUser(t, "organizer")
		firstID := createTestUser(t, "first")
		secondID := createTestUser(t, "second")
		eventID := createTestEvent(t, organizerID, "Workshop", "body")
		otherEventID := createTestEvent(t, organizerID, "Other", "body")

		_, _, err := repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: eventID, AuthorID: firstID, Content: "1"})
		require.NoError(t, err)
		_, _, err = repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: eventID, AuthorID: secondID, Content: "2"})
		require.NoError(t, err)
		_, _, err = repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: otherEventID, AuthorID: firstID})
		require.NoError(t, err)

		joins, err := repo.ListByEventID(ctx, eventID)

		require.NoError(t, err)
		require.Len(t, joins, 2)
		assert.Equal(t, "1", joins[0].Content)
		assert.Equal(t, "first", joins[0].Author.Name)
		assert.Equal(t, "2", joins[1].Content)
		assert.Equal(t, "second", joins[1].Author.Name)
	})

	t.Run("Empty", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewJoinRepository(getTestDB())

		joins, err := repo.ListByEventID(ctx, uuid.New())

		require.NoError(t, err)
		assert.Empty(t, joins)
	})

	t.Run("DeletedWithEvent", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()
		repo := repository.NewJoinRepository(getTestDB())
		eventRepo := repository.NewEventRepository(getTestDB())

		organizerID := createTestUser(t, "organizer")
		eventID := createTestEvent(t, organizerID, "Short lived", "body")
		_, _, err := repo.Create(ctx, &model.Join{ID: uuid.New(), EventID: eventID, AuthorID: organizerID})
		require.NoError(t, err)

		require.NoError(t, eventRepo.Delete(ctx, eventID))

		assertRowCount(t, "joins", 0)
	})
}
