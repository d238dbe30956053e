package repository

import (
	"context"
	"errors"
	"fmt"

	"go-gin-events/internal/model"
	apperrors "go-gin-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JoinRepository interface {
	// Create 同一個 transaction 內增加活動 num_joins 並寫入報名，回傳新的 num_joins
	Create(ctx context.Context, join *model.Join) (*model.Join, int, error)
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Join, error)
}

type JoinRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewJoinRepository(pool *pgxpool.Pool) JoinRepository {
	return &JoinRepositoryImpl{
		pool: pool,
	}
}

func (r *JoinRepositoryImpl) Create(ctx context.Context, join *model.Join) (*model.Join, int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	// 先鎖住活動並 +1，活動不存在時不會寫入任何報名
	var numJoins int
	err = tx.QueryRow(ctx, `
		UPDATE events
		SET num_joins = num_joins + 1
		WHERE id = $1
		RETURNING num_joins
	`, join.EventID).Scan(&numJoins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrEventNotFound
		}
		return nil, 0, fmt.Errorf("increment num_joins: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO joins (id, event_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, join.ID, join.EventID, join.AuthorID, join.Content).Scan(&join.CreatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("insert join: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return join, numJoins, nil
}

func (r *JoinRepositoryImpl) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Join, error) {
	query := `
		SELECT j.id, j.event_id, j.author_id, j.content, j.created_at,
			u.id, u.name, u.email, u.created_at
		FROM joins j
		JOIN users u ON u.id = j.author_id
		WHERE j.event_id = $1
		ORDER BY j.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	joins := make([]*model.Join, 0)
	for rows.Next() {
		var join model.Join
		var author model.User
		err := rows.Scan(
			&join.ID,
			&join.EventID,
			&join.AuthorID,
			&join.Content,
			&join.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		join.Author = &author
		joins = append(joins, &join)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return joins, nil
}
