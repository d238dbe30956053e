package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-events/internal/model"
	apperrors "go-gin-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	// List 依 created_at DESC 分頁，回傳該頁資料與符合條件的總筆數
	List(ctx context.Context, params model.EventListParams) ([]*model.Event, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.EventParams) (*model.Event, error)
	// Delete 不存在也不回錯
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementReads 原子地 +1 並回傳新的 num_reads
	IncrementReads(ctx context.Context, id uuid.UUID) (int, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

// events 與作者一起查出，順序需與 scanEvent 一致
const eventColumns = `
	e.id, e.title, e.content, e.location, e.start_time, e.end_time,
	e.organizer_name, e.organizer_description, e.fee, e.tags, e.author_id,
	e.num_reads, e.num_joins, e.created_at, e.updated_at,
	u.id, u.name, u.email, u.created_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var author model.User
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Content,
		&event.Location,
		&event.StartTime,
		&event.EndTime,
		&event.OrganizerName,
		&event.OrganizerDescription,
		&event.Fee,
		&event.Tags,
		&event.AuthorID,
		&event.NumReads,
		&event.NumJoins,
		&event.CreatedAt,
		&event.UpdatedAt,
		&author.ID,
		&author.Name,
		&author.Email,
		&author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Author = &author
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.Tags == nil {
		event.Tags = []string{}
	}

	query := `
		WITH e AS (
			INSERT INTO events (
				id, title, content, location, start_time, end_time,
				organizer_name, organizer_description, fee, tags, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING *
		)
		SELECT ` + eventColumns + `
		FROM e
		JOIN users u ON u.id = e.author_id
	`
	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.ID, event.Title, event.Content, event.Location, event.StartTime, event.EndTime,
		event.OrganizerName, event.OrganizerDescription, event.Fee, event.Tags, event.AuthorID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, params model.EventListParams) ([]*model.Event, int, error) {
	where := ""
	args := []interface{}{}
	argPos := 1

	if params.Term != "" {
		where = fmt.Sprintf("WHERE e.title ILIKE $%d OR e.content ILIKE $%d", argPos, argPos)
		args = append(args, likePattern(params.Term))
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM events e " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN users u ON u.id = e.author_id
		%s
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, argPos, argPos+1)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0, params.Limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.author_id
		WHERE e.id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.EventParams) (*model.Event, error) {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		WITH e AS (
			UPDATE events
			SET title = $1, content = $2, location = $3, start_time = $4, end_time = $5,
				organizer_name = $6, organizer_description = $7, fee = $8, tags = $9,
				updated_at = $10
			WHERE id = $11
			RETURNING *
		)
		SELECT ` + eventColumns + `
		FROM e
		JOIN users u ON u.id = e.author_id
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query,
		params.Title, params.Content, params.Location, params.StartTime, params.EndTime,
		params.OrganizerName, params.OrganizerDescription, params.Fee, tags,
		time.Now().UTC(), id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepositoryImpl) IncrementReads(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE events
		SET num_reads = num_reads + 1
		WHERE id = $1
		RETURNING num_reads
	`

	var numReads int
	err := r.pool.QueryRow(ctx, query, id).Scan(&numReads)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrEventNotFound
		}
		return 0, err
	}
	return numReads, nil
}

// likePattern 跳脫 LIKE 特殊字元後包成子字串比對
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
