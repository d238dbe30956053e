package service

import (
	"context"

	"go-gin-events/internal/model"
	"go-gin-events/internal/notify"
	"go-gin-events/internal/repository"
	"go-gin-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	// List 分頁列表，params 需已套用預設值
	List(ctx context.Context, params model.EventListParams) (*model.EventPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// View 活動頁：活動、所有報名，並增加瀏覽次數
	View(ctx context.Context, id uuid.UUID) (*model.EventDetail, error)
	Create(ctx context.Context, authorID uuid.UUID, form model.EventForm) (*model.Event, error)
	// Update 先確認活動存在再驗證表單
	Update(ctx context.Context, id uuid.UUID, form model.EventForm) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Join 報名並通知活動作者，通知失敗不影響報名結果
	Join(ctx context.Context, eventID, authorID uuid.UUID, content string) (*model.Join, error)
}

type EventServiceImpl struct {
	repo     repository.EventRepository
	joinRepo repository.JoinRepository
	notifier notify.Notifier
}

func NewEventService(repo repository.EventRepository, joinRepo repository.JoinRepository, notifier notify.Notifier) EventService {
	return &EventServiceImpl{repo: repo, joinRepo: joinRepo, notifier: notifier}
}

func (s *EventServiceImpl) List(ctx context.Context, params model.EventListParams) (*model.EventPage, error) {
	events, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return model.NewEventPage(events, total, params), nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) View(ctx context.Context, id uuid.UUID) (*model.EventDetail, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	joins, err := s.joinRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, err
	}
	numReads, err := s.repo.IncrementReads(ctx, id)
	if err != nil {
		return nil, err
	}
	event.NumReads = numReads

	return &model.EventDetail{Event: event, Joins: joins}, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, authorID uuid.UUID, form model.EventForm) (*model.Event, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	params := form.Params()
	event := &model.Event{
		ID:                   uuid.New(),
		Title:                params.Title,
		Content:              params.Content,
		Location:             params.Location,
		StartTime:            params.StartTime,
		EndTime:              params.EndTime,
		OrganizerName:        params.OrganizerName,
		OrganizerDescription: params.OrganizerDescription,
		Fee:                  params.Fee,
		Tags:                 params.Tags,
		AuthorID:             authorID,
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, id uuid.UUID, form model.EventForm) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, event.ID, form.Params())
}

func (s *EventServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *EventServiceImpl) Join(ctx context.Context, eventID, authorID uuid.UUID, content string) (*model.Join, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	join, numJoins, err := s.joinRepo.Create(ctx, &model.Join{
		ID:       uuid.New(),
		EventID:  event.ID,
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}
	event.NumJoins = numJoins

	if err := s.notifier.Joined(ctx, event, join); err != nil {
		logger.WithComponent("service").Warn("Notify joined failed",
			zap.String("event_id", event.ID.String()),
			zap.String("join_id", join.ID.String()),
			zap.Error(err))
	}
	return join, nil
}
