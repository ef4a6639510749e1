package services

import (
	"context"

	"github.com/eventlane/apiserver/types"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.Event, error)
	Get(ctx context.Context, id int) (types.Event, error)
	Create(ctx context.Context, event types.Event) (int, error)
	Update(ctx context.Context, event types.Event) error
	Delete(ctx context.Context, id int) error
}

// EventService encapsulates event use-cases.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) ListByUser(ctx context.Context, userID int) ([]types.Event, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *EventService) Get(ctx context.Context, id int) (types.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *EventService) Create(ctx context.Context, event types.Event) (int, error) {
	return s.repo.Create(ctx, event)
}

// Update replaces all mutable fields of the event. Mutation is keyed by
// event id alone; ownership is not re-checked.
func (s *EventService) Update(ctx context.Context, event types.Event) error {
	return s.repo.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
