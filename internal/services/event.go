package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdeck/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Validation, normalization, and timestamps happen in the repository's
	// commit pipeline; the service only forwards the candidate.
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if isCommitValidationErr(err) || errors.Is(err, domain.ErrSlugConflict) {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id primitive.ObjectID, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrSlugConflict) || isCommitValidationErr(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.TrimSpace(slug)
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// isCommitValidationErr reports whether err came from the event commit
// pipeline rather than the driver, so callers can surface it untouched.
func isCommitValidationErr(err error) bool {
	var missing *domain.MissingFieldError
	if errors.As(err, &missing) {
		return true
	}
	return errors.Is(err, domain.ErrInvalidAgenda) ||
		errors.Is(err, domain.ErrInvalidTags) ||
		errors.Is(err, domain.ErrEmptySlug) ||
		errors.Is(err, domain.ErrInvalidEventDate) ||
		errors.Is(err, domain.ErrInvalidEventTime)
}
