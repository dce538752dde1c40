package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockEventRepository struct {
	events     map[primitive.ObjectID]*domain.Event
	bySlug     map[string]*domain.Event
	createErr  error
	updateErr  error
	listErr    error
	listResult []*domain.Event
	lastUpdate domain.EventUpdate
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	return m.createErr
}

func (m *mockEventRepository) Update(ctx context.Context, id primitive.ObjectID, upd domain.EventUpdate) (*domain.Event, error) {
	m.lastUpdate = upd
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ev, ok := m.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockEventRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := m.events[id]
	return ok, nil
}

const testTimeout = 2 * time.Second

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockEventRepository{}
		svc := NewEventService(repo, testTimeout)
		require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{Title: "Conf"}))
	})

	t.Run("validation error passes through unwrapped", func(t *testing.T) {
		repo := &mockEventRepository{createErr: &domain.MissingFieldError{Field: "venue"}}
		svc := NewEventService(repo, testTimeout)

		err := svc.CreateEvent(context.Background(), &domain.Event{Title: "Conf"})

		var missing *domain.MissingFieldError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, "venue", missing.Field)
	})

	t.Run("slug conflict passes through", func(t *testing.T) {
		repo := &mockEventRepository{createErr: domain.ErrSlugConflict}
		svc := NewEventService(repo, testTimeout)
		require.ErrorIs(t, svc.CreateEvent(context.Background(), &domain.Event{Title: "Conf"}), domain.ErrSlugConflict)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		driverErr := errors.New("socket closed")
		repo := &mockEventRepository{createErr: driverErr}
		svc := NewEventService(repo, testTimeout)

		err := svc.CreateEvent(context.Background(), &domain.Event{Title: "Conf"})
		require.ErrorIs(t, err, driverErr)
		require.Contains(t, err.Error(), "create event")
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		repo := &mockEventRepository{events: map[primitive.ObjectID]*domain.Event{
			id: {ID: id, Slug: "conf"},
		}}
		svc := NewEventService(repo, testTimeout)

		title := "New Title"
		updated, err := svc.UpdateEvent(context.Background(), id, domain.EventUpdate{Title: &title})
		require.NoError(t, err)
		require.Equal(t, id, updated.ID)
		require.Equal(t, &title, repo.lastUpdate.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockEventRepository{}
		svc := NewEventService(repo, testTimeout)
		_, err := svc.UpdateEvent(context.Background(), id, domain.EventUpdate{})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid date passes through", func(t *testing.T) {
		repo := &mockEventRepository{updateErr: domain.ErrInvalidEventDate}
		svc := NewEventService(repo, testTimeout)
		_, err := svc.UpdateEvent(context.Background(), id, domain.EventUpdate{})
		require.ErrorIs(t, err, domain.ErrInvalidEventDate)
	})
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ev := &domain.Event{ID: primitive.NewObjectID(), Slug: "go-conf"}
	repo := &mockEventRepository{bySlug: map[string]*domain.Event{"go-conf": ev}}
	svc := NewEventService(repo, testTimeout)

	t.Run("found with trimmed input", func(t *testing.T) {
		got, err := svc.GetEventBySlug(context.Background(), "  go-conf ")
		require.NoError(t, err)
		require.Equal(t, ev, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetEventBySlug(context.Background(), "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	t.Run("nil result becomes empty slice", func(t *testing.T) {
		repo := &mockEventRepository{listResult: nil}
		svc := NewEventService(repo, testTimeout)

		events, err := svc.ListEvents(context.Background())
		require.NoError(t, err)
		require.NotNil(t, events)
		require.Empty(t, events)
	})

	t.Run("repo error wrapped", func(t *testing.T) {
		repo := &mockEventRepository{listErr: errors.New("cursor error")}
		svc := NewEventService(repo, testTimeout)
		_, err := svc.ListEvents(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "list events")
	})
}
