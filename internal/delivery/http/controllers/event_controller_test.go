package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr       error
	updateErr       error
	updateResult    *domain.Event
	getBySlugErr    error
	getBySlugResult *domain.Event
	listErr         error
	listResult      []*domain.Event
	lastCreated     *domain.Event
	lastUpdateID    primitive.ObjectID
	lastUpdate      domain.EventUpdate
	lastSlug        string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = primitive.NewObjectID()
	event.Slug = "created-slug"
	return nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id primitive.ObjectID, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdateID = id
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	if f.getBySlugErr != nil {
		return nil, f.getBySlugErr
	}
	return f.getBySlugResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) (json.RawMessage, map[string]any) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error map[string]any  `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope.Data, envelope.Error
}

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

const createEventBody = `{
	"title": "Go Meetup Berlin",
	"description": "Monthly Go meetup",
	"overview": "Talks and networking",
	"image": "https://img.example.com/go.png",
	"venue": "c-base",
	"location": "Berlin",
	"date": "April 14, 2026",
	"time": "6:30pm",
	"mode": "in-person",
	"audience": "developers",
	"agenda": ["Doors open"],
	"organizer": "Go Berlin",
	"tags": ["go"]
}`

func TestEventController_CreateEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, newRequest(http.MethodPost, "/events", createEventBody))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "Go Meetup Berlin", svc.lastCreated.Title)

		data, apiErr := decodeEnvelope(t, rec.Body)
		require.Nil(t, apiErr)
		require.Contains(t, string(data), "created-slug")
	})

	t.Run("missing field is a 400", func(t *testing.T) {
		svc := &fakeEventService{createErr: &domain.MissingFieldError{Field: "venue"}}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, newRequest(http.MethodPost, "/events", createEventBody))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		_, apiErr := decodeEnvelope(t, rec.Body)
		require.Equal(t, "bad_request", apiErr["code"])
		require.Contains(t, apiErr["message"], "venue")
	})

	t.Run("invalid time is a 400", func(t *testing.T) {
		svc := &fakeEventService{createErr: domain.ErrInvalidEventTime}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, newRequest(http.MethodPost, "/events", createEventBody))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate slug is a 409", func(t *testing.T) {
		svc := &fakeEventService{createErr: domain.ErrSlugConflict}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, newRequest(http.MethodPost, "/events", createEventBody))

		require.Equal(t, http.StatusConflict, rec.Code)
		_, apiErr := decodeEnvelope(t, rec.Body)
		require.Equal(t, "conflict", apiErr["code"])
	})

	t.Run("unknown json field is a 400", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, newRequest(http.MethodPost, "/events", `{"nope": true}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("ok", func(t *testing.T) {
		svc := &fakeEventService{updateResult: &domain.Event{ID: id, Slug: "new-title"}}
		ctrl := NewEventController(testLogger, svc)

		req := newRequest(http.MethodPatch, "/events/"+id.Hex(), `{"title": "New Title"}`)
		req.SetPathValue("eventID", id.Hex())
		rec := httptest.NewRecorder()
		ctrl.UpdateEvent(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, id, svc.lastUpdateID)
		require.NotNil(t, svc.lastUpdate.Title)
		require.Equal(t, "New Title", *svc.lastUpdate.Title)
		require.Nil(t, svc.lastUpdate.Venue)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})

		req := newRequest(http.MethodPatch, "/events/xyz", `{}`)
		req.SetPathValue("eventID", "xyz")
		rec := httptest.NewRecorder()
		ctrl.UpdateEvent(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown event is a 404", func(t *testing.T) {
		svc := &fakeEventService{updateErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc)

		req := newRequest(http.MethodPatch, "/events/"+id.Hex(), `{}`)
		req.SetPathValue("eventID", id.Hex())
		rec := httptest.NewRecorder()
		ctrl.UpdateEvent(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_GetEventBySlug(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ev := &domain.Event{ID: primitive.NewObjectID(), Slug: "go-conf", Title: "Go Conf"}
		svc := &fakeEventService{getBySlugResult: ev}
		ctrl := NewEventController(testLogger, svc)

		req := newRequest(http.MethodGet, "/events/go-conf", "")
		req.SetPathValue("slug", "go-conf")
		rec := httptest.NewRecorder()
		ctrl.GetEventBySlug(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "go-conf", svc.lastSlug)
	})

	t.Run("missing is a 404", func(t *testing.T) {
		svc := &fakeEventService{getBySlugErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc)

		req := newRequest(http.MethodGet, "/events/nope", "")
		req.SetPathValue("slug", "nope")
		rec := httptest.NewRecorder()
		ctrl.GetEventBySlug(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_ListEvents(t *testing.T) {
	svc := &fakeEventService{listResult: []*domain.Event{
		{ID: primitive.NewObjectID(), Slug: "alpha"},
		{ID: primitive.NewObjectID(), Slug: "beta"},
	}}
	ctrl := NewEventController(testLogger, svc)

	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, newRequest(http.MethodGet, "/events", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	data, apiErr := decodeEnvelope(t, rec.Body)
	require.Nil(t, apiErr)

	var events []*domain.Event
	require.NoError(t, json.Unmarshal(data, &events))
	require.Len(t, events, 2)
}
