package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugConflict is returned when a write violates the unique slug index.
	// The conflict is detected by storage, not by the validation pipeline.
	ErrSlugConflict = errors.New("event slug already in use")

	// ErrInvalidAgenda is returned when the agenda is empty or has a blank entry.
	ErrInvalidAgenda = errors.New("event agenda must include at least one entry")

	// ErrInvalidTags is returned when the tag list is empty or has a blank entry.
	ErrInvalidTags = errors.New("event tags must include at least one entry")

	// ErrEmptySlug is returned when a title normalizes to an empty slug.
	ErrEmptySlug = errors.New("event slug cannot be empty")

	// ErrInvalidEventDate is returned for date input that cannot be parsed.
	ErrInvalidEventDate = errors.New("invalid event date")

	// ErrInvalidEventTime is returned for time input that is unparseable or out of range.
	ErrInvalidEventTime = errors.New("invalid event time")
)

// MissingFieldError reports a required event field that is absent or blank
// after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("event %s is required", e.Field)
}

// Event represents a publishable event.
// Date and Time are stored in canonical form only: an ISO calendar date
// (YYYY-MM-DD) and a 24-hour HH:MM string. Raw free-form input never reaches
// storage; the commit pipeline rewrites both before any write.
// swagger:model Event
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Overview    string             `bson:"overview" json:"overview"`
	Image       string             `bson:"image" json:"image"`
	Venue       string             `bson:"venue" json:"venue"`
	Location    string             `bson:"location" json:"location"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Mode        string             `bson:"mode" json:"mode"`
	Audience    string             `bson:"audience" json:"audience"`
	Agenda      []string           `bson:"agenda" json:"agenda"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// EventUpdate carries a partial update for an event. Nil fields are left
// unchanged. The slug is never set directly; it is recomputed by the commit
// pipeline when Title changes.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Organizer   *string
	Agenda      []string
	Tags        []string
}

// EventRepository defines the interface for event storage. Create and Update
// run the event commit pipeline immediately before the write; a pipeline
// failure aborts the commit and nothing is persisted.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id primitive.ObjectID, upd EventUpdate) (*Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// EventService defines organizer-facing operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, id primitive.ObjectID, upd EventUpdate) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
}
