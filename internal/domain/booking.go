package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidBookingEmail is returned when the attendee email fails the
	// local@domain shape check.
	ErrInvalidBookingEmail = errors.New("invalid booking email address")

	// ErrMissingEvent is returned when a booking references an event that does
	// not exist at commit time.
	ErrMissingEvent = errors.New("cannot create booking for a missing event")
)

// Booking represents one attendee's reservation for one event. Email is
// stored trimmed and lowercased. The referenced event must exist at commit
// time; deleting an event does not cascade to its bookings.
// swagger:model Booking
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"event_id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewBooking returns a booking candidate for the given event and email.
// ID and timestamps are set by the repository on create.
func NewBooking(eventID primitive.ObjectID, email string) *Booking {
	return &Booking{
		EventID: eventID,
		Email:   email,
	}
}

// BookingRepository defines the interface for booking storage. Create runs
// the booking commit pipeline (email shape, then referenced-event existence)
// immediately before the write.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*Booking, error)
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	ListBookingsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Booking, error)
}
