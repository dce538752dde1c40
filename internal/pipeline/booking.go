package pipeline

import (
	"context"
	"regexp"
	"strings"

	"eventdeck/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailShape matches local@domain: non-whitespace local part, non-whitespace
// domain containing a dot.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EventExistence answers whether an event id refers to a stored event. The
// booking pipeline uses it for the referential check; it is the only step
// that touches storage.
type EventExistence interface {
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// BookingStep validates or rewrites a booking candidate.
type BookingStep func(ctx context.Context, b *domain.Booking) error

// Booking is the ordered commit pipeline for booking records. The email
// checks always run before the event existence lookup.
type Booking struct {
	steps []BookingStep
}

// NewBooking returns the booking pipeline bound to the given existence checker.
func NewBooking(events EventExistence) *Booking {
	return &Booking{steps: []BookingStep{
		foldEmail,
		emailFormat,
		eventExists(events),
	}}
}

// Run executes every step in order, stopping at the first failure.
func (p *Booking) Run(ctx context.Context, b *domain.Booking) error {
	for _, step := range p.steps {
		if err := step(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// foldEmail trims and lowercases the address so the shape check and the
// stored value always see the folded form.
func foldEmail(_ context.Context, b *domain.Booking) error {
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	return nil
}

func emailFormat(_ context.Context, b *domain.Booking) error {
	if !emailShape.MatchString(b.Email) {
		return domain.ErrInvalidBookingEmail
	}
	return nil
}

func eventExists(events EventExistence) BookingStep {
	return func(ctx context.Context, b *domain.Booking) error {
		ok, err := events.ExistsByID(ctx, b.EventID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMissingEvent
		}
		return nil
	}
}
