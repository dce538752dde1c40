package pipeline

import (
	"context"
	"errors"
	"testing"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEventExistence implements EventExistence and records whether the
// lookup was attempted.
type fakeEventExistence struct {
	exists bool
	err    error
	called bool
}

func (f *fakeEventExistence) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.called = true
	return f.exists, f.err
}

func TestBookingPipeline_FoldsEmail(t *testing.T) {
	events := &fakeEventExistence{exists: true}
	b := domain.NewBooking(primitive.NewObjectID(), "  Attendee@Example.COM ")

	require.NoError(t, NewBooking(events).Run(context.Background(), b))
	require.Equal(t, "attendee@example.com", b.Email)
	require.True(t, events.called)
}

func TestBookingPipeline_EmailShape(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "a@b.co"},
		{name: "subdomain", email: "user@mail.example.org"},
		{name: "no at sign", email: "not-an-email", wantErr: true},
		{name: "no dot in domain", email: "user@localhost", wantErr: true},
		{name: "whitespace in local part", email: "a b@c.d", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakeEventExistence{exists: true}
			b := domain.NewBooking(primitive.NewObjectID(), tt.email)

			err := NewBooking(events).Run(context.Background(), b)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidBookingEmail)
				return
			}
			require.NoError(t, err)
		})
	}
}

// The email shape check must run before the existence lookup: an invalid
// address never reaches storage.
func TestBookingPipeline_EmailCheckPrecedesExistence(t *testing.T) {
	events := &fakeEventExistence{exists: true}
	b := domain.NewBooking(primitive.NewObjectID(), "not-an-email")

	err := NewBooking(events).Run(context.Background(), b)

	require.ErrorIs(t, err, domain.ErrInvalidBookingEmail)
	require.False(t, events.called)
}

func TestBookingPipeline_MissingEvent(t *testing.T) {
	events := &fakeEventExistence{exists: false}
	b := domain.NewBooking(primitive.NewObjectID(), "attendee@example.com")

	err := NewBooking(events).Run(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrMissingEvent)
}

func TestBookingPipeline_ExistenceLookupError(t *testing.T) {
	lookupErr := errors.New("connection reset")
	events := &fakeEventExistence{err: lookupErr}
	b := domain.NewBooking(primitive.NewObjectID(), "attendee@example.com")

	err := NewBooking(events).Run(context.Background(), b)
	require.ErrorIs(t, err, lookupErr)
}
