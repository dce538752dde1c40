package services

import (
	"context"
	"errors"
	"testing"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	sendErr     error
	lastTo      string
	lastSubject string
	lastHTML    string
	lastText    string
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	m.lastTo = to
	m.lastSubject = subject
	m.lastHTML = html
	m.lastText = text
	return m.sendErr
}

type mockRenderer struct {
	renderErr error
	lastName  string
}

func (m *mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	m.lastName = templateName
	if m.renderErr != nil {
		return "", "", "", m.renderErr
	}
	return "You're booked!", "<p>html</p>", "text", nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	data := &domain.BookingConfirmationEmailData{
		Email:      "attendee@example.com",
		EventTitle: "Go Conf",
	}

	t.Run("success", func(t *testing.T) {
		mailer := &mockMailer{}
		renderer := &mockRenderer{}
		svc := NewEmailService(mailer, renderer)

		require.NoError(t, svc.SendBookingConfirmation(context.Background(), data))
		require.Equal(t, "booking_confirmation", renderer.lastName)
		require.Equal(t, "attendee@example.com", mailer.lastTo)
		require.Equal(t, "You're booked!", mailer.lastSubject)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{}, &mockRenderer{})
		require.Error(t, svc.SendBookingConfirmation(context.Background(), nil))
	})

	t.Run("render failure", func(t *testing.T) {
		renderer := &mockRenderer{renderErr: errors.New("template missing")}
		svc := NewEmailService(&mockMailer{}, renderer)
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
	})

	t.Run("send failure", func(t *testing.T) {
		mailer := &mockMailer{sendErr: errors.New("ses down")}
		svc := NewEmailService(mailer, &mockRenderer{})
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
	})
}
