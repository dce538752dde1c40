package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventdeck/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be backed by
// the noop mailer; confirmation email failures never fail the booking.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Email shape and the referenced-event check run in the repository's
	// commit pipeline.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrInvalidBookingEmail) || errors.Is(err, domain.ErrMissingEvent) {
			return err
		}
		return fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking)
	return nil
}

// sendConfirmation emails the attendee after a committed booking. Best
// effort: failures are logged, the booking stands.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", booking.ID.Hex(), "err", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation failed", "booking_id", booking.ID.Hex(), "err", err)
	}
}

func (s *bookingService) ListBookingsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}
