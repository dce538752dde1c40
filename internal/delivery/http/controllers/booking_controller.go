package controllers

import (
	"log/slog"
	"net/http"

	"eventdeck/internal/delivery/http/helpers"
	"eventdeck/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
// The email shape check and the referenced-event check run in the commit
// pipeline, in that order.
type CreateBookingRequest struct {
	Email string `json:"email"`
}

// BookingSuccessResponse is the success envelope for single-booking responses.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingListSuccessResponse is the success envelope for GET /events/{eventID}/bookings (200).
type BookingListSuccessResponse struct {
	Data  []*domain.Booking `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Creates a booking for the event. The attendee email is trimmed and lowercased before validation; the booking is rejected when the event does not exist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (ObjectID hex)"
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (missing event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseObjectID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	booking := domain.NewBooking(eventID, req.Email)
	if err := c.Service.CreateBooking(r.Context(), booking); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Param eventID path string true "Event ID (ObjectID hex)"
// @Success 200 {object} controllers.BookingListSuccessResponse "data contains the bookings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseObjectID(w, r, "eventID")
	if !ok {
		return
	}
	bookings, err := c.Service.ListBookingsForEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}
