package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/usecase"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/response"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/validator"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), actorID, actorRoleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrScheduleNotConfigured:
			response.NotFound(w, "Provider has not configured a schedule")
		case usecase.ErrNotBookingParticipant:
			response.Forbidden(w, "You cannot book on behalf of another customer")
		case usecase.ErrServiceProviderMismatch,
			usecase.ErrInvalidDate,
			usecase.ErrInvalidTimeSlot,
			usecase.ErrBookingInPast,
			usecase.ErrBeyondBookingHorizon:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrSlotNotOffered:
			response.Error(w, http.StatusConflict, "Time slot is not offered on this date", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "Time slot is already booked", nil)
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), actorID, actorRoleID, bookingID)
	if err != nil {
		h.writeBookingError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookingUsecase.GetMyBookings(r.Context(), actorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBookingStatus(r.Context(), actorID, actorRoleID, bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err, "Failed to update booking status")
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	err := h.bookingUsecase.DeleteBooking(r.Context(), actorID, actorRoleID, bookingID)
	if err != nil {
		h.writeBookingError(w, err, "Failed to delete booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrNotBookingParticipant:
		response.Forbidden(w, "You don't have permission to access this booking")
	case usecase.ErrBookingTerminal:
		response.Error(w, http.StatusConflict, "Completed or cancelled bookings cannot be changed", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseBookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return uuid.Nil, false
	}
	return bookingID, true
}
