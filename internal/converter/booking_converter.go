package converter

import (
	"github.com/google/uuid"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:          booking.ID,
		ServiceID:   booking.ServiceID,
		CustomerID:  booking.CustomerID,
		ProviderID:  booking.ProviderID,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		TimeSlot:    booking.TimeSlot,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	if booking.Service.ID != uuid.Nil {
		response.Service = ServiceToResponse(&booking.Service)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
