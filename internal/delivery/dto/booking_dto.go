package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	ServiceID  uuid.UUID `json:"service_id" validate:"required"`
	ProviderID uuid.UUID `json:"provider_id" validate:"required"`
	// CustomerID may be set by an admin booking on a customer's behalf;
	// otherwise it defaults to the authenticated user.
	CustomerID  uuid.UUID `json:"customer_id" validate:"omitempty"`
	BookingDate string    `json:"booking_date" validate:"required"` // Format: YYYY-MM-DD
	TimeSlot    string    `json:"time_slot" validate:"required"`    // Format: H:MM AM/PM
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Response DTOs

type BookingResponse struct {
	ID          uuid.UUID        `json:"id"`
	ServiceID   uuid.UUID        `json:"service_id"`
	CustomerID  uuid.UUID        `json:"customer_id"`
	ProviderID  uuid.UUID        `json:"provider_id"`
	BookingDate string           `json:"booking_date"`
	TimeSlot    string           `json:"time_slot"`
	Status      string           `json:"status"`
	Service     *ServiceResponse `json:"service,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
