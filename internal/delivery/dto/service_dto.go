package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=255"`
	Description     string          `json:"description" validate:"max=5000"`
	Category        string          `json:"category" validate:"max=100"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gte=15,lte=480"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Description     *string          `json:"description" validate:"omitempty,max=5000"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,gte=15,lte=480"`
	IsActive        *bool            `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProviderID      uuid.UUID       `json:"provider_id"`
	ProviderName    string          `json:"provider_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
