package converter

import (
	"github.com/google/uuid"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	response := &dto.ServiceResponse{
		ID:              service.ID,
		ProviderID:      service.ProviderID,
		Name:            service.Name,
		Description:     service.Description,
		Category:        service.Category,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
		IsActive:        service.IsActive,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}

	if service.Provider.ID != uuid.Nil {
		response.ProviderName = service.Provider.FullName
	}

	return response
}

// ServicesToResponses converts a slice of Service entities to ServiceResponse DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}
