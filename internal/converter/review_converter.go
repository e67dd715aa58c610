package converter

import (
	"github.com/google/uuid"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

// ReviewToResponse converts a Review entity to ReviewResponse DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:         review.ID,
		ServiceID:  review.ServiceID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}

	if review.Customer.ID != uuid.Nil {
		response.CustomerName = review.Customer.FullName
	}

	return response
}

// ReviewsToResponses converts a slice of Review entities to ReviewResponse DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}
