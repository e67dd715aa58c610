package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/converter"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/repository"
)

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this service")
	ErrOwnServiceReview = errors.New("providers cannot review their own services")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, serviceID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListReviews(ctx context.Context, serviceID uuid.UUID) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	reviewRepo  repository.ReviewRepository
	serviceRepo repository.ServiceRepository
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	serviceRepo repository.ServiceRepository,
) ReviewUsecase {
	return &reviewUsecase{
		db:          db,
		log:         log,
		reviewRepo:  reviewRepo,
		serviceRepo: serviceRepo,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, customerID uuid.UUID, serviceID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if svc.ProviderID == customerID {
		return nil, ErrOwnServiceReview
	}

	existing, err := u.reviewRepo.FindByCustomerAndService(u.db.WithContext(ctx), customerID, serviceID)
	if err != nil {
		u.log.Warnf("Failed to check existing review: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		ServiceID:  serviceID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := u.reviewRepo.Create(u.db.WithContext(ctx), review); err != nil {
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListReviews(ctx context.Context, serviceID uuid.UUID) (*dto.ReviewListResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	reviews, err := u.reviewRepo.FindByServiceID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to list reviews: %+v", err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}
