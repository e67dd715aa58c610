package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	domainRepo "github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/repository"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.Preload("Customer").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByCustomerAndService(db *gorm.DB, customerID, serviceID uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.Where("customer_id = ? AND service_id = ?", customerID, serviceID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}
