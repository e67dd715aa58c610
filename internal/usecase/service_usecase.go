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
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrNotServiceOwner = errors.New("only the owning provider or an admin can modify this service")
)

type ServiceUsecase interface {
	CreateService(ctx context.Context, providerID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context, filter *repository.ServiceFilter) (*dto.ServiceListResponse, error)
	UpdateService(ctx context.Context, actorID uuid.UUID, actorRoleID int, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, actorID uuid.UUID, actorRoleID int, serviceID uuid.UUID) error
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) CreateService(ctx context.Context, providerID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &entity.Service{
		ProviderID:      providerID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := u.serviceRepo.Create(u.db.WithContext(ctx), svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &providerID, "service.create", "service", svc.ID.String(), svc)

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetService(ctx context.Context, serviceID uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) ListServices(ctx context.Context, filter *repository.ServiceFilter) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) UpdateService(ctx context.Context, actorID uuid.UUID, actorRoleID int, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if svc.ProviderID != actorID && actorRoleID != entity.RoleIDAdmin {
		return nil, ErrNotServiceOwner
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := u.serviceRepo.Update(u.db.WithContext(ctx), svc); err != nil {
		u.log.Warnf("Failed to update service: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actorID, "service.update", "service", svc.ID.String(), nil, svc)

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) DeleteService(ctx context.Context, actorID uuid.UUID, actorRoleID int, serviceID uuid.UUID) error {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}
	if svc.ProviderID != actorID && actorRoleID != entity.RoleIDAdmin {
		return ErrNotServiceOwner
	}

	rows, err := u.serviceRepo.Delete(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to delete service: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrServiceNotFound
	}

	_ = u.auditService.LogDelete(ctx, u.db.WithContext(ctx), &actorID, "service.delete", "service", serviceID.String(), svc)

	return nil
}
