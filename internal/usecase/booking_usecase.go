package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/converter"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/repository"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/clock"
)

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrNotBookingParticipant   = errors.New("booking does not belong to you")
	ErrServiceProviderMismatch = errors.New("service does not belong to this provider")
	ErrBookingInPast           = errors.New("bookings must be in the future")
	ErrBeyondBookingHorizon    = errors.New("date is beyond the provider's advance booking window")
	ErrInvalidTimeSlot         = errors.New("invalid time slot, expected H:MM AM/PM")
	ErrSlotNotOffered          = errors.New("time slot is not offered on this date")
	ErrSlotTaken               = errors.New("time slot is already booked")
	ErrBookingTerminal         = errors.New("completed or cancelled bookings cannot be changed")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, actorID uuid.UUID) (*dto.BookingListResponse, error)
	UpdateBookingStatus(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) error
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	serviceRepo  repository.ServiceRepository
	scheduleRepo repository.ScheduleRepository
	slotCache    *service.SlotCache
	auditService service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	scheduleRepo repository.ScheduleRepository,
	slotCache *service.SlotCache,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

// CreateBooking validates a booking request in a fixed order so concurrent
// callers racing for one slot always fail for the same reason. The application
// level slot check is only a fast path; the real guarantee is the partial
// unique index over active bookings, surfaced here as ErrSlotTaken.
func (u *bookingUsecase) CreateBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	customerID := actorID
	if req.CustomerID != uuid.Nil && req.CustomerID != actorID {
		if actorRoleID != entity.RoleIDAdmin {
			return nil, ErrNotBookingParticipant
		}
		customerID = req.CustomerID
	}

	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil || !svc.IsActive {
		return nil, ErrServiceNotFound
	}
	if svc.ProviderID != req.ProviderID {
		return nil, ErrServiceProviderMismatch
	}

	day, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	timeSlot, err := clock.Normalize(req.TimeSlot)
	if err != nil {
		return nil, ErrInvalidTimeSlot
	}
	slotMinutes, _ := clock.Parse(timeSlot)

	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotConfigured
	}

	loc := schedule.Location()
	today := todayIn(loc)
	if day.Before(today) {
		return nil, ErrBookingInPast
	}
	if day.After(today.AddDate(0, 0, schedule.AdvanceBookingDays)) {
		return nil, ErrBeyondBookingHorizon
	}
	// Same-day bookings must still start after the current wall-clock time.
	if day.Equal(today) {
		slotStart := clock.At(day, slotMinutes, loc)
		if !slotStart.After(time.Now()) {
			return nil, ErrBookingInPast
		}
	}

	generated, err := service.GenerateSlots(schedule, day)
	if err != nil {
		u.log.Warnf("Failed to generate slots for provider %s: %+v", req.ProviderID, err)
		return nil, err
	}
	if !slotOffered(generated.Slots, timeSlot) {
		return nil, ErrSlotNotOffered
	}

	existing, err := u.bookingRepo.FindActiveSlot(u.db.WithContext(ctx), req.ProviderID, day, timeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	booking := &entity.Booking{
		ServiceID:   req.ServiceID,
		CustomerID:  customerID,
		ProviderID:  req.ProviderID,
		BookingDate: day,
		TimeSlot:    timeSlot,
		Status:      entity.BookingStatusPending,
	}

	if err := u.bookingRepo.Create(u.db.WithContext(ctx), booking); err != nil {
		// A concurrent request won the slot between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err, "idx_bookings_active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDate(ctx, req.ProviderID, day.Format(dateLayout))
	_ = u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &actorID, "booking.create", "booking", booking.ID.String(), booking)

	created, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload booking: %+v", err)
		return converter.BookingToResponse(booking), nil
	}
	return converter.BookingToResponse(created), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if err := canAccessBooking(booking, actorID, actorRoleID); err != nil {
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetMyBookings(ctx context.Context, actorID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByCustomerID(u.db.WithContext(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) UpdateBookingStatus(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if err := canAccessBooking(booking, actorID, actorRoleID); err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, ErrBookingTerminal
	}

	oldStatus := booking.Status
	newStatus := entity.BookingStatus(req.Status)
	if newStatus == oldStatus {
		return converter.BookingToResponse(booking), nil
	}

	if err := u.bookingRepo.UpdateStatus(u.db.WithContext(ctx), bookingID, newStatus); err != nil {
		u.log.Warnf("Failed to update booking status: %+v", err)
		return nil, err
	}

	// Leaving an active status frees the slot for other customers.
	if booking.IsActive() && (newStatus == entity.BookingStatusCancelled || newStatus == entity.BookingStatusCompleted) {
		u.slotCache.InvalidateDate(ctx, booking.ProviderID, booking.BookingDate.Format(dateLayout))
	}

	_ = u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actorID, "booking.status", "booking", bookingID.String(), string(oldStatus), string(newStatus))

	booking.Status = newStatus
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) DeleteBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) error {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.CustomerID != actorID && actorRoleID != entity.RoleIDAdmin {
		return ErrNotBookingParticipant
	}

	rows, err := u.bookingRepo.Delete(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to delete booking: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	if booking.IsActive() {
		u.slotCache.InvalidateDate(ctx, booking.ProviderID, booking.BookingDate.Format(dateLayout))
	}
	_ = u.auditService.LogDelete(ctx, u.db.WithContext(ctx), &actorID, "booking.delete", "booking", bookingID.String(), booking)

	return nil
}

func canAccessBooking(booking *entity.Booking, actorID uuid.UUID, actorRoleID int) error {
	if booking.CustomerID == actorID || booking.ProviderID == actorID || actorRoleID == entity.RoleIDAdmin {
		return nil
	}
	return ErrNotBookingParticipant
}

func slotOffered(slots []entity.Slot, timeSlot string) bool {
	for _, slot := range slots {
		if slot.StartTime == timeSlot {
			return slot.Available
		}
	}
	return false
}
