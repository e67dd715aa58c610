package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/converter"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/repository"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/clock"
)

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleNotConfigured = errors.New("provider has not configured a schedule")
	ErrNotScheduleOwner      = errors.New("only the provider or an admin can manage this schedule")
	ErrProviderNotFound      = errors.New("provider not found")
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRuleWindow     = errors.New("rule start time must be before end time")
	ErrSlotExceedsWindow     = errors.New("slot duration does not fit the day window")
	ErrInvalidBreakWindow    = errors.New("break start time must be before end time")
	ErrDuplicateException    = errors.New("multiple exceptions for the same date")
)

const dateLayout = "2006-01-02"

type AvailabilityUsecase interface {
	GetSchedule(ctx context.Context, providerID uuid.UUID) (*dto.ScheduleResponse, error)
	SetSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error)
	PatchSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID, req *dto.PatchScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID) error
	GetSlots(ctx context.Context, providerID uuid.UUID, date string) (*dto.SlotDayResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	slotCache    *service.SlotCache
	auditService service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	slotCache *service.SlotCache,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

func (u *availabilityUsecase) GetSchedule(ctx context.Context, providerID uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *availabilityUsecase) SetSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := canManageSchedule(actorID, actorRoleID, providerID); err != nil {
		return nil, err
	}

	provider, err := u.userRepo.FindByID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil || !provider.IsProvider() {
		return nil, ErrProviderNotFound
	}

	rules, err := buildRules(req.WeeklyRules)
	if err != nil {
		return nil, err
	}
	exceptions, err := buildExceptions(req.Exceptions)
	if err != nil {
		return nil, err
	}

	var scheduleID uuid.UUID
	created := false

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		schedule, err := u.scheduleRepo.FindByProviderID(tx, providerID)
		if err != nil {
			return err
		}

		if schedule == nil {
			created = true
			schedule = &entity.ProviderSchedule{
				ProviderID:         providerID,
				Timezone:           "UTC",
				AdvanceBookingDays: 30,
			}
			applyScheduleSettings(schedule, req.Timezone, req.AdvanceBookingDays)
			if err := u.scheduleRepo.Create(tx, schedule); err != nil {
				return err
			}
		} else {
			applyScheduleSettings(schedule, req.Timezone, req.AdvanceBookingDays)
			if err := u.scheduleRepo.Save(tx, schedule); err != nil {
				return err
			}
		}

		scheduleID = schedule.ID

		if err := u.scheduleRepo.ReplaceWeeklyRules(tx, schedule.ID, rules); err != nil {
			return err
		}
		return u.scheduleRepo.ReplaceExceptions(tx, schedule.ID, exceptions)
	})
	if err != nil {
		u.log.Warnf("Failed to set schedule: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateProvider(ctx, providerID)

	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil || schedule == nil {
		u.log.Warnf("Failed to reload schedule: %+v", err)
		return nil, err
	}

	if created {
		_ = u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &actorID, "schedule.create", "provider_schedule", scheduleID.String(), schedule)
	} else {
		_ = u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actorID, "schedule.replace", "provider_schedule", scheduleID.String(), nil, schedule)
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *availabilityUsecase) PatchSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID, req *dto.PatchScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := canManageSchedule(actorID, actorRoleID, providerID); err != nil {
		return nil, err
	}

	var rules []entity.AvailabilityRule
	if req.WeeklyRules != nil {
		var err error
		rules, err = buildRules(*req.WeeklyRules)
		if err != nil {
			return nil, err
		}
	}
	var exceptions []entity.DateException
	if req.Exceptions != nil {
		var err error
		exceptions, err = buildExceptions(*req.Exceptions)
		if err != nil {
			return nil, err
		}
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		schedule, err := u.scheduleRepo.FindByProviderID(tx, providerID)
		if err != nil {
			return err
		}
		if schedule == nil {
			return ErrScheduleNotFound
		}

		if req.Timezone != nil {
			schedule.Timezone = *req.Timezone
		}
		if req.AdvanceBookingDays != nil {
			schedule.AdvanceBookingDays = *req.AdvanceBookingDays
		}
		if err := u.scheduleRepo.Save(tx, schedule); err != nil {
			return err
		}

		if req.WeeklyRules != nil {
			if err := u.scheduleRepo.ReplaceWeeklyRules(tx, schedule.ID, rules); err != nil {
				return err
			}
		}
		if req.Exceptions != nil {
			if err := u.scheduleRepo.ReplaceExceptions(tx, schedule.ID, exceptions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrScheduleNotFound) {
			u.log.Warnf("Failed to patch schedule: %+v", err)
		}
		return nil, err
	}

	u.slotCache.InvalidateProvider(ctx, providerID)

	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil || schedule == nil {
		u.log.Warnf("Failed to reload schedule: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actorID, "schedule.patch", "provider_schedule", schedule.ID.String(), nil, schedule)

	return converter.ScheduleToResponse(schedule), nil
}

func (u *availabilityUsecase) DeleteSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, providerID uuid.UUID) error {
	if err := canManageSchedule(actorID, actorRoleID, providerID); err != nil {
		return err
	}

	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	rows, err := u.scheduleRepo.Delete(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}

	u.slotCache.InvalidateProvider(ctx, providerID)
	_ = u.auditService.LogDelete(ctx, u.db.WithContext(ctx), &actorID, "schedule.delete", "provider_schedule", schedule.ID.String(), schedule)

	return nil
}

func (u *availabilityUsecase) GetSlots(ctx context.Context, providerID uuid.UUID, date string) (*dto.SlotDayResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dateKey := day.Format(dateLayout)

	if snapshot := u.slotCache.Get(ctx, providerID, dateKey); snapshot != nil {
		return converter.SlotSnapshotToResponse(providerID, snapshot), nil
	}

	schedule, err := u.scheduleRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotConfigured
	}

	snapshot := &service.SlotDaySnapshot{
		Date:     dateKey,
		Timezone: schedule.Timezone,
		Slots:    []entity.Slot{},
	}

	today := todayIn(schedule.Location())
	switch {
	case day.Before(today):
		snapshot.Message = "Date is in the past"
	case day.After(today.AddDate(0, 0, schedule.AdvanceBookingDays)):
		snapshot.Message = fmt.Sprintf("Bookings can only be made up to %d days in advance", schedule.AdvanceBookingDays)
	default:
		generated, err := service.GenerateSlots(schedule, day)
		if err != nil {
			u.log.Warnf("Failed to generate slots for provider %s: %+v", providerID, err)
			return nil, err
		}

		snapshot.Slots = generated.Slots
		snapshot.Message = generated.Message
		if generated.Window != nil {
			snapshot.WindowStart = clock.Format(generated.Window.Start)
			snapshot.WindowEnd = clock.Format(generated.Window.End)
		}

		if len(generated.Slots) > 0 {
			if err := u.overlayBookings(ctx, providerID, day, snapshot.Slots); err != nil {
				return nil, err
			}
		}
	}

	u.slotCache.Set(ctx, providerID, dateKey, snapshot)

	return converter.SlotSnapshotToResponse(providerID, snapshot), nil
}

// overlayBookings marks slots whose start time is held by a pending or
// confirmed booking as unavailable.
func (u *availabilityUsecase) overlayBookings(ctx context.Context, providerID uuid.UUID, day time.Time, slots []entity.Slot) error {
	bookings, err := u.bookingRepo.FindActiveByProviderAndDate(u.db.WithContext(ctx), providerID, day)
	if err != nil {
		u.log.Warnf("Failed to load bookings for provider %s: %+v", providerID, err)
		return err
	}
	if len(bookings) == 0 {
		return nil
	}

	taken := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		taken[booking.TimeSlot] = true
	}
	for i := range slots {
		if taken[slots[i].StartTime] {
			slots[i].Available = false
		}
	}
	return nil
}

func canManageSchedule(actorID uuid.UUID, actorRoleID int, providerID uuid.UUID) error {
	if actorID == providerID || actorRoleID == entity.RoleIDAdmin {
		return nil
	}
	return ErrNotScheduleOwner
}

func applyScheduleSettings(schedule *entity.ProviderSchedule, timezone string, advanceBookingDays int) {
	if timezone != "" {
		schedule.Timezone = timezone
	}
	if advanceBookingDays > 0 {
		schedule.AdvanceBookingDays = advanceBookingDays
	}
}

// buildRules converts rule requests to entities, normalizing every time of day
// to the canonical "h:mm AM" form and rejecting windows no slot can fit in.
func buildRules(reqs []dto.DayRuleRequest) ([]entity.AvailabilityRule, error) {
	rules := make([]entity.AvailabilityRule, 0, len(reqs))
	for _, req := range reqs {
		start, err := clock.Parse(req.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := clock.Parse(req.EndTime)
		if err != nil {
			return nil, err
		}
		if end <= start {
			return nil, ErrInvalidRuleWindow
		}
		if req.SlotDurationMinutes > end-start {
			return nil, ErrSlotExceedsWindow
		}

		breaks := make([]entity.BreakInterval, 0, len(req.Breaks))
		for _, b := range req.Breaks {
			bStart, err := clock.Parse(b.StartTime)
			if err != nil {
				return nil, err
			}
			bEnd, err := clock.Parse(b.EndTime)
			if err != nil {
				return nil, err
			}
			if bEnd <= bStart {
				return nil, ErrInvalidBreakWindow
			}
			breaks = append(breaks, entity.BreakInterval{
				StartTime: clock.Format(bStart),
				EndTime:   clock.Format(bEnd),
			})
		}

		rules = append(rules, entity.AvailabilityRule{
			DayOfWeek:           req.DayOfWeek,
			Enabled:             req.Enabled,
			StartTime:           clock.Format(start),
			EndTime:             clock.Format(end),
			SlotDurationMinutes: req.SlotDurationMinutes,
			BufferMinutes:       req.BufferMinutes,
			Breaks:              datatypes.NewJSONSlice(breaks),
		})
	}
	return rules, nil
}

func buildExceptions(reqs []dto.DateExceptionRequest) ([]entity.DateException, error) {
	exceptions := make([]entity.DateException, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		day, err := parseDate(req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		key := day.Format(dateLayout)
		if seen[key] {
			return nil, ErrDuplicateException
		}
		seen[key] = true

		exc := entity.DateException{
			Date:        day,
			IsAvailable: req.IsAvailable,
			Reason:      req.Reason,
		}
		if req.CustomStartTime != nil {
			normalized, err := clock.Normalize(*req.CustomStartTime)
			if err != nil {
				return nil, err
			}
			exc.CustomStartTime = &normalized
		}
		if req.CustomEndTime != nil {
			normalized, err := clock.Normalize(*req.CustomEndTime)
			if err != nil {
				return nil, err
			}
			exc.CustomEndTime = &normalized
		}
		if exc.CustomStartTime != nil && exc.CustomEndTime != nil {
			start, _ := clock.Parse(*exc.CustomStartTime)
			end, _ := clock.Parse(*exc.CustomEndTime)
			if end <= start {
				return nil, ErrInvalidRuleWindow
			}
		}
		exceptions = append(exceptions, exc)
	}
	return exceptions, nil
}

// parseDate parses a YYYY-MM-DD string to midnight UTC, the canonical storage
// form for calendar dates.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// todayIn returns the current calendar date in the given zone, represented at
// midnight UTC so it compares directly with stored dates.
func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
