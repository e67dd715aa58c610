package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/infrastructure/database"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/repository"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createUser(t *testing.T, db *gorm.DB, roleID int, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		RoleID:   roleID,
		Email:    email,
		Password: "hashed",
		FullName: "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createService(t *testing.T, db *gorm.DB, providerID uuid.UUID) *entity.Service {
	t.Helper()

	svc := &entity.Service{
		ProviderID:      providerID,
		Name:            "Deep Cleaning",
		Category:        "cleaning",
		Price:           decimal.NewFromInt(50),
		DurationMinutes: 60,
		IsActive:        true,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

// tomorrowUTC returns tomorrow's calendar date at midnight UTC, safely inside
// the default booking horizon.
func tomorrowUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

func workdayRules(dayOfWeek int) []dto.DayRuleRequest {
	return []dto.DayRuleRequest{{
		DayOfWeek:           dayOfWeek,
		Enabled:             true,
		StartTime:           "09:00 AM",
		EndTime:             "5:00 PM",
		SlotDurationMinutes: 60,
	}}
}

type availabilityFixture struct {
	db       *gorm.DB
	uc       AvailabilityUsecase
	provider *entity.User
	customer *entity.User
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	scheduleRepo := repository.NewScheduleRepository()
	bookingRepo := repository.NewBookingRepository()
	userRepo := repository.NewUserRepository()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())

	uc := NewAvailabilityUsecase(db, log, scheduleRepo, bookingRepo, userRepo, nil, auditService)

	return &availabilityFixture{
		db:       db,
		uc:       uc,
		provider: createUser(t, db, entity.RoleIDProvider, "provider@example.com"),
		customer: createUser(t, db, entity.RoleIDCustomer, "customer@example.com"),
	}
}

func (f *availabilityFixture) setSchedule(t *testing.T, req *dto.SetScheduleRequest) *dto.ScheduleResponse {
	t.Helper()

	resp, err := f.uc.SetSchedule(context.Background(), f.provider.ID, entity.RoleIDProvider, f.provider.ID, req)
	if err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	return resp
}

func TestSetSchedule_CreatesWithNormalizedTimes(t *testing.T) {
	f := newAvailabilityFixture(t)

	resp := f.setSchedule(t, &dto.SetScheduleRequest{
		WeeklyRules: []dto.DayRuleRequest{{
			DayOfWeek:           1,
			Enabled:             true,
			StartTime:           "09:00 am",
			EndTime:             "05:00 pm",
			SlotDurationMinutes: 60,
		}},
		Timezone:           "Asia/Bahrain",
		AdvanceBookingDays: 14,
	})

	if resp.Timezone != "Asia/Bahrain" {
		t.Errorf("timezone = %q, want Asia/Bahrain", resp.Timezone)
	}
	if resp.AdvanceBookingDays != 14 {
		t.Errorf("advance_booking_days = %d, want 14", resp.AdvanceBookingDays)
	}
	if len(resp.WeeklyRules) != 1 {
		t.Fatalf("got %d rules, want 1", len(resp.WeeklyRules))
	}
	if resp.WeeklyRules[0].StartTime != "9:00 AM" || resp.WeeklyRules[0].EndTime != "5:00 PM" {
		t.Errorf("times not normalized: %q - %q", resp.WeeklyRules[0].StartTime, resp.WeeklyRules[0].EndTime)
	}
}

func TestSetSchedule_ReplacesExistingRules(t *testing.T) {
	f := newAvailabilityFixture(t)

	f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(1)})
	resp := f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(3)})

	if len(resp.WeeklyRules) != 1 {
		t.Fatalf("got %d rules, want 1", len(resp.WeeklyRules))
	}
	if resp.WeeklyRules[0].DayOfWeek != 3 {
		t.Errorf("day_of_week = %d, want 3", resp.WeeklyRules[0].DayOfWeek)
	}
}

func TestSetSchedule_Validation(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *dto.SetScheduleRequest
		wantErr error
	}{
		{
			name: "end before start",
			req: &dto.SetScheduleRequest{WeeklyRules: []dto.DayRuleRequest{{
				DayOfWeek: 1, Enabled: true, StartTime: "5:00 PM", EndTime: "9:00 AM", SlotDurationMinutes: 60,
			}}},
			wantErr: ErrInvalidRuleWindow,
		},
		{
			name: "slot longer than window",
			req: &dto.SetScheduleRequest{WeeklyRules: []dto.DayRuleRequest{{
				DayOfWeek: 1, Enabled: true, StartTime: "9:00 AM", EndTime: "10:00 AM", SlotDurationMinutes: 90,
			}}},
			wantErr: ErrSlotExceedsWindow,
		},
		{
			name: "break end before break start",
			req: &dto.SetScheduleRequest{WeeklyRules: []dto.DayRuleRequest{{
				DayOfWeek: 1, Enabled: true, StartTime: "9:00 AM", EndTime: "5:00 PM", SlotDurationMinutes: 60,
				Breaks: []dto.BreakRequest{{StartTime: "1:00 PM", EndTime: "12:00 PM"}},
			}}},
			wantErr: ErrInvalidBreakWindow,
		},
		{
			name: "duplicate exception dates",
			req: &dto.SetScheduleRequest{
				WeeklyRules: workdayRules(1),
				Exceptions: []dto.DateExceptionRequest{
					{Date: "2025-12-25", IsAvailable: false},
					{Date: "2025-12-25", IsAvailable: true},
				},
			},
			wantErr: ErrDuplicateException,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.SetSchedule(ctx, f.provider.ID, entity.RoleIDProvider, f.provider.ID, tt.req)
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetSchedule_ForbiddenForOtherUsers(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.uc.SetSchedule(context.Background(), f.customer.ID, entity.RoleIDCustomer, f.provider.ID,
		&dto.SetScheduleRequest{WeeklyRules: workdayRules(1)})
	if err != ErrNotScheduleOwner {
		t.Errorf("err = %v, want ErrNotScheduleOwner", err)
	}
}

func TestSetSchedule_AdminCanManageAnySchedule(t *testing.T) {
	f := newAvailabilityFixture(t)
	admin := createUser(t, f.db, entity.RoleIDAdmin, "admin@example.com")

	_, err := f.uc.SetSchedule(context.Background(), admin.ID, entity.RoleIDAdmin, f.provider.ID,
		&dto.SetScheduleRequest{WeeklyRules: workdayRules(1)})
	if err != nil {
		t.Errorf("admin SetSchedule failed: %v", err)
	}
}

func TestPatchSchedule_UpdatesOnlyProvidedSections(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(1), Timezone: "UTC"})

	tz := "Europe/London"
	resp, err := f.uc.PatchSchedule(context.Background(), f.provider.ID, entity.RoleIDProvider, f.provider.ID,
		&dto.PatchScheduleRequest{Timezone: &tz})
	if err != nil {
		t.Fatalf("PatchSchedule: %v", err)
	}

	if resp.Timezone != "Europe/London" {
		t.Errorf("timezone = %q, want Europe/London", resp.Timezone)
	}
	if len(resp.WeeklyRules) != 1 || resp.WeeklyRules[0].DayOfWeek != 1 {
		t.Errorf("weekly rules were disturbed by a settings-only patch: %+v", resp.WeeklyRules)
	}
}

func TestPatchSchedule_NotFound(t *testing.T) {
	f := newAvailabilityFixture(t)

	tz := "UTC"
	_, err := f.uc.PatchSchedule(context.Background(), f.provider.ID, entity.RoleIDProvider, f.provider.ID,
		&dto.PatchScheduleRequest{Timezone: &tz})
	if err != ErrScheduleNotFound {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(1)})

	if err := f.uc.DeleteSchedule(context.Background(), f.provider.ID, entity.RoleIDProvider, f.provider.ID); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}

	if _, err := f.uc.GetSchedule(context.Background(), f.provider.ID); err != ErrScheduleNotFound {
		t.Errorf("GetSchedule after delete: err = %v, want ErrScheduleNotFound", err)
	}
}

func TestGetSlots_ReturnsFullGrid(t *testing.T) {
	f := newAvailabilityFixture(t)
	tomorrow := tomorrowUTC()
	f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(int(tomorrow.Weekday()))})

	resp, err := f.uc.GetSlots(context.Background(), f.provider.ID, tomorrow.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}

	if len(resp.Slots) != 8 {
		t.Fatalf("got %d slots, want 8", len(resp.Slots))
	}
	if resp.Slots[0].StartTime != "9:00 AM" || resp.Slots[7].StartTime != "4:00 PM" {
		t.Errorf("unexpected grid boundaries: first %q last %q", resp.Slots[0].StartTime, resp.Slots[7].StartTime)
	}
	if resp.WindowStart != "9:00 AM" || resp.WindowEnd != "5:00 PM" {
		t.Errorf("window = %q - %q, want 9:00 AM - 5:00 PM", resp.WindowStart, resp.WindowEnd)
	}
	for _, slot := range resp.Slots {
		if !slot.Available {
			t.Errorf("slot %s unexpectedly unavailable", slot.StartTime)
		}
	}
}

func TestGetSlots_MarksBookedSlotsUnavailable(t *testing.T) {
	f := newAvailabilityFixture(t)
	tomorrow := tomorrowUTC()
	f.setSchedule(t, &dto.SetScheduleRequest{WeeklyRules: workdayRules(int(tomorrow.Weekday()))})

	svc := createService(t, f.db, f.provider.ID)
	booking := &entity.Booking{
		ServiceID:   svc.ID,
		CustomerID:  f.customer.ID,
		ProviderID:  f.provider.ID,
		BookingDate: tomorrow,
		TimeSlot:    "10:00 AM",
		Status:      entity.BookingStatusConfirmed,
	}
	if err := f.db.Create(booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	resp, err := f.uc.GetSlots(context.Background(), f.provider.ID, tomorrow.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}

	for _, slot := range resp.Slots {
		wantAvailable := slot.StartTime != "10:00 AM"
		if slot.Available != wantAvailable {
			t.Errorf("slot %s available = %v, want %v", slot.StartTime, slot.Available, wantAvailable)
		}
	}
}

func TestGetSlots_BlockedExceptionYieldsEmptyDay(t *testing.T) {
	f := newAvailabilityFixture(t)
	tomorrow := tomorrowUTC()
	f.setSchedule(t, &dto.SetScheduleRequest{
		WeeklyRules: workdayRules(int(tomorrow.Weekday())),
		Exceptions: []dto.DateExceptionRequest{{
			Date:        tomorrow.Format("2006-01-02"),
			IsAvailable: false,
			Reason:      "Public holiday",
		}},
	})

	resp, err := f.uc.GetSlots(context.Background(), f.provider.ID, tomorrow.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}

	if len(resp.Slots) != 0 {
		t.Errorf("got %d slots on a blocked day, want 0", len(resp.Slots))
	}
	if resp.Message != "Public holiday" {
		t.Errorf("message = %q, want the exception reason", resp.Message)
	}
}

func TestGetSlots_DateGuards(t *testing.T) {
	f := newAvailabilityFixture(t)
	tomorrow := tomorrowUTC()
	f.setSchedule(t, &dto.SetScheduleRequest{
		WeeklyRules:        workdayRules(int(tomorrow.Weekday())),
		AdvanceBookingDays: 7,
	})
	ctx := context.Background()

	past, err := f.uc.GetSlots(ctx, f.provider.ID, tomorrow.AddDate(0, 0, -3).Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetSlots past date: %v", err)
	}
	if len(past.Slots) != 0 || past.Message == "" {
		t.Errorf("past date: slots = %d, message = %q; want empty with message", len(past.Slots), past.Message)
	}

	far, err := f.uc.GetSlots(ctx, f.provider.ID, tomorrow.AddDate(0, 0, 30).Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetSlots beyond horizon: %v", err)
	}
	if len(far.Slots) != 0 || far.Message == "" {
		t.Errorf("beyond horizon: slots = %d, message = %q; want empty with message", len(far.Slots), far.Message)
	}

	if _, err := f.uc.GetSlots(ctx, f.provider.ID, "not-a-date"); err != ErrInvalidDate {
		t.Errorf("invalid date: err = %v, want ErrInvalidDate", err)
	}
}

func TestGetSlots_NoScheduleConfigured(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.uc.GetSlots(context.Background(), f.provider.ID, tomorrowUTC().Format("2006-01-02"))
	if err != ErrScheduleNotConfigured {
		t.Errorf("err = %v, want ErrScheduleNotConfigured", err)
	}
}
