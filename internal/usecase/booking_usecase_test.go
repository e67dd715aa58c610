package usecase

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/repository"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
)

type bookingFixture struct {
	db       *gorm.DB
	uc       BookingUsecase
	provider *entity.User
	customer *entity.User
	service  *entity.Service
}

// newBookingFixture builds a provider with a workday schedule for tomorrow's
// weekday, a bookable service and one customer.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	bookingRepo := repository.NewBookingRepository()
	serviceRepo := repository.NewServiceRepository()
	scheduleRepo := repository.NewScheduleRepository()
	userRepo := repository.NewUserRepository()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())

	provider := createUser(t, db, entity.RoleIDProvider, "provider@example.com")
	customer := createUser(t, db, entity.RoleIDCustomer, "customer@example.com")
	svc := createService(t, db, provider.ID)

	availabilityUC := NewAvailabilityUsecase(db, log, scheduleRepo, bookingRepo, userRepo, nil, auditService)
	_, err := availabilityUC.SetSchedule(context.Background(), provider.ID, entity.RoleIDProvider, provider.ID,
		&dto.SetScheduleRequest{WeeklyRules: workdayRules(int(tomorrowUTC().Weekday()))})
	if err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}

	return &bookingFixture{
		db:       db,
		uc:       NewBookingUsecase(db, log, bookingRepo, serviceRepo, scheduleRepo, nil, auditService),
		provider: provider,
		customer: customer,
		service:  svc,
	}
}

func (f *bookingFixture) request(timeSlot string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		ServiceID:   f.service.ID,
		ProviderID:  f.provider.ID,
		BookingDate: tomorrowUTC().Format("2006-01-02"),
		TimeSlot:    timeSlot,
	}
}

func (f *bookingFixture) book(t *testing.T, timeSlot string) *dto.BookingResponse {
	t.Helper()

	booking, err := f.uc.CreateBooking(context.Background(), f.customer.ID, entity.RoleIDCustomer, f.request(timeSlot))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return booking
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)

	booking := f.book(t, "10:00 am")

	if booking.Status != string(entity.BookingStatusPending) {
		t.Errorf("status = %q, want pending", booking.Status)
	}
	if booking.TimeSlot != "10:00 AM" {
		t.Errorf("time slot = %q, want normalized 10:00 AM", booking.TimeSlot)
	}
	if booking.CustomerID != f.customer.ID {
		t.Errorf("customer = %s, want %s", booking.CustomerID, f.customer.ID)
	}
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t, "10:00 AM")

	other := createUser(t, f.db, entity.RoleIDCustomer, "other@example.com")
	_, err := f.uc.CreateBooking(context.Background(), other.ID, entity.RoleIDCustomer, f.request("10:00 AM"))
	if err != ErrSlotTaken {
		t.Errorf("err = %v, want ErrSlotTaken", err)
	}
}

func TestCreateBooking_UniqueIndexBacksTheSlotCheck(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t, "10:00 AM")

	// Bypass the application-level check and insert directly, simulating a
	// concurrent request that passed the check before the first insert landed.
	other := createUser(t, f.db, entity.RoleIDCustomer, "other@example.com")
	duplicate := &entity.Booking{
		ServiceID:   f.service.ID,
		CustomerID:  other.ID,
		ProviderID:  f.provider.ID,
		BookingDate: tomorrowUTC(),
		TimeSlot:    "10:00 AM",
		Status:      entity.BookingStatusPending,
	}
	err := f.db.Create(duplicate).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("direct duplicate insert: err = %v, want ErrDuplicatedKey", err)
	}
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.book(t, "10:00 AM")

	_, err := f.uc.UpdateBookingStatus(context.Background(), f.customer.ID, entity.RoleIDCustomer, booking.ID,
		&dto.UpdateBookingStatusRequest{Status: "cancelled"})
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	other := createUser(t, f.db, entity.RoleIDCustomer, "other@example.com")
	if _, err := f.uc.CreateBooking(context.Background(), other.ID, entity.RoleIDCustomer, f.request("10:00 AM")); err != nil {
		t.Errorf("rebooking a cancelled slot failed: %v", err)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	tomorrow := tomorrowUTC()

	otherProvider := createUser(t, f.db, entity.RoleIDProvider, "other-provider@example.com")

	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr error
	}{
		{
			name:    "unknown service",
			mutate:  func(req *dto.CreateBookingRequest) { req.ServiceID = f.customer.ID },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service belongs to another provider",
			mutate:  func(req *dto.CreateBookingRequest) { req.ProviderID = otherProvider.ID },
			wantErr: ErrServiceProviderMismatch,
		},
		{
			name:    "malformed date",
			mutate:  func(req *dto.CreateBookingRequest) { req.BookingDate = "25-12-2025" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "malformed time slot",
			mutate:  func(req *dto.CreateBookingRequest) { req.TimeSlot = "25:00" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "date in the past",
			mutate:  func(req *dto.CreateBookingRequest) { req.BookingDate = tomorrow.AddDate(0, 0, -5).Format("2006-01-02") },
			wantErr: ErrBookingInPast,
		},
		{
			name:    "date beyond horizon",
			mutate:  func(req *dto.CreateBookingRequest) { req.BookingDate = tomorrow.AddDate(0, 0, 60).Format("2006-01-02") },
			wantErr: ErrBeyondBookingHorizon,
		},
		{
			name:    "slot not on the grid",
			mutate:  func(req *dto.CreateBookingRequest) { req.TimeSlot = "9:30 AM" },
			wantErr: ErrSlotNotOffered,
		},
		{
			name:    "slot outside the window",
			mutate:  func(req *dto.CreateBookingRequest) { req.TimeSlot = "8:00 PM" },
			wantErr: ErrSlotNotOffered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("10:00 AM")
			tt.mutate(req)
			_, err := f.uc.CreateBooking(ctx, f.customer.ID, entity.RoleIDCustomer, req)
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBooking_NoScheduleConfigured(t *testing.T) {
	db := newTestDB(t)
	log := testLogger()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	uc := NewBookingUsecase(db, log, repository.NewBookingRepository(), repository.NewServiceRepository(), repository.NewScheduleRepository(), nil, auditService)

	provider := createUser(t, db, entity.RoleIDProvider, "provider@example.com")
	customer := createUser(t, db, entity.RoleIDCustomer, "customer@example.com")
	svc := createService(t, db, provider.ID)

	_, err := uc.CreateBooking(context.Background(), customer.ID, entity.RoleIDCustomer, &dto.CreateBookingRequest{
		ServiceID:   svc.ID,
		ProviderID:  provider.ID,
		BookingDate: tomorrowUTC().Format("2006-01-02"),
		TimeSlot:    "10:00 AM",
	})
	if err != ErrScheduleNotConfigured {
		t.Errorf("err = %v, want ErrScheduleNotConfigured", err)
	}
}

func TestCreateBooking_AdminBooksOnBehalfOfCustomer(t *testing.T) {
	f := newBookingFixture(t)
	admin := createUser(t, f.db, entity.RoleIDAdmin, "admin@example.com")

	req := f.request("11:00 AM")
	req.CustomerID = f.customer.ID

	booking, err := f.uc.CreateBooking(context.Background(), admin.ID, entity.RoleIDAdmin, req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.CustomerID != f.customer.ID {
		t.Errorf("customer = %s, want %s", booking.CustomerID, f.customer.ID)
	}

	// Customers cannot do the same for someone else.
	other := createUser(t, f.db, entity.RoleIDCustomer, "other@example.com")
	req2 := f.request("12:00 PM")
	req2.CustomerID = f.customer.ID
	if _, err := f.uc.CreateBooking(context.Background(), other.ID, entity.RoleIDCustomer, req2); err != ErrNotBookingParticipant {
		t.Errorf("err = %v, want ErrNotBookingParticipant", err)
	}
}

func TestUpdateBookingStatus_Transitions(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.book(t, "10:00 AM")
	ctx := context.Background()

	// Provider confirms.
	confirmed, err := f.uc.UpdateBookingStatus(ctx, f.provider.ID, entity.RoleIDProvider, booking.ID,
		&dto.UpdateBookingStatusRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}

	// Provider completes.
	completed, err := f.uc.UpdateBookingStatus(ctx, f.provider.ID, entity.RoleIDProvider, booking.ID,
		&dto.UpdateBookingStatusRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != "completed" {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Completed is terminal.
	_, err = f.uc.UpdateBookingStatus(ctx, f.customer.ID, entity.RoleIDCustomer, booking.ID,
		&dto.UpdateBookingStatusRequest{Status: "cancelled"})
	if err != ErrBookingTerminal {
		t.Errorf("err = %v, want ErrBookingTerminal", err)
	}
}

func TestUpdateBookingStatus_ForbiddenForStrangers(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.book(t, "10:00 AM")

	stranger := createUser(t, f.db, entity.RoleIDCustomer, "stranger@example.com")
	_, err := f.uc.UpdateBookingStatus(context.Background(), stranger.ID, entity.RoleIDCustomer, booking.ID,
		&dto.UpdateBookingStatusRequest{Status: "cancelled"})
	if err != ErrNotBookingParticipant {
		t.Errorf("err = %v, want ErrNotBookingParticipant", err)
	}
}

func TestGetMyBookings(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t, "10:00 AM")
	f.book(t, "11:00 AM")

	list, err := f.uc.GetMyBookings(context.Background(), f.customer.ID)
	if err != nil {
		t.Fatalf("GetMyBookings: %v", err)
	}
	if list.Total != 2 || len(list.Bookings) != 2 {
		t.Errorf("got %d bookings, want 2", list.Total)
	}
}

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.book(t, "10:00 AM")
	ctx := context.Background()

	stranger := createUser(t, f.db, entity.RoleIDCustomer, "stranger@example.com")
	if err := f.uc.DeleteBooking(ctx, stranger.ID, entity.RoleIDCustomer, booking.ID); err != ErrNotBookingParticipant {
		t.Errorf("stranger delete: err = %v, want ErrNotBookingParticipant", err)
	}

	if err := f.uc.DeleteBooking(ctx, f.customer.ID, entity.RoleIDCustomer, booking.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	if _, err := f.uc.GetBooking(ctx, f.customer.ID, entity.RoleIDCustomer, booking.ID); err != ErrBookingNotFound {
		t.Errorf("GetBooking after delete: err = %v, want ErrBookingNotFound", err)
	}
}
