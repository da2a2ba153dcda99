package service

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingsrepo "stayrate/internal/bookings/repository"
	bookingsservice "stayrate/internal/bookings/service"
	bookingsvalidator "stayrate/internal/bookings/validator"
	roomserrors "stayrate/internal/rooms/errors"
	roomsrepo "stayrate/internal/rooms/repository"
	"stayrate/internal/rooms/validator"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
}

func daysFromNow(n int) model.Date {
	t := time.Now().UTC().AddDate(0, 0, n)
	return model.NewDate(t.Year(), t.Month(), t.Day())
}

func testRoom(id int, number string) model.Room {
	return model.Room{
		ID:            id,
		RoomNumber:    number,
		RoomType:      model.RoomTypeDouble,
		PricePerNight: 100.0,
		Capacity:      2,
		IsAvailable:   true,
		Description:   "A comfortable double room",
	}
}

func testBooking(id, roomID int, status model.BookingStatus) model.Booking {
	return model.Booking{
		ID:           id,
		RoomID:       roomID,
		GuestName:    "Alice Smith",
		GuestEmail:   "alice@example.com",
		CheckInDate:  daysFromNow(5),
		CheckOutDate: daysFromNow(8),
		NumGuests:    2,
		Status:       status,
	}
}

func newTestService(rooms []model.Room, bookings []model.Booking) (RoomService, *storage.MemStore[model.Booking]) {
	cfg := testConfig()
	roomStore := storage.NewMemStore[model.Room](rooms...)
	bookingStore := storage.NewMemStore[model.Booking](bookings...)

	roomRepo := roomsrepo.NewRoomRepository(roomStore)
	bookingRepo := bookingsrepo.NewBookingRepository(bookingStore)

	bookingSvc := bookingsservice.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	svc := NewRoomService(roomRepo, bookingRepo, bookingSvc, validator.NewRoomValidator(cfg.Log), cfg)
	return svc, bookingStore
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func TestDeleteRoom_CancelsActiveBookings(t *testing.T) {
	bookings := []model.Booking{
		testBooking(1, 1, model.BookingStatusPending),
		testBooking(2, 1, model.BookingStatusConfirmed),
		testBooking(3, 1, model.BookingStatusCancelled),
		testBooking(4, 2, model.BookingStatusConfirmed),
	}
	svc, store := newTestService([]model.Room{testRoom(1, "101"), testRoom(2, "102")}, bookings)

	_, cancelled, err := svc.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if cancelled != 2 {
		t.Errorf("expected 2 bookings cancelled, got %d", cancelled)
	}

	for _, b := range store.Items {
		switch b.ID {
		case 1, 2, 3:
			if b.Status != model.BookingStatusCancelled {
				t.Errorf("booking %d: expected cancelled, got %s", b.ID, b.Status)
			}
		case 4:
			if b.Status != model.BookingStatusConfirmed {
				t.Errorf("booking %d on another room should be untouched, got %s", b.ID, b.Status)
			}
		}
	}

	// Bookings survive as records; nothing is hard-deleted.
	if len(store.Items) != 4 {
		t.Errorf("expected all 4 bookings retained, got %d", len(store.Items))
	}
}

func TestDeleteRoom_NotFound(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	_, _, err := svc.Delete(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error for missing room")
	}
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestCreateRoom_DuplicateNumberRejected(t *testing.T) {
	svc, _ := newTestService([]model.Room{testRoom(1, "101")}, nil)

	room := testRoom(0, "101")
	err := svc.Create(context.Background(), &room)
	if err == nil {
		t.Fatal("expected conflict for duplicate room number")
	}
	assertCode(t, err, apperrors.CodeConflict)

	var appErr *apperrors.AppError
	errors.As(err, &appErr)
	if appErr.Message != roomserrors.ErrDuplicateNumber.Error() {
		t.Errorf("expected duplicate number message, got %q", appErr.Message)
	}
}

func TestUpdateRoom_KeepingOwnNumberAllowed(t *testing.T) {
	svc, _ := newTestService([]model.Room{testRoom(1, "101")}, nil)

	room := testRoom(1, "101")
	room.PricePerNight = 150.0
	updated, err := svc.Update(context.Background(), 1, &room)
	if err != nil {
		t.Fatalf("expected update keeping its own number to succeed, got %v", err)
	}
	if updated.PricePerNight != 150.0 {
		t.Errorf("expected price 150, got %.2f", updated.PricePerNight)
	}
}

func TestCheckAvailability(t *testing.T) {
	unavailable := testRoom(3, "103")
	unavailable.IsAvailable = false

	booked := testBooking(1, 2, model.BookingStatusConfirmed)
	booked.CheckInDate = daysFromNow(5)
	booked.CheckOutDate = daysFromNow(10)

	svc, _ := newTestService(
		[]model.Room{testRoom(1, "101"), testRoom(2, "102"), unavailable},
		[]model.Booking{booked},
	)

	available, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		CheckIn:  daysFromNow(6),
		CheckOut: daysFromNow(9),
	})
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}

	if len(available) != 1 {
		t.Fatalf("expected exactly room 1 available, got %d rooms", len(available))
	}
	if available[0].ID != 1 {
		t.Errorf("expected room 1, got %d", available[0].ID)
	}
	if available[0].Nights != 3 {
		t.Errorf("expected 3 nights, got %d", available[0].Nights)
	}
	if available[0].TotalPriceForStay != 300.0 {
		t.Errorf("expected total price 300, got %.2f", available[0].TotalPriceForStay)
	}
}

func TestCheckAvailability_InvalidRange(t *testing.T) {
	svc, _ := newTestService([]model.Room{testRoom(1, "101")}, nil)

	_, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		CheckIn:  daysFromNow(8),
		CheckOut: daysFromNow(5),
	})
	if err == nil {
		t.Fatal("expected error for inverted date range")
	}
	assertCode(t, err, apperrors.CodeInvalidInput)
}

func TestStats(t *testing.T) {
	unavailable := testRoom(2, "102")
	unavailable.IsAvailable = false
	unavailable.RoomType = model.RoomTypeSuite

	confirmed := testBooking(1, 1, model.BookingStatusConfirmed)
	confirmed.TotalPrice = 300.5
	pending := testBooking(2, 1, model.BookingStatusPending)
	pending.TotalPrice = 1000
	cancelled := testBooking(3, 1, model.BookingStatusCancelled)
	cancelled.TotalPrice = 500

	svc, _ := newTestService(
		[]model.Room{testRoom(1, "101"), unavailable},
		[]model.Booking{confirmed, pending, cancelled},
	)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalRooms != 2 {
		t.Errorf("expected 2 rooms, got %d", stats.TotalRooms)
	}
	if stats.AvailableRooms != 1 {
		t.Errorf("expected 1 available room, got %d", stats.AvailableRooms)
	}
	if stats.TotalBookings != 3 {
		t.Errorf("expected 3 bookings, got %d", stats.TotalBookings)
	}
	if stats.TotalRevenue != 300.5 {
		t.Errorf("expected revenue 300.5 from the confirmed booking only, got %.2f", stats.TotalRevenue)
	}
	if stats.RoomTypeDistribution[model.RoomTypeDouble] != 1 || stats.RoomTypeDistribution[model.RoomTypeSuite] != 1 {
		t.Errorf("unexpected room type distribution: %v", stats.RoomTypeDistribution)
	}
	if stats.BookingStatusDistribution[model.BookingStatusCancelled] != 1 {
		t.Errorf("unexpected status distribution: %v", stats.BookingStatusDistribution)
	}
}

func TestGetRoomBookings_FilterByStatus(t *testing.T) {
	bookings := []model.Booking{
		testBooking(1, 1, model.BookingStatusPending),
		testBooking(2, 1, model.BookingStatusConfirmed),
		testBooking(3, 2, model.BookingStatusConfirmed),
	}
	svc, _ := newTestService([]model.Room{testRoom(1, "101"), testRoom(2, "102")}, bookings)

	confirmed := model.BookingStatusConfirmed
	result, err := svc.GetRoomBookings(context.Background(), 1, BookingsQuery{Status: &confirmed})
	if err != nil {
		t.Fatalf("GetRoomBookings failed: %v", err)
	}
	if len(result) != 1 || result[0].ID != 2 {
		t.Errorf("expected only booking 2, got %v", result)
	}
}
