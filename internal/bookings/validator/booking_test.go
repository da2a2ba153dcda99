package validator

import (
	"testing"
	"time"

	"stayrate/pkg/logger"
	"stayrate/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}))
}

func daysFromNow(n int) model.Date {
	t := time.Now().UTC().AddDate(0, 0, n)
	return model.NewDate(t.Year(), t.Month(), t.Day())
}

func validBooking() model.Booking {
	return model.Booking{
		RoomID:       1,
		GuestName:    "Alice Smith",
		GuestEmail:   "alice@example.com",
		CheckInDate:  daysFromNow(5),
		CheckOutDate: daysFromNow(8),
		NumGuests:    2,
	}
}

func TestValidate_OK(t *testing.T) {
	v := newTestValidator()
	b := validBooking()
	if err := v.Validate(&b); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain address", "alice@example.com", false},
		{"odd but has at and dot", "a@b.c", false},
		{"missing at", "alice.example.com", true},
		{"missing dot", "alice@examplecom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()
			b := validBooking()
			b.GuestEmail = tt.email
			err := v.Validate(&b)
			if tt.wantErr && err == nil {
				t.Errorf("expected %q to be rejected", tt.email)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected %q to be accepted, got %v", tt.email, err)
			}
		})
	}
}

func TestValidate_DateOrdering(t *testing.T) {
	v := newTestValidator()

	b := validBooking()
	b.CheckInDate = daysFromNow(8)
	b.CheckOutDate = daysFromNow(5)
	if err := v.Validate(&b); err == nil {
		t.Error("expected inverted range to be rejected")
	}

	b = validBooking()
	b.CheckOutDate = b.CheckInDate
	if err := v.Validate(&b); err == nil {
		t.Error("expected zero-night stay to be rejected")
	}
}

func TestValidate_PastCheckIn(t *testing.T) {
	v := newTestValidator()

	b := validBooking()
	b.CheckInDate = daysFromNow(-1)
	b.CheckOutDate = daysFromNow(3)
	if err := v.Validate(&b); err == nil {
		t.Error("expected past check-in to be rejected")
	}

	// Today itself is allowed.
	b = validBooking()
	b.CheckInDate = daysFromNow(0)
	b.CheckOutDate = daysFromNow(2)
	if err := v.Validate(&b); err != nil {
		t.Errorf("expected same-day check-in to be accepted, got %v", err)
	}
}

func TestValidate_StructTags(t *testing.T) {
	v := newTestValidator()

	b := validBooking()
	b.GuestName = "A"
	if err := v.Validate(&b); err == nil {
		t.Error("expected one-letter guest name to be rejected")
	}

	b = validBooking()
	b.NumGuests = 0
	if err := v.Validate(&b); err == nil {
		t.Error("expected zero guests to be rejected")
	}
}
