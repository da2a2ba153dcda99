package model

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// CountsTowardRevenue reports whether a booking in this status contributes
// to the revenue statistic.
func (s BookingStatus) CountsTowardRevenue() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut:
		return true
	case BookingStatusPending, BookingStatusCancelled:
		return false
	}
	return false
}

type Booking struct {
	ID              int           `json:"id"`
	RoomID          int           `json:"room_id" validate:"required,gt=0"`
	GuestName       string        `json:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail      string        `json:"guest_email" validate:"required,min=5,max=100"`
	CheckInDate     Date          `json:"check_in_date" validate:"required"`
	CheckOutDate    Date          `json:"check_out_date" validate:"required"`
	NumGuests       int           `json:"num_guests" validate:"required,min=1,max=10"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	CreatedAt       time.Time     `json:"created_at"`
	SpecialRequests string        `json:"special_requests,omitempty" validate:"omitempty,max=500"`
}
