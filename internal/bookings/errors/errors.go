package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrRoomNotAvailable = errors.New("room not available for the selected dates")

	ErrCapacityExceeded = errors.New("number of guests exceeds room capacity")

	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
)
