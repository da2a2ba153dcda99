package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	bookingserrors "stayrate/internal/bookings/errors"
	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/validation"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}

	// The email rule has always been this loose: an "@" and a dot.
	if !strings.Contains(booking.GuestEmail, "@") || !strings.Contains(booking.GuestEmail, ".") {
		return validation.FieldErrors{
			{Field: "GuestEmail", Message: "invalid email format"},
		}
	}

	if !booking.CheckOutDate.After(booking.CheckInDate.Time) {
		return validation.FieldErrors{
			{Field: "CheckOutDate", Message: bookingserrors.ErrInvalidDateRange.Error()},
		}
	}

	if booking.CheckInDate.Before(model.Today().Time) {
		return validation.FieldErrors{
			{Field: "CheckInDate", Message: "check-in date cannot be in the past"},
		}
	}

	return nil
}
