package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

type RoomValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRoomValidator(log *logger.Logger) *RoomValidator {
	return &RoomValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *RoomValidator) Validate(room *model.Room) error {
	if err := v.validate.Struct(room); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}

	if sanitizer.IsBlank(room.RoomNumber) {
		return validation.FieldErrors{
			{Field: "RoomNumber", Message: "room_number cannot be empty or only whitespace"},
		}
	}
	if sanitizer.IsBlank(room.Description) {
		return validation.FieldErrors{
			{Field: "Description", Message: "description cannot be empty or only whitespace"},
		}
	}

	return nil
}
