package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

type TaskValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTaskValidator(log *logger.Logger) *TaskValidator {
	return &TaskValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *TaskValidator) Validate(task *model.Task) error {
	if err := v.validate.Struct(task); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}

	if sanitizer.IsBlank(task.Title) {
		return validation.FieldErrors{
			{Field: "Title", Message: "title must not be blank"},
		}
	}

	return nil
}
