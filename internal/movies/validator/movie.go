package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/validation"
)

type MovieValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewMovieValidator(log *logger.Logger) *MovieValidator {
	return &MovieValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *MovieValidator) Validate(movie *model.Movie) error {
	if err := v.validate.Struct(movie); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}

	// The upper bound moves every year, so it cannot live in a struct tag.
	if currentYear := time.Now().Year(); movie.ReleaseYear > currentYear {
		return validation.FieldErrors{
			{Field: "ReleaseYear", Message: fmt.Sprintf("release_year must be at most %d", currentYear)},
		}
	}

	return nil
}
