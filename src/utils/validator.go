package utils

import (
	"Quiznator-Backend/src/models"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that also understands the "quiztype" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("quiztype", func(fl validator.FieldLevel) bool {
		return models.QuizType(fl.Field().String()).Valid()
	})
	return v
}
