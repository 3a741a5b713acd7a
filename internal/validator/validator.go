// Package validator wraps go-playground/validator with the engine's custom
// tags and converts its failures into the shared validation error type.
package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/musicraft-academy/aptitude-service/internal/errors"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

type Validator struct {
	structValidator *validator.Validate
}

// New creates a validator with all custom tags registered.
func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// Validate validates struct tags, returning the shared ValidationErrors type
// on failure.
func (v *Validator) Validate(s any) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(v *validator.Validate) {
	_ = v.RegisterValidation("item_type", validateItemType)
	_ = v.RegisterValidation("band", validateBand)
	_ = v.RegisterValidation("recommended_level", validateRecommendedLevel)
}

func validateItemType(fl validator.FieldLevel) bool {
	value := models.ItemType(fl.Field().String())
	for _, t := range models.AllItemTypes {
		if value == t {
			return true
		}
	}
	return false
}

func validateBand(fl validator.FieldLevel) bool {
	switch models.Band(fl.Field().String()) {
	case models.BandA, models.BandB, models.BandC:
		return true
	}
	return false
}

func validateRecommendedLevel(fl validator.FieldLevel) bool {
	switch models.RecommendedLevel(fl.Field().String()) {
	case models.LevelBeginner, models.LevelEarlyIntermediate, models.LevelIntermediate,
		models.LevelAdvanced, models.LevelMAX:
		return true
	}
	return false
}
