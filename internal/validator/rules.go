package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"shelter_backend/internal/models"
)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag %q: %v", tag, err)
		}
	}

	mustRegister("is-animal-status", validateAnimalStatus)
	mustRegister("is-gender", validateGender)
}

func validateAnimalStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by 'required'
	}
	switch models.AnimalStatus(value) {
	case models.AnimalAvailable, models.AnimalAdoption, models.AnimalAdopted:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "male", "female", "unknown":
		return true
	default:
		return false
	}
}
