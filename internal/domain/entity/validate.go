package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func requireString(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return invalid(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}

func validateEmail(email string) error {
	if err := requireString("email", email, 255); err != nil {
		return err
	}
	if err := validate.Var(email, "email"); err != nil {
		return invalid("email", "must be a valid email")
	}
	return nil
}

func validatePrice(price float64) error {
	if !(price > 0) {
		return invalid("price", "must be positive")
	}
	return nil
}

func validateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return invalid("latitude", "must be within -90.0 to 90.0")
	}
	return nil
}

func validateLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return invalid("longitude", "must be within -180.0 to 180.0")
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return invalid("rating", "must be between 1 and 5")
	}
	return nil
}
