package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseDecimal converts a clean decimal string after trimming whitespace.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// ToDecimal parses a number out of messy spreadsheet text. Comma decimal
// separators, currency symbols and surrounding text are tolerated; the first
// numeric run wins. Returns nil when no number is present.
func ToDecimal(value string) *decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	// "3,90 €" -> "3.90 €" before extracting the numeric run
	cleaned := strings.ReplaceAll(value, ",", ".")
	match := numberPattern.FindString(cleaned)
	if match == "" {
		return nil
	}

	dec, err := decimal.NewFromString(match)
	if err != nil {
		return nil
	}
	return &dec
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}
