package config

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/arxbench/internal/speck"
	"github.com/idelchi/gogen/pkg/validator"
)

// registerHexKey adds a custom validator for hex encoded Speck keys.
// It also makes errors report fields by their flag name.
func registerHexKey(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"hexkey",
		validateHexKey,
		"{0} must be a 16-byte hex encoded key",
	); err != nil {
		return fmt.Errorf("registering hexkey validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}

		return name
	})

	return nil
}

// validateHexKey checks that a string is a hex encoded Speck key.
func validateHexKey(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	raw, err := hex.DecodeString(field.String())

	return err == nil && len(raw) == speck.KeySize
}
