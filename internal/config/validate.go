package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// minCallTimeout keeps a typo like "30ms" from failing every request.
const minCallTimeout = time.Second

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their TOML key, which is what users type.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}()

// Validate checks all configuration values and returns all errors found,
// so users can fix every problem in one pass.
func Validate(cfg *Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}

		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if _, err := parseDuration("call_timeout", cfg.CallTimeout, minCallTimeout); err != nil {
		errs = append(errs, err)
	}

	if _, err := parseDuration("transfer_timeout", cfg.TransferTimeout, 0); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	if fe.Tag() == "oneof" {
		return fmt.Errorf("%s: must be one of %s; got %q",
			fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	}

	return fmt.Errorf("%s: failed %q check; got %q", fe.Field(), fe.Tag(), fe.Value())
}

// parseDuration parses a config duration. "0" and "" mean no timeout. Any
// non-zero value must be at least minimum.
func parseDuration(field, value string, minimum time.Duration) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%s: must be >= 0, got %s", field, d)
	}

	if d != 0 && d < minimum {
		return 0, fmt.Errorf("%s: must be 0 or >= %s, got %s", field, minimum, d)
	}

	return d, nil
}
