package common

import (
	"fmt"
	"strings"
)

// RequireArgs checks that at least n arguments were supplied.
// desc names the missing argument in the error; an empty desc yields the
// generic "missing arguments" message used by multi-argument commands.
func RequireArgs(args []string, n int, desc string) error {
	if len(args) >= n {
		for _, arg := range args[:n] {
			if strings.TrimSpace(arg) == "" {
				return missingArgs(desc)
			}
		}
		return nil
	}
	return missingArgs(desc)
}

func missingArgs(desc string) error {
	if desc == "" {
		return &UsageError{Msg: "missing arguments"}
	}
	return &UsageError{Msg: fmt.Sprintf("missing %s argument", desc)}
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ValidateOneOf validates that value is one of the allowed choices (case-insensitive)
func ValidateOneOf(value string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (allowed: %s)", value, strings.Join(allowed, ", "))
}

// ValidatePositive validates that n is greater than zero
func ValidatePositive(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", name, n)
	}
	return nil
}
