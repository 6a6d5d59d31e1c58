package errors

import (
	"math"
	"regexp"
)

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be finite, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that a physical width, length or radius is
// finite and not negative.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidDimension, "%s must be >= 0, got %g", name, v)
	}
	return nil
}

// ValidatePositive checks that a value is finite and strictly positive.
// Scale factors use this: a zero scale collapses geometry to a point.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidDimension, "%s must be > 0, got %g", name, v)
	}
	return nil
}

// MaxCount bounds repetition counts such as num_rects.
const MaxCount = 10000

// ValidateCount checks that a count lies in [0, MaxCount].
func ValidateCount(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidDimension, "%s must be >= 0, got %d", name, n)
	}
	if n > MaxCount {
		return New(ErrCodeInvalidDimension, "%s must be <= %d, got %d", name, MaxCount, n)
	}
	return nil
}

// ValidateDerived checks a dimension computed from other parameters. The
// formula is included in the message so the user can see which inputs to
// change.
func ValidateDerived(name, formula string, v float64) error {
	if v < 0 {
		return New(ErrCodeNegativeDerived, "%s (%s) is negative: %g", name, formula, v)
	}
	return nil
}

// identifierRegex matches layer, mark, option and component names.
var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateIdentifier checks that a declared name is a lower_snake_case
// identifier. Names end up in file names, GDS structure names and URLs.
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "%s name too long (max 64 characters): %q", kind, name)
	}
	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid %s name: %q", kind, name)
	}
	return nil
}
