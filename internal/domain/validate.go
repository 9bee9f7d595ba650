package domain

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validators take raw, already-JSON-deserialized values and return the
// normalized Go value, or a *ValidationError naming the offending field.
// They are pure: no storage access, no cross-entity checks.
//
// JSON deserialization produces float64 for every number and bool for
// booleans. A bool must never satisfy a numeric check, so the numeric
// validators reject bool explicitly before anything else.

// emailRegex requires a local part, exactly one '@' (enforced separately
// for a clearer message), and a dot-separated domain.
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidateName validates a first or last name: string, trimmed,
// non-empty, at most 50 characters.
func ValidateName(value any, field string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError(field, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError(field, "is required")
	}
	if utf8.RuneCountInString(s) > 50 {
		return "", newConstraintError(field, "must be at most 50 characters")
	}
	return s, nil
}

// ValidateEmail validates and normalizes an email address: trimmed,
// lower-cased, exactly one '@', dot-separated domain.
func ValidateEmail(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError("Email", "must be a string")
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", newConstraintError("Email", "is required")
	}
	if strings.Count(s, "@") != 1 {
		return "", newConstraintError("Email", "must contain exactly one '@'")
	}
	if !emailRegex.MatchString(s) {
		return "", newConstraintError("Email", "has an invalid format")
	}
	return s, nil
}

// ValidateTitle validates a listing title: string, trimmed, non-empty,
// at most 100 characters.
func ValidateTitle(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError("Title", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError("Title", "is required")
	}
	if utf8.RuneCountInString(s) > 100 {
		return "", newConstraintError("Title", "must be at most 100 characters")
	}
	return s, nil
}

// ValidateDescription validates a listing description: string, trimmed,
// non-empty.
func ValidateDescription(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError("Description", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError("Description", "is required")
	}
	return s, nil
}

// ValidatePrice validates a price: numeric, strictly positive.
func ValidatePrice(value any) (float64, error) {
	f, err := toFloat(value, "Price")
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, newConstraintError("Price", "must be a positive number")
	}
	return f, nil
}

// ValidateLatitude validates a latitude in [-90, 90].
func ValidateLatitude(value any) (float64, error) {
	f, err := toFloat(value, "Latitude")
	if err != nil {
		return 0, err
	}
	if f < -90 || f > 90 {
		return 0, newConstraintError("Latitude", "must be between -90 and 90")
	}
	return f, nil
}

// ValidateLongitude validates a longitude in [-180, 180].
func ValidateLongitude(value any) (float64, error) {
	f, err := toFloat(value, "Longitude")
	if err != nil {
		return 0, err
	}
	if f < -180 || f > 180 {
		return 0, newConstraintError("Longitude", "must be between -180 and 180")
	}
	return f, nil
}

// ValidateReviewText validates review text: string, trimmed, non-empty,
// at most 500 characters.
func ValidateReviewText(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError("Text", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError("Text", "is required")
	}
	if utf8.RuneCountInString(s) > 500 {
		return "", newConstraintError("Text", "must be at most 500 characters")
	}
	return s, nil
}

// ValidateRating validates a rating: integer, between 1 and 5 inclusive.
// A fractional number is a constraint violation, not a type mismatch:
// JSON has no integer type, so 4.5 arrives as a well-typed number that
// happens to be out of shape.
func ValidateRating(value any) (int, error) {
	switch v := value.(type) {
	case bool:
		return 0, newTypeError("Rating", "must be an integer")
	case int:
		if v < 1 || v > 5 {
			return 0, newConstraintError("Rating", "must be between 1 and 5")
		}
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, newConstraintError("Rating", "must be a whole number")
		}
		n := int(v)
		if n < 1 || n > 5 {
			return 0, newConstraintError("Rating", "must be between 1 and 5")
		}
		return n, nil
	default:
		return 0, newTypeError("Rating", "must be an integer")
	}
}

// ValidateAmenityName validates an amenity name: string, trimmed,
// non-empty, at most 50 characters.
func ValidateAmenityName(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError("Name", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError("Name", "is required")
	}
	if utf8.RuneCountInString(s) > 50 {
		return "", newConstraintError("Name", "must be at most 50 characters")
	}
	return s, nil
}

// ValidateID validates an opaque entity id reference: non-empty string.
func ValidateID(value any, field string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", newTypeError(field, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newConstraintError(field, "is required")
	}
	return s, nil
}

// ValidateIDList validates a list of entity id references.
func ValidateIDList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, newTypeError(field, "must be a list of strings")
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return nil, newTypeError(field, "must be a list")
	}
}

// toFloat coerces a raw value to float64, rejecting bool explicitly.
// Some runtimes treat booleans as integers; Go's JSON decoding does not,
// but the guard is part of the validator contract and covers callers
// that construct payload maps by hand.
func toFloat(value any, field string) (float64, error) {
	switch v := value.(type) {
	case bool:
		return 0, newTypeError(field, "must be a number")
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, newTypeError(field, "must be a number")
	}
}
