package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxDimensionCm bounds a single manually entered edge. Nothing a parcel
// service accepts comes close; larger values are almost always unit mistakes.
const maxDimensionCm = 1000

// ValidateDimension validates a manually entered edge length in centimeters.
//
// Validation rules:
//   - must be a finite number
//   - must be strictly positive
//   - must not exceed 1000 cm
func ValidateDimension(name string, cm float64) error {
	if math.IsNaN(cm) || math.IsInf(cm, 0) {
		return New(ErrCodeInvalidDimensions, "%s must be a finite number", name)
	}
	if cm <= 0 {
		return New(ErrCodeInvalidDimensions, "%s must be positive, got %v", name, cm)
	}
	if cm > maxDimensionCm {
		return New(ErrCodeInvalidDimensions, "%s too large (max %d cm), got %v", name, maxDimensionCm, cm)
	}
	return nil
}

// ValidateWeight validates a manually entered weight in grams.
func ValidateWeight(grams float64) error {
	if math.IsNaN(grams) || math.IsInf(grams, 0) {
		return New(ErrCodeInvalidDimensions, "weight must be a finite number")
	}
	if grams <= 0 {
		return New(ErrCodeInvalidDimensions, "weight must be positive, got %v", grams)
	}
	return nil
}

// ValidateQuantity validates a requested cart quantity.
func ValidateQuantity(productID string, qty int) error {
	if qty < 0 {
		return New(ErrCodeInvalidQuantity, "quantity for %q cannot be negative", productID)
	}
	return nil
}

// ValidatePath validates an output or input file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
