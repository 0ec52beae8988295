package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateAspectRatios checks that every ratio is a positive, finite number.
// The first offending index is reported.
func ValidateAspectRatios(ratios []float64) error {
	for i, r := range ratios {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return New(ErrCodeInvalidInput, "aspect ratio at index %d is not finite: %v", i, r)
		}
		if r <= 0 {
			return New(ErrCodeInvalidInput, "aspect ratio at index %d must be positive, got %v", i, r)
		}
	}
	return nil
}

// ValidateMargin checks that a margin fraction is finite and non-negative.
// Margins too large for any row are not rejected here; that surfaces as
// NO_VALID_PARTITION during the search.
func ValidateMargin(margin float64) error {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return New(ErrCodeInvalidInput, "margin is not finite: %v", margin)
	}
	if margin < 0 {
		return New(ErrCodeInvalidInput, "margin must be non-negative, got %v", margin)
	}
	return nil
}

// ValidateIdealHeight checks that a target row height is positive and finite.
func ValidateIdealHeight(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return New(ErrCodeInvalidInput, "ideal height must be a positive number, got %v", h)
	}
	return nil
}

// ValidateCost checks a value returned by an objective function.
func ValidateCost(cost, height float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return New(ErrCodeInvalidInput, "objective returned non-finite cost %v for height %v", cost, height)
	}
	return nil
}

// ValidatePath validates a gallery file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace")
	}

	return nil
}
