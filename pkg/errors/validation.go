package errors

import (
	"math"
	"strings"
	"unicode"
)

// NoneViewName is the catalog label reserved for "no view".
const NoneViewName = "none"

// ValidateViewName checks a name under which a view type is registered.
//
// Rules:
//   - not empty, at most 64 characters
//   - no control characters or whitespace
//   - not the reserved label "none"
func ValidateViewName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidViewType, "view name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidViewType, "view name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidViewType, "view name %q contains whitespace or control characters", name)
		}
	}
	if strings.EqualFold(name, NoneViewName) {
		return New(ErrCodeInvalidViewType, "view name %q is reserved", name)
	}
	return nil
}

// ValidateRatio checks a split ratio. It must be a finite number in [0, 1].
func ValidateRatio(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return New(ErrCodeInvalidInput, "split ratio must be a finite number")
	}
	if r < 0 || r > 1 {
		return New(ErrCodeInvalidInput, "split ratio %v out of range [0, 1]", r)
	}
	return nil
}

// ValidateSize checks a width/height pair. Zero means "use the default";
// negative or non-finite values are rejected.
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "size must be a finite number")
		}
		if v < 0 {
			return New(ErrCodeInvalidInput, "size %vx%v cannot be negative", width, height)
		}
	}
	return nil
}
