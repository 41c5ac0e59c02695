package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// chartNameRegex matches names usable in URLs, cache keys and file names.
var chartNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateChartName validates a registered chart name.
//
// Names appear in URL paths and cache keys, so the rules are conservative:
//   - No empty names
//   - Lowercase letters, digits, '-' and '_' only
//   - Must start with a letter or digit
//   - Maximum length of 64 characters
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "chart name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidName, "chart name too long (max 64 characters)")
	}
	if !chartNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid chart name: %q", name)
	}
	return nil
}

// ValidateKey validates a caller-supplied chart key. Empty keys are allowed.
// It rejects control characters and keys longer than 256 characters.
func ValidateKey(key string) error {
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "chart key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "chart key contains invalid control characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a series color. Hex notation and CSS functional
// notation (rgb(), rgba(), hsl(), hsla()) are accepted, as are bare CSS
// color keywords.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	switch {
	case strings.HasPrefix(color, "#"):
		if !hexColorRegex.MatchString(color) {
			return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
		}
	case strings.HasPrefix(color, "rgb"), strings.HasPrefix(color, "hsl"):
		if !strings.HasSuffix(color, ")") {
			return New(ErrCodeInvalidInput, "invalid color function: %q", color)
		}
	default:
		for _, r := range color {
			if !unicode.IsLetter(r) {
				return New(ErrCodeInvalidInput, "invalid color: %q", color)
			}
		}
	}
	return nil
}

// ValidatePath validates a definition file path for safety.
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
// Relative URLs starting with "/" are accepted alongside http and https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if strings.HasPrefix(rawURL, "/") && !strings.HasPrefix(rawURL, "//") {
		return nil
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must be relative or use http or https scheme")
	}
	return nil
}
