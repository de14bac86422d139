package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxContentSize = 25 * 1024 * 1024 // 25MB - file content, data URIs included
	MaxUploadSize  = 16 * 1024 * 1024 // 16MB - raw multipart upload before encoding
	MaxMessageSize = 64 * 1024        // 64KB - single WebSocket message
)

// String length limits
const (
	MaxIDLength      = 128
	MaxNameLength    = 255
	MaxTitleLength   = 256
	MaxProfileLength = 64
	MaxPatternLength = 512
	MaxBatchSize     = 500
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores and dots
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	// ProfilePattern allows lowercase alphanumeric, hyphens and underscores
	ProfilePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateIDs validates a batch of IDs
func ValidateIDs(ids []string, fieldName string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%s must not be empty", fieldName)
	}
	if len(ids) > MaxBatchSize {
		return fmt.Errorf("too many %s (maximum %d)", fieldName, MaxBatchSize)
	}
	for i, id := range ids {
		if err := ValidateID(id, fmt.Sprintf("%s[%d]", fieldName, i), true); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName validates an item or window name
func ValidateName(name, fieldName string) error {
	if err := ValidateString(name, fieldName, 1, MaxNameLength, true); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must not be blank", fieldName)
	}
	return nil
}

// ValidateTitle validates a window title
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 1, MaxTitleLength, true)
}

// ValidateProfile validates a desktop profile name
func ValidateProfile(profile string) error {
	if err := ValidateString(profile, "profile", 1, MaxProfileLength, true); err != nil {
		return err
	}

	if !ProfilePattern.MatchString(profile) {
		return fmt.Errorf("profile must contain only lowercase letters, numbers, hyphens, and underscores")
	}

	return nil
}

// ValidateContent checks file content against the size limit
func ValidateContent(content string) error {
	if len(content) > MaxContentSize {
		return fmt.Errorf("content size %d bytes exceeds maximum %d bytes", len(content), MaxContentSize)
	}
	return nil
}

// ValidatePattern validates a search or glob pattern
func ValidatePattern(pattern string) error {
	return ValidateString(pattern, "pattern", 1, MaxPatternLength, true)
}
