package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	controlChars  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	unsafeInName  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// MaxNameLength bounds traveler and draft names, in characters.
const MaxNameLength = 200

// SanitizeString removes control characters and collapses whitespace.
func SanitizeString(s string) string {
	s = controlChars.ReplaceAllString(s, " ")
	return strings.TrimSpace(repeatedSpace.ReplaceAllString(s, " "))
}

// SanitizeFileName makes s safe to use as a single path element.
// Thai characters are kept.
func SanitizeFileName(s string) string {
	s = unsafeInName.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, "..", "_")
	s = strings.Trim(strings.TrimSpace(s), ".")
	if s == "" {
		return "_"
	}
	return s
}

// ValidateName checks a human-entered name after sanitizing.
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%s exceeds %d characters", field, MaxNameLength)
	}
	return nil
}
