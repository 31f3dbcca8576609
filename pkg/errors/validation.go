package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// slugRegex matches column slugs: letters, digits, underscores, dashes and dots.
var slugRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateSlug validates a column slug.
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "column slug cannot be empty")
	}
	if len(slug) > 256 {
		return New(ErrCodeInvalidSlug, "column slug too long (max 256 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSlug, "invalid column slug: %q", slug)
	}
	return nil
}

// ValidateEntityName validates an entity name taken from user input.
// Entity names are free text, so only emptiness, length and control characters are checked.
func ValidateEntityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "entity name cannot be empty")
	}
	if len(name) > 512 {
		return New(ErrCodeInvalidInput, "entity name too long (max 512 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity name contains invalid control characters")
		}
	}
	return nil
}
