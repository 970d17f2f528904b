package errors

import (
	"regexp"
	"strings"
)

// maxNameLen bounds board names. Names become file names, Mongo document
// IDs and URL path segments.
const maxNameLen = 128

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardName rejects names that are empty, longer than 128 bytes,
// start with anything but a letter or digit, contain "..", or use characters
// outside [A-Za-z0-9._-].
func ValidateBoardName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidName, "board name is empty")
	case len(name) > maxNameLen:
		return New(ErrCodeInvalidName, "board name exceeds %d characters", maxNameLen)
	case strings.Contains(name, ".."):
		return New(ErrCodeInvalidName, "board name %q contains \"..\"", name)
	case !namePattern.MatchString(name):
		return New(ErrCodeInvalidName, "board name %q may only use letters, digits, '.', '_' and '-'", name)
	}
	return nil
}

// ValidateSize requires an extent of at least one cell in each direction.
func ValidateSize(width, height int) error {
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidSize, "size %dx%d is smaller than 1x1", width, height)
	}
	return nil
}
