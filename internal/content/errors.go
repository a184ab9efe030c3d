package content

import "errors"

var (
	// ErrInvalidContent is returned when the content configuration fails validation
	ErrInvalidContent = errors.New("content: invalid configuration")

	// ErrUnknownPackage is returned when a package name is not configured
	ErrUnknownPackage = errors.New("content: unknown package")
)
