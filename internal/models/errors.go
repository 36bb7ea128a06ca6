package models

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by stores when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrInvalid marks input that decoded fine but cannot be stored.
var ErrInvalid = errors.New("invalid input")

// NotFoundError names the missing resource so the HTTP layer can report
// "<Resource> not found" to the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return strings.ToLower(e.Resource) + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Detail is the client-facing message.
func (e *NotFoundError) Detail() string {
	return e.Resource + " not found"
}
