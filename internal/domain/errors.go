package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream failure")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError names the reference code that could not be resolved.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Kind string
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Code)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
