package service

import (
	"errors"
	"fmt"

	"github.com/biocomp/qbank-backend/internal/repository"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateName   = errors.New("name already exists")
	ErrInUse           = errors.New("still referenced by questions")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// writeError translates repository failures of an aggregate write. A foreign
// key failure means the payload pointed at a missing type, source or tag.
func writeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferenced):
		return &ValidationError{Message: "type_id, source_id or tag_ids references a record that does not exist"}
	case errors.Is(err, repository.ErrDuplicate):
		return &ValidationError{Message: "duplicate value in payload"}
	case errors.Is(err, repository.ErrTooLong):
		return &ValidationError{Message: "a value exceeds its maximum length"}
	}
	return err
}

// readError maps a missing row to ErrNotFound and leaves the rest untouched.
func readError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
