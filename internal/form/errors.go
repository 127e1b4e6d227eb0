package form

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/mareas/internal/model"
)

var (
	ErrInvalidRange         = errors.New("form: stage end is before start")
	ErrOverlap              = errors.New("form: stage overlaps an existing stage")
	ErrDuplicate            = errors.New("form: species already selected")
	ErrUnknownField         = errors.New("form: unknown field")
	ErrActionsDisabled      = errors.New("form: trip is incomplete")
	ErrUnknownAction        = errors.New("form: unknown action")
	ErrActionNotImplemented = errors.New("form: action not implemented")
)

// OverlapError names the stage that blocked an insert.
type OverlapError struct {
	Existing model.Stage
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOverlap, e.Existing)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicate, e.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }
