package variant

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrBadAccess indicates a value was requested by a type that is not the
	// active alternative, including if the variant is invalid.
	ErrBadAccess = errors.New(`variant: bad access`)

	// ErrInvalidAccess indicates an operation requiring a live value was
	// attempted on an invalid variant.
	ErrInvalidAccess = errors.New(`variant: invalid access`)

	// ErrNotCopyable indicates a copy was attempted, for a set that contains
	// at least one alternative that cannot be copied.
	ErrNotCopyable = errors.New(`variant: not copyable`)

	// ErrNotMovable indicates a move was attempted, for a set that contains
	// at least one alternative that cannot be moved.
	ErrNotMovable = errors.New(`variant: not movable`)
)

// AccessError provides details for ErrBadAccess and ErrInvalidAccess, which
// are available via Unwrap (use errors.Is).
type AccessError struct {
	// Err is the cause, one of ErrBadAccess or ErrInvalidAccess.
	Err error

	// Want is the requested type, nil if not applicable.
	Want reflect.Type

	// Have is the type of the active alternative, nil if invalid.
	Have reflect.Type

	// Op is the name of the operation, e.g. "get".
	Op string
}

func (e *AccessError) Error() string {
	have := `invalid`
	if e.Have != nil {
		have = e.Have.String()
	}
	if e.Want != nil {
		return fmt.Sprintf(`%s: %s: want %s, have %s`, e.Err, e.Op, e.Want, have)
	}
	return fmt.Sprintf(`%s: %s: have %s`, e.Err, e.Op, have)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
