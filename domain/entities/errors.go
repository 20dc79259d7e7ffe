package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLocatorType is returned when a locator tag has no strategy.
	ErrUnknownLocatorType = errors.New("locator type does not exist or is not supported")

	// ErrElementAbsent is returned when a lookup matched nothing before the
	// implicit wait ran out.
	ErrElementAbsent = errors.New("element could not be found")

	// ErrStaleElement indicates the element was detached from the document
	// between resolution and use.
	ErrStaleElement = errors.New("element is stale or detached from the document")

	// ErrRevealTimeout is returned when a hover did not reveal its target in time.
	ErrRevealTimeout = errors.New("element was not revealed before timeout")
)

// ActionError reports a user gesture that could not be performed.
type ActionError struct {
	Action  ActionType
	Locator Locator
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("could not %s element %s: %v", e.Action, e.Locator, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsLookupFailure reports whether err came from resolving a locator rather
// than from interacting with the element.
func IsLookupFailure(err error) bool {
	return errors.Is(err, ErrUnknownLocatorType) ||
		errors.Is(err, ErrElementAbsent) ||
		errors.Is(err, ErrStaleElement)
}
