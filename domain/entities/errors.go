package entities

import "errors"

// Failure taxonomy shared by drivers, page objects and scenarios.
// Drivers wrap these with the engine's own error so callers can use errors.Is
// for the kind and still see the underlying cause.
var (
	// ErrElementNotFound - the locator matched zero elements when one was required
	ErrElementNotFound = errors.New("element not found")

	// ErrElementNotInteractable - the element exists but is hidden, disabled or covered
	ErrElementNotInteractable = errors.New("element not interactable")

	// ErrTimeout - a wait, quiescence or navigation condition was not met in time
	ErrTimeout = errors.New("timeout")

	// ErrPersistence - the credentials file could not be written or read
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidSortOption - the sort key is not one of az, za, lohi, hilo
	ErrInvalidSortOption = errors.New("invalid sort option")
)
