package errors

import (
	"errors"
	"fmt"
)

var (
	// Access gate
	ErrUnauthenticated = errors.New("missing or invalid credential")
	ErrForbidden       = errors.New("admin access required")

	// Lookups
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")

	// Requests
	ErrInvalidArgument = errors.New("invalid argument")

	// Store failures
	ErrIdentityStore = errors.New("identity store request failed")
	ErrProfileStore  = errors.New("profile store request failed")
)

// PartialWriteError reports an update where one of the two store writes
// succeeded and the other did not. There is no automatic rollback; the
// failing half is named so operators can reconcile by hand.
type PartialWriteError struct {
	FailedStore string // "identity" or "profile"
	Err         error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial update: %s write failed: %v", e.FailedStore, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
