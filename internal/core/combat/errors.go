package combat

import "errors"

var (
	// ErrNoVisibilityNotifier means a meteor body was created without an
	// on-screen notifier, so it could never be cleaned up.
	ErrNoVisibilityNotifier = errors.New("visibility notifier not attached")
	ErrMissingCollaborator  = errors.New("required collaborator is missing")
	ErrInvalidConfig        = errors.New("invalid combat configuration")
	ErrDestroyed            = errors.New("entity already destroyed")
)
