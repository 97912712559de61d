package interfaces

import "errors"

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate document")

	// ErrNoCapacity is returned by AdmitGuests when the conditional increment
	// on the capacity entry does not match, i.e. admitting the requested
	// guests would push the (tour, day) headcount over the limit.
	ErrNoCapacity = errors.New("no remaining capacity")
)
