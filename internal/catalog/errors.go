package catalog

import "errors"

// Custom catalog service errors
var (
	// ErrEntryNotFound indicates the requested entry does not exist
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDuplicatePath indicates an entry already exists for the remote path
	ErrDuplicatePath = errors.New("entry already exists for remote path")

	// ErrInvalidPosition indicates the position is negative
	ErrInvalidPosition = errors.New("position must be non-negative")

	// ErrInvalidStatus indicates an unknown lifecycle state was requested
	ErrInvalidStatus = errors.New("invalid entry status")
)

// IsEntryNotFound checks if the error is an entry not found error
func IsEntryNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}

// IsDuplicatePath checks if the error is a duplicate remote path error
func IsDuplicatePath(err error) bool {
	return errors.Is(err, ErrDuplicatePath)
}

// IsInvalidPosition checks if the error is an invalid position error
func IsInvalidPosition(err error) bool {
	return errors.Is(err, ErrInvalidPosition)
}

// IsInvalidStatus checks if the error is an invalid status error
func IsInvalidStatus(err error) bool {
	return errors.Is(err, ErrInvalidStatus)
}
