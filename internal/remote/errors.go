package remote

import "errors"

// Custom remote store errors
var (
	// ErrMissingCredentials indicates required object-store credentials were
	// absent when a remote operation was attempted. Fail fast, never retried.
	ErrMissingCredentials = errors.New("remote store credentials are not configured")

	// ErrRemoteUnavailable indicates a failure reaching the remote store
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// IsMissingCredentials checks if the error is a configuration error
func IsMissingCredentials(err error) bool {
	return errors.Is(err, ErrMissingCredentials)
}

// IsRemoteUnavailable checks if the error is a remote availability error
func IsRemoteUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}
