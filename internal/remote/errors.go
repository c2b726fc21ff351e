package remote

import (
	"errors"
	"fmt"
)

// NetworkError reports a request that never produced a usable response
// (transport failure, timeout, undecodable body).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network failure: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// RejectionError reports a non-success status returned by the remote store.
type RejectionError struct {
	Status int
	Body   string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("remote store returned %d", e.Status)
}

// IsNotFound reports whether the store rejected the request with 404. For
// deletes this is the "already gone" case and is not treated as fatal.
func IsNotFound(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej) && rej.Status == 404
}

// IsRejection reports whether the store answered with a non-success status.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// IsNetwork reports whether the request could not complete at all.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// classify folds everything that is not an explicit rejection into the
// network-failure kind.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsRejection(err) || IsNetwork(err) {
		return err
	}
	return &NetworkError{Err: err}
}
