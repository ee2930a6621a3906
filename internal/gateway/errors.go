package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 on an authenticated request: the credential is
// no longer valid and the session must be torn down.
var ErrUnauthorized = errors.New("unauthorized: credential rejected by portal")

// RequestError means the portal was reachable but answered with a non-success
// status. Message carries the server's {detail} field verbatim, falling back
// to the HTTP status text.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("portal request failed (status %d): %s", e.Status, e.Message)
}

// NetworkError means the transport itself failed: DNS, connection refused,
// timeout. The operation may be re-submitted by the user.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
