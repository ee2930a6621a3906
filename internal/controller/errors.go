package controller

import (
	"errors"

	"advocate-portal-client/internal/gateway"
)

// ValidationError is a purely local rejection (no file selected, empty query).
// It never reaches the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// displayMessage renders an operation error for the view that initiated it:
// server detail verbatim where present, a transport-specific line on network
// failure, a generic fallback otherwise.
func displayMessage(err error, networkFallback, genericFallback string) string {
	var reqErr *gateway.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return genericFallback
	}
	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		return networkFallback
	}
	return genericFallback
}
