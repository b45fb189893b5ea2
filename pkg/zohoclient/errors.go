package zohoclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API call failures.
type ErrorKind int

const (
	// KindUnauthenticated means no valid access token was available; the
	// request was never sent.
	KindUnauthenticated ErrorKind = iota
	// KindRemoteRejected means Zoho answered with a non-2xx status.
	KindRemoteRejected
	// KindTransport means the request failed before a response arrived.
	KindTransport
)

// APIError is the tagged error returned by all Client calls.
type APIError struct {
	Kind   ErrorKind
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnauthenticated:
		return fmt.Sprintf("zoho: not authenticated: %v", e.Err)
	case KindRemoteRejected:
		return fmt.Sprintf("zoho: request rejected with status %d: %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("zoho: transport failure: %v", e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsUnauthenticated reports whether err is an authentication failure that
// requires the caller to restart the authorization flow.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthenticated
}
