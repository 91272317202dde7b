package docs

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind       = errors.New("unknown item kind")
	ErrInvalidIdentifier = errors.New("invalid resource identifier")
	ErrTransport         = errors.New("transport error")
	ErrHTTPStatus        = errors.New("unexpected HTTP status")
	ErrContentNotFound   = errors.New("could not find main content section")
	ErrResourceNotFound  = errors.New("resource not found")
)

// StatusError is returned when a page responds with a non-success status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}
