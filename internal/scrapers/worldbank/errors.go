package worldbank

import (
	"fmt"
)

// FetchError is returned when a remote endpoint answers with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// ParseError is returned when a response body does not have the expected shape.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
