package pokeapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks requests that never produced a response.
	ErrNetwork = errors.New("network failure")

	// ErrMalformed marks responses whose body is not the expected shape.
	ErrMalformed = errors.New("malformed response")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}
