package upstream

import "fmt"

// TransportError indicates a network failure, timeout, or non-2xx status
// while talking to an upstream API.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError indicates an upstream response body that could not be parsed.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("upstream decode error for %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
