package api

import "fmt"

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Method string // empty means GET
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	method := e.Method
	if method == "" {
		method = "GET"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not the expected JSON shape.
type DecodeError struct {
	URL     string
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v (body %q)", e.URL, e.Err, e.Snippet)
}

func (e *DecodeError) Unwrap() error { return e.Err }
