package stats

import "fmt"

// NotFoundError reports a document path that did not resolve to a file at read time.
// It is the only read failure the report driver recovers from.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// DecodeError reports a document whose bytes are not valid UTF-8.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s as UTF-8: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
