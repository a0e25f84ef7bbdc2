package minio

import "fmt"

// Error wraps MinIO failures with the operation that produced them.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("minio %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewConnectionError marks a connectivity failure.
func NewConnectionError(err error) error {
	return &Error{Op: "connect", Err: err}
}

// NewInvalidInputError marks a caller input problem.
func NewInvalidInputError(msg string) error {
	return &Error{Op: "validate", Err: fmt.Errorf("%s", msg)}
}

func handleMinIOError(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
