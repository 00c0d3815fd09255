package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrRejected         = errors.New("request rejected")
)

// RejectedError is a business-rule failure reported by the backend. Message
// is the server's human readable text and may be empty.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected", e.Op)
	}
	return fmt.Sprintf("%s: rejected: %s", e.Op, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// RejectionMessage returns the server message carried by err, if any.
func RejectionMessage(err error) (string, bool) {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Message, true
	}
	return "", false
}
