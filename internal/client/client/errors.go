package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ServerError is a non-auth failure reported by the backend. Message is the
// human-readable text from the error payload.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// Message extracts the text to show a user for err.
func Message(err error) string {
	var se *ServerError
	switch {
	case errors.As(err, &se) && se.Message != "":
		return se.Message
	case errors.Is(err, ErrUnauthorized):
		return "Invalid email or password!"
	case errors.Is(err, ErrUnavailable):
		return "Server unavailable, please try again later."
	default:
		return err.Error()
	}
}
