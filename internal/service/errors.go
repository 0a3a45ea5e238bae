package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrManualID rejects a payload whose id does not exist: new records never get client IDs.
	ErrManualID = errors.New("ID must not be chosen manually!")
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUsernameTaken = errors.New("username already taken")

// ValidationError is a client error tied to one attribute.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }
