package vectorset

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by Client operations. Callers should match them with
// errors.Is or the Is* helpers; the wrapped message carries the key or element.
var (
	// ErrNotFound is returned when the vector set key does not exist or is empty.
	ErrNotFound = errors.New("vectorset: not found")

	// ErrElementNotFound is returned when the key exists but the element does not.
	// It matches ErrNotFound as well.
	ErrElementNotFound = fmt.Errorf("%w: element", ErrNotFound)

	// ErrAlreadyExists is returned by Create when the key is already present.
	ErrAlreadyExists = errors.New("vectorset: already exists")

	// ErrTypeMismatch is returned when the key holds a value of another type.
	// The server error is kept in the chain.
	ErrTypeMismatch = errors.New("vectorset: wrong type")

	// ErrInvalidRequest is returned for requests rejected before reaching the server.
	ErrInvalidRequest = errors.New("vectorset: invalid request")

	// errUnsupportedCommand marks a capability probe failure. It never leaves the package.
	errUnsupportedCommand = errors.New("vectorset: command not supported by server")
)

// IsNotFound reports whether err is a missing key or element.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is a create conflict.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsTypeMismatch reports whether err is a WRONGTYPE server reply.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsInvalidRequest reports whether err was raised by request validation.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// isUnknownCommand reports whether the server rejected a command it does not
// know. Servers expose no structured capability signal, so this matches the
// reply text; keep any wording changes here.
func isUnknownCommand(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unknown command")
}

// isWrongType reports whether the server rejected an operation against a key
// holding another data type.
func isWrongType(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "WRONGTYPE")
}

// classify maps a failure to its domain kind. Domain errors and transport
// errors are returned as they are.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrTypeMismatch),
		errors.Is(err, ErrInvalidRequest):
		return err
	case isWrongType(err):
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	default:
		return err
	}
}

func notFound(key string) error {
	return fmt.Errorf("%w: key %q", ErrNotFound, key)
}

func elementNotFound(key, name string) error {
	return fmt.Errorf("%w %q in key %q", ErrElementNotFound, name, key)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
