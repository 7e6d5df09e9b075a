package redis

import "errors"

// ErrEmptyCommand is returned when a command without a name is submitted.
var ErrEmptyCommand = errors.New("redis: empty command")

// IsServerError reports whether err is an error reply from the server,
// such as WRONGTYPE or an unknown command.
func IsServerError(err error) bool {
	return isServerReply(err)
}
