package vectorset

import "context"

// Command is one protocol command: the command name followed by its arguments.
// Arguments are strings, except vector blobs which are []byte.
type Command []any

// Reply is the outcome of one command inside a batch.
// A nil Value with a nil Err is a null reply.
type Reply struct {
	Value any
	Err   error
}

// ConnectionID identifies a live connection to one server endpoint.
// It is used as the capability cache key.
type ConnectionID string

// Transport executes commands against the server.
//
// ExecuteBatch sends all commands as one pipeline and returns one Reply per
// command, in order. Server errors for individual commands are reported in
// Reply.Err; the returned error is reserved for failures of the whole batch
// (network, cancelled context). Execute maps a null reply to (nil, nil).
//
//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=vectorset
type Transport interface {
	ExecuteBatch(ctx context.Context, cmds []Command) ([]Reply, error)
	Execute(ctx context.Context, cmd Command) (any, error)
	ConnectionID() ConnectionID
}

// KeyScanner is an optional Transport capability for deployments where a
// single SCAN does not cover the whole keyspace, such as a cluster with
// several masters. When the transport implements it, ListKeys delegates the
// keyspace walk to ScanKeys instead of issuing SCAN through Execute.
type KeyScanner interface {
	ScanKeys(ctx context.Context, match, keyType string, batch int) ([]string, error)
}
