package vectorset

import (
	"context"
	"fmt"
)

const capabilityRange = "vrange"

// list enumerates element names of key, choosing between the range listing
// and the random-member fallback from what is known about the connection:
//
//   - unknown: try VRANGE. An unknown command rejection marks the connection
//     unsupported and retries with the fallback; success marks it supported;
//     any other failure is returned and leaves the cache untouched.
//   - unsupported: fallback only.
//   - supported: VRANGE only. Failures are returned, never retried.
func (c *Client) list(ctx context.Context, key string, count int) (*ListResult, error) {
	id := c.transport.ConnectionID()

	switch c.capabilities.Get(id) {
	case CapabilitySupported:
		return c.executeList(ctx, buildAdvancedList(key, count))
	case CapabilityUnsupported:
		return c.executeList(ctx, buildFallbackList(key, count))
	}

	replies, err := c.transport.ExecuteBatch(ctx, buildAdvancedList(key, count))
	if cause := unsupported(err, replies); cause != nil {
		c.capabilities.Set(id, false)
		c.observeProbe(id, false, cause)
		return c.executeList(ctx, buildFallbackList(key, count))
	}
	if err != nil {
		return nil, err
	}

	result, err := decodeList(replies)
	if err != nil {
		return nil, err
	}
	c.capabilities.Set(id, true)
	c.observeProbe(id, true, nil)
	return result, nil
}

func (c *Client) executeList(ctx context.Context, cmds []Command) (*ListResult, error) {
	replies, err := c.transport.ExecuteBatch(ctx, cmds)
	if err != nil {
		return nil, err
	}
	return decodeList(replies)
}

// unsupported returns a non-nil error when the batch, or any command in it,
// was rejected because the server does not know the command.
func unsupported(batchErr error, replies []Reply) error {
	if isUnknownCommand(batchErr) {
		return fmt.Errorf("%w: %w", errUnsupportedCommand, batchErr)
	}
	if batchErr != nil {
		return nil
	}
	for _, r := range replies {
		if isUnknownCommand(r.Err) {
			return fmt.Errorf("%w: %w", errUnsupportedCommand, r.Err)
		}
	}
	return nil
}

func (c *Client) observeProbe(id ConnectionID, supported bool, cause error) {
	if c.recorder != nil {
		c.recorder.ObserveCapabilityProbe(capabilityRange, supported)
	}

	fields := map[string]interface{}{
		"connection": string(id),
		"capability": capabilityRange,
	}
	if supported {
		c.logDebug("range listing supported, caching capability", nil, fields)
		return
	}
	c.logWarn("range listing not supported by server, falling back to random members", cause, fields)
}
