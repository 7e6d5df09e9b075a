package vectorset

import "sync"

// Capability is what is known about a server's support for the range-based
// listing command (VRANGE).
type Capability int

const (
	// CapabilityUnknown means the connection has not been probed yet.
	CapabilityUnknown Capability = iota
	// CapabilitySupported means VRANGE answered successfully on this connection.
	CapabilitySupported
	// CapabilityUnsupported means the server rejected VRANGE as an unknown command.
	CapabilityUnsupported
)

// String returns a label suitable for logs and metrics.
func (c Capability) String() string {
	switch c {
	case CapabilitySupported:
		return "supported"
	case CapabilityUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// CapabilityCache memoizes, per connection, whether the advanced listing
// command is available. Entries never expire; they are removed by Delete
// when a connection goes away or by Clear.
//
// It is safe for concurrent use. Concurrent writers for the same connection
// compute the same value, so the last write wins.
type CapabilityCache struct {
	mu      sync.RWMutex
	entries map[ConnectionID]bool
}

// NewCapabilityCache returns an empty cache.
func NewCapabilityCache() *CapabilityCache {
	return &CapabilityCache{entries: make(map[ConnectionID]bool)}
}

// Get returns the recorded capability for id.
func (c *CapabilityCache) Get(id ConnectionID) Capability {
	c.mu.RLock()
	defer c.mu.RUnlock()

	supported, ok := c.entries[id]
	switch {
	case !ok:
		return CapabilityUnknown
	case supported:
		return CapabilitySupported
	default:
		return CapabilityUnsupported
	}
}

// Set records the outcome of a probe for id.
func (c *CapabilityCache) Set(id ConnectionID, supported bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = supported
}

// Delete forgets id, so the next listing on that connection probes again.
func (c *CapabilityCache) Delete(id ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Clear forgets every connection.
func (c *CapabilityCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[ConnectionID]bool)
}

// Len returns the number of connections with a recorded outcome.
func (c *CapabilityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
