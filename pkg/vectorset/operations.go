package vectorset

import (
	"context"
	"errors"
	"fmt"
)

// Create adds the initial elements of a new vector set, then applies the TTL
// when one is set. All commands go out as one pipeline; the server does not
// apply them atomically, so per-command failures are joined and returned.
func (c *Client) Create(ctx context.Context, req CreateRequest) (err error) {
	ctx, done := c.begin(ctx, "create", req.Key)
	defer func() { err = done(err) }()

	if err := validateKey(req.Key); err != nil {
		return err
	}
	if len(req.Elements) == 0 {
		return invalid("create %q: no elements", req.Key)
	}
	if req.TTL < 0 {
		return invalid("create %q: negative ttl %s", req.Key, req.TTL)
	}
	if err := validateElements(req.Elements); err != nil {
		return err
	}

	exists, err := c.exists(ctx, req.Key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: key %q", ErrAlreadyExists, req.Key)
	}

	cmds, err := buildCreate(req)
	if err != nil {
		return err
	}
	replies, err := c.transport.ExecuteBatch(ctx, cmds)
	if err != nil {
		return err
	}
	return joinReplyErrors(replies)
}

// AddElements adds elements to a set, creating the key when it is absent.
// Existing elements get their vector and attributes replaced.
func (c *Client) AddElements(ctx context.Context, key string, elements []Element) (added int64, err error) {
	ctx, done := c.begin(ctx, "add", key)
	defer func() { err = done(err) }()

	if err := validateKey(key); err != nil {
		return 0, err
	}
	if err := validateElements(elements); err != nil {
		return 0, err
	}
	if len(elements) == 0 {
		return 0, nil
	}

	cmds := make([]Command, 0, len(elements))
	for _, el := range elements {
		cmd, err := buildAdd(key, el, QuantizationDefault)
		if err != nil {
			return 0, err
		}
		cmds = append(cmds, cmd)
	}

	replies, err := c.transport.ExecuteBatch(ctx, cmds)
	if err != nil {
		return 0, err
	}
	return countOnes(replies), joinReplyErrors(replies)
}

// ListElements returns the cardinality of a set and up to Count of its element names.
// A set reporting zero elements is treated as absent.
func (c *Client) ListElements(ctx context.Context, req ListRequest) (result *ListResult, err error) {
	ctx, done := c.begin(ctx, "list", req.Key)
	defer func() { err = done(err) }()

	if err := validateKey(req.Key); err != nil {
		return nil, err
	}
	if err := c.mustExist(ctx, req.Key); err != nil {
		return nil, err
	}

	count := req.Count
	if count == 0 {
		count = c.cfg.DefaultListCount
	}
	if count < 0 {
		count = -count
	}

	result, err = c.list(ctx, req.Key, count)
	if err != nil {
		return nil, err
	}
	if result.Total == 0 {
		return nil, notFound(req.Key)
	}
	return result, nil
}

// DeleteElements removes the named elements and returns how many were removed.
// Names that were not members, or whose removal failed, are not counted; a
// type mismatch on the key fails the whole call.
func (c *Client) DeleteElements(ctx context.Context, req DeleteRequest) (removed int64, err error) {
	ctx, done := c.begin(ctx, "delete", req.Key)
	defer func() { err = done(err) }()

	if err := validateKey(req.Key); err != nil {
		return 0, err
	}
	if len(req.Names) == 0 {
		return 0, invalid("delete from %q: no element names", req.Key)
	}
	if err := c.mustExist(ctx, req.Key); err != nil {
		return 0, err
	}

	replies, err := c.transport.ExecuteBatch(ctx, buildRemove(req.Key, req.Names))
	if err != nil {
		return 0, err
	}

	for i, r := range replies {
		if r.Err == nil {
			continue
		}
		if isWrongType(r.Err) {
			return 0, r.Err
		}
		c.logWarn("failed to remove vector set element", r.Err, map[string]interface{}{
			"key":     req.Key,
			"element": req.Names[i],
		})
	}
	return countOnes(replies), nil
}

// Search runs a similarity search and decodes hits in server order.
func (c *Client) Search(ctx context.Context, req SearchRequest) (result *SearchResult, err error) {
	ctx, done := c.begin(ctx, "search", req.Key)
	defer func() { err = done(err) }()

	if err := validateKey(req.Key); err != nil {
		return nil, err
	}
	if req.Query == nil {
		return nil, invalid("search %q: no query", req.Key)
	}
	if req.EF != nil && *req.EF <= 0 {
		return nil, invalid("search %q: ef must be positive, got %d", req.Key, *req.EF)
	}
	if err := c.mustExist(ctx, req.Key); err != nil {
		return nil, err
	}

	if req.Count <= 0 {
		req.Count = c.cfg.DefaultSearchCount
	}

	raw, err := c.transport.Execute(ctx, buildSearch(req))
	if err != nil {
		return nil, err
	}
	return decodeSearch(raw, req.WithScores, req.WithAttributes)
}

// GetElementVector returns the stored vector of an element. Quantized sets
// return the dequantized approximation.
func (c *Client) GetElementVector(ctx context.Context, key, name string) (vector []float64, err error) {
	ctx, done := c.begin(ctx, "get_vector", key)
	defer func() { err = done(err) }()

	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := c.mustExist(ctx, key); err != nil {
		return nil, err
	}

	raw, err := c.transport.Execute(ctx, buildGetVector(key, name))
	if err != nil {
		return nil, err
	}
	vector, err = decodeVector(raw)
	if errors.Is(err, ErrElementNotFound) {
		return nil, elementNotFound(key, name)
	}
	return vector, err
}

// GetElementAttributes returns the attributes of an element, or nil when it has none.
func (c *Client) GetElementAttributes(ctx context.Context, key, name string) (attrs Attributes, err error) {
	ctx, done := c.begin(ctx, "get_attributes", key)
	defer func() { err = done(err) }()

	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := c.mustExist(ctx, key); err != nil {
		return nil, err
	}

	raw, err := c.transport.Execute(ctx, buildGetAttributes(key, name))
	if err != nil {
		return nil, err
	}
	return decodeAttributes(raw)
}

// SetElementAttributes replaces the attributes of an existing element.
// Passing nil or an empty map removes them.
func (c *Client) SetElementAttributes(ctx context.Context, key, name string, attrs Attributes) (err error) {
	ctx, done := c.begin(ctx, "set_attributes", key)
	defer func() { err = done(err) }()

	if err := validateKey(key); err != nil {
		return err
	}
	cmd, err := buildSetAttributes(key, name, attrs)
	if err != nil {
		return err
	}
	if err := c.mustExist(ctx, key); err != nil {
		return err
	}

	raw, err := c.transport.Execute(ctx, cmd)
	if err != nil {
		return err
	}
	updated, err := toInt64(raw)
	if err != nil {
		return fmt.Errorf("decode set attributes reply: %w", err)
	}
	if updated == 0 {
		return elementNotFound(key, name)
	}
	return nil
}

// Info reports cardinality, dimension and quantization of a set.
func (c *Client) Info(ctx context.Context, key string) (info *Info, err error) {
	ctx, done := c.begin(ctx, "info", key)
	defer func() { err = done(err) }()

	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := c.mustExist(ctx, key); err != nil {
		return nil, err
	}

	replies, err := c.transport.ExecuteBatch(ctx, buildInfo(key))
	if err != nil {
		return nil, err
	}
	return decodeInfo(key, replies)
}

// ListKeys walks the keyspace with SCAN and returns every vector set key
// matching the pattern. Keys are returned in scan order and may repeat if
// the keyspace is resized during the walk. Transports implementing
// KeyScanner walk the keyspace themselves, e.g. once per cluster master.
func (c *Client) ListKeys(ctx context.Context, match string) (keys []string, err error) {
	ctx, done := c.begin(ctx, "list_keys", match)
	defer func() { err = done(err) }()

	if scanner, ok := c.transport.(KeyScanner); ok {
		keys, err = scanner.ScanKeys(ctx, match, vectorSetType, c.cfg.ScanBatchSize)
		if err != nil {
			return nil, err
		}
		if keys == nil {
			keys = []string{}
		}
		return keys, nil
	}

	keys = []string{}
	var cursor uint64
	for {
		raw, err := c.transport.Execute(ctx, buildScan(cursor, match, c.cfg.ScanBatchSize))
		if err != nil {
			return nil, err
		}
		next, page, err := decodeScan(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, page...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (c *Client) exists(ctx context.Context, key string) (bool, error) {
	raw, err := c.transport.Execute(ctx, buildExists(key))
	if err != nil {
		return false, err
	}
	n, err := toInt64(raw)
	if err != nil {
		return false, fmt.Errorf("decode exists reply: %w", err)
	}
	return n > 0, nil
}

func (c *Client) mustExist(ctx context.Context, key string) error {
	exists, err := c.exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(key)
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return invalid("empty key")
	}
	return nil
}

func validateElements(elements []Element) error {
	for i, el := range elements {
		if el.Name == "" {
			return invalid("element %d: empty name", i)
		}
		if el.Vector == nil {
			return invalid("element %q: no vector", el.Name)
		}
	}
	return nil
}

// countOnes counts replies equal to integer 1, the reply of VADD and VREM when
// the element was inserted or removed.
func countOnes(replies []Reply) int64 {
	var n int64
	for _, r := range replies {
		if r.Err != nil {
			continue
		}
		if v, err := toInt64(r.Value); err == nil && v == 1 {
			n++
		}
	}
	return n
}

func joinReplyErrors(replies []Reply) error {
	var errs []error
	for _, r := range replies {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
