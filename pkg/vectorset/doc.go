// Package vectorset provides a typed client for Redis vector sets.
//
// The vectorset package turns vector set operations (create, list, delete,
// similarity search, element vector and attribute access) into protocol
// commands, executes them through a Transport, and decodes the flat replies
// into typed results. Protocol failures are translated into a small set of
// error kinds that callers can match with errors.Is.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Service interface: the operation surface
//   - Client struct: concrete implementation of Service
//   - Transport interface: the command executor, implemented by pkg/redis
//   - FX module: provides both *Client and Service for dependency injection
//
// Core Features:
//   - Command building for VADD, VREM, VCARD, VRANGE, VRANDMEMBER, VSIM,
//     VEMB, VGETATTR, VSETATTR, VDIM and VINFO
//   - Range listing with automatic fallback to VRANDMEMBER on servers that
//     predate VRANGE, remembered per connection
//   - Stride-aware decoding of VSIM replies with optional scores and attributes
//   - Domain errors: ErrNotFound, ErrElementNotFound, ErrAlreadyExists,
//     ErrTypeMismatch, ErrInvalidRequest
//   - Optional logging, Prometheus metrics and OpenTelemetry spans
//
// # Direct Usage (Without FX)
//
//	transport, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379})
//	if err != nil {
//		return err
//	}
//	defer transport.Close()
//
//	client := vectorset.NewClient(transport, vectorset.Config{})
//
//	err = client.Create(ctx, vectorset.CreateRequest{
//		Key: "docs",
//		Elements: []vectorset.Element{
//			{Name: "a", Vector: vectorset.Values{0.1, 0.2, 0.3}, Attributes: vectorset.Attributes{"year": 2020}},
//			{Name: "b", Vector: vectorset.EncodeFP32([]float32{0.3, 0.2, 0.1})},
//		},
//		TTL: time.Hour,
//	})
//
//	res, err := client.Search(ctx, vectorset.SearchRequest{
//		Key:            "docs",
//		Query:          vectorset.ByElement("a"),
//		Count:          5,
//		Filter:         ".year >= 2000",
//		WithScores:     true,
//		WithAttributes: true,
//	})
//	if vectorset.IsNotFound(err) {
//		// key does not exist
//	}
//
// # Listing and server capabilities
//
// ListElements prefers VRANGE, which returns names in lexicographic order.
// Servers without VRANGE reject it as an unknown command; the client then
// retries with VRANDMEMBER using a non-negative count, so no name is returned
// twice, and remembers the outcome for that connection. Capabilities().Clear()
// forces a new probe, e.g. after a server upgrade.
//
// # Error kinds
//
// A missing key, and a key that reports zero elements when listed, yield
// ErrNotFound. A missing element yields ErrElementNotFound, which also matches
// ErrNotFound. A key holding another data type yields ErrTypeMismatch with the
// server error kept in the chain. Anything else is returned unchanged.
//
// # Thread Safety
//
// Client is safe for concurrent use. The capability cache is the only shared
// state and uses last-write-wins semantics.
package vectorset
