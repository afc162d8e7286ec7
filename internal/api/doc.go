// Package api exposes the HTTP surface of the quiz generation service:
// routing, request decoding and validation, and response formatting. It is
// an adapter between external clients and the internal services and holds no
// business logic of its own.
package api
