// Package api implements the client side of the Raysurfer code-caching API.
//
// The api package provides:
// - Request and response types for the search, upload, vote, patterns and
//   few-shot endpoints
// - A Transport abstraction and its HTTP implementation
// - A typed Client that validates requests before they leave the process
// - Configuration loaded from RAYSURFER_* environment variables
// - Error codes shared by the command layer
//
// Ranking, vote tallying and pattern aggregation all happen on the server.
// This package never stores snippets locally.
package api
