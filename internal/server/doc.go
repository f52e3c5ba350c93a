// Package server implements the MCP (Model Context Protocol) server that
// exposes frog photo styling as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source Information:
//   - image_load: Load a source photo and get metadata
//   - image_dimensions: Get width and height
//
// Expression Styling:
//   - frog_expressions: List presets and their steps
//   - frog_apply_expression: Style a photo with an expression preset
//   - frog_adjust: Apply one filter operation
//
// Helpers:
//   - frog_size_dimensions: Resolve a size name to pixels
//   - frog_cache_stats: Inspect the caches
//
// # Caching
//
// Two caches live for the lifetime of the process. Decoded source photos are
// cached by path. Styled results are cached by (expression, width, height)
// in the filter pipeline, which means two different photos of the same size
// share one styled result per expression.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Logging
//
// Logs go to stderr through logrus; stdout is reserved for the protocol.
package server
