// Package server implements the MCP (Model Context Protocol) server for
// Imagen image generation.
//
// This package provides a JSON-RPC 2.0 server that exposes a single image
// generation tool through the MCP protocol. It's designed to work with
// Claude and other MCP-compatible clients.
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
// # Tool
//
// generate_image takes a text prompt plus optional numberOfImages,
// aspectRatio, sampleImageSize, and personGeneration parameters, calls the
// Imagen API once, writes every returned image as a PNG file, and reports
// the resulting paths.
//
// # Error Handling
//
// Failures are returned as JSON-RPC error responses:
//   - -32601: unknown method or unknown tool name
//   - -32602: missing or mistyped arguments
//   - -32603: upstream call failed, returned no images, or a file write failed
//
// Validation errors never reach the upstream service. Upstream and
// persistence failures are normalized to -32603 with the original message
// retained as diagnostic text.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(generator, store, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
