package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hlee/gemini-imagen-mcp/internal/imagen"
)

const (
	serverName      = "gemini-imagen-mcp"
	serverVersion   = "0.1.0"
	protocolVersion = "2024-11-05"
)

// ImageGenerator produces raw image bytes for a normalized request.
type ImageGenerator interface {
	Generate(ctx context.Context, req imagen.Request) ([][]byte, error)
}

// ImageStore persists image buffers and returns their paths in input order.
type ImageStore interface {
	SaveAll(images [][]byte) ([]string, error)
}

// Server handles MCP protocol communication
type Server struct {
	generator ImageGenerator
	store     ImageStore
	logger    zerolog.Logger

	// Transport endpoints; stdin/stdout in production, buffers in tests.
	in  io.Reader
	out io.Writer
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// New creates a new MCP server instance
func New(generator ImageGenerator, store ImageStore, logger zerolog.Logger) *Server {
	return &Server{
		generator: generator,
		store:     store,
		logger:    logger,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Run starts the MCP server, reading requests from stdin and writing
// responses to stdout. It returns when the input stream ends or ctx is
// cancelled; cancellation is an orderly shutdown, not an error.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("server: shutdown signal received")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("scanner error: %w", err)
					}
				default:
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				s.logger.Error().Err(err).Msg("server: failed to parse request")
				continue
			}

			resp := s.handleRequest(ctx, &req)
			if resp != nil {
				if err := encoder.Encode(resp); err != nil {
					s.logger.Error().Err(err).Msg("server: failed to encode response")
				}
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.logger.Debug().Str("method", req.Method).Msg("server: request received")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, methodNotFoundError(fmt.Sprintf("Method not found: %s", req.Method)))
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": serverVersion,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response carrying protoErr.
func (s *Server) errorResponse(id interface{}, protoErr *Error) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   protoErr,
	}
}
