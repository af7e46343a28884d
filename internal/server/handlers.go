package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hlee/gemini-imagen-mcp/internal/imagen"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke.
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<summary>"}]
//	}
//
// Failures return a JSON-RPC error response with a code from the taxonomy
// in errors.go.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, invalidParamsError("Invalid params: "+err.Error()))
	}

	// An unknown tool name fails before any argument validation.
	if params.Name != toolGenerateImage {
		return s.errorResponse(req.ID, methodNotFoundError(fmt.Sprintf("Unknown tool: %s", params.Name)))
	}

	logger := s.logger.With().
		Str("call_id", uuid.NewString()).
		Str("tool", params.Name).
		Logger()

	text, err := s.generateImage(ctx, logger, params.Arguments)
	if err != nil {
		protoErr := asProtocolError(err)
		logger.Error().Int("code", protoErr.Code).Str("error", protoErr.Message).Msg("tool call failed")
		return s.errorResponse(req.ID, protoErr)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// generateImage runs the full invocation pipeline: narrow the raw arguments
// into a typed request, call the upstream service, persist every returned
// image, and build the comma-separated path summary.
func (s *Server) generateImage(ctx context.Context, logger zerolog.Logger, raw json.RawMessage) (string, error) {
	req, err := parseGenerateImageArgs(raw)
	if err != nil {
		return "", err
	}

	logger.Debug().
		Int("prompt_len", len(req.Prompt)).
		Int32("number_of_images", req.NumberOfImages).
		Msg("generating images")

	images, err := s.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	paths, err := s.store.SaveAll(images)
	if err != nil {
		return "", err
	}

	logger.Info().Int("images", len(paths)).Strs("paths", paths).Msg("images generated")

	return fmt.Sprintf("Generated %d image(s): %s", len(paths), strings.Join(paths, ", ")), nil
}

// generateImageArgs mirrors the tool's input schema. Pointer fields keep an
// omitted field distinguishable from an explicitly empty one: omitted fields
// take the documented default, while an explicit empty string is forwarded
// as "not set" so the upstream service applies its own default.
type generateImageArgs struct {
	Prompt           *string  `json:"prompt"`
	NumberOfImages   *float64 `json:"numberOfImages"`
	AspectRatio      *string  `json:"aspectRatio"`
	SampleImageSize  *string  `json:"sampleImageSize"`
	PersonGeneration *string  `json:"personGeneration"`
}

// argTypes maps schema fields to the JSON type each must carry. Only the
// primitive type is checked here; enum membership and the 1-4 range are left
// to the upstream service.
var argTypes = map[string]string{
	"prompt":           "a string",
	"numberOfImages":   "a number",
	"aspectRatio":      "a string",
	"sampleImageSize":  "a string",
	"personGeneration": "a string",
}

// parseGenerateImageArgs narrows the raw arguments object into a typed
// request, applying the documented defaults for omitted optional fields.
// All failures are InvalidParams; nothing here reaches the upstream service.
func parseGenerateImageArgs(raw json.RawMessage) (imagen.Request, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return imagen.Request{}, invalidParamsError("arguments must be an object")
	}

	var a generateImageArgs
	if err := json.Unmarshal(trimmed, &a); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if want, ok := argTypes[typeErr.Field]; ok {
				return imagen.Request{}, invalidParamsError(fmt.Sprintf("%s must be %s", typeErr.Field, want))
			}
		}
		return imagen.Request{}, invalidParamsError("arguments must be an object")
	}

	if a.Prompt == nil || *a.Prompt == "" {
		return imagen.Request{}, invalidParamsError("prompt is required and must be a non-empty string")
	}

	req := imagen.Request{
		Prompt:           *a.Prompt,
		NumberOfImages:   defaultNumberOfImages,
		AspectRatio:      defaultAspectRatio,
		SampleImageSize:  defaultSampleImageSize,
		PersonGeneration: defaultPersonGeneration,
	}
	if a.NumberOfImages != nil {
		// int32 conversion must not silently truncate: a fractional count
		// is rejected here rather than forwarded as a different value.
		if *a.NumberOfImages != math.Trunc(*a.NumberOfImages) {
			return imagen.Request{}, invalidParamsError("numberOfImages must be an integer")
		}
		req.NumberOfImages = int32(*a.NumberOfImages)
	}
	if a.AspectRatio != nil {
		req.AspectRatio = *a.AspectRatio
	}
	if a.SampleImageSize != nil {
		req.SampleImageSize = *a.SampleImageSize
	}
	if a.PersonGeneration != nil {
		req.PersonGeneration = *a.PersonGeneration
	}
	return req, nil
}
