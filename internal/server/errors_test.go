package server

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode int
	}{
		{"method not found", methodNotFoundError("Unknown tool: x"), -32601},
		{"invalid params", invalidParamsError("prompt is required"), -32602},
		{"internal error", internalError("upstream failed"), -32603},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code: got %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Error(): got %q, want %q", tt.err.Error(), tt.err.Message)
			}
		})
	}
}

func TestAsProtocolError_PassesThroughProtocolErrors(t *testing.T) {
	orig := invalidParamsError("prompt is required")

	got := asProtocolError(orig)
	if got != orig {
		t.Errorf("protocol error should pass through unchanged, got %v", got)
	}

	// Pass-through also holds when the protocol error is wrapped.
	wrapped := fmt.Errorf("pipeline: %w", orig)
	got = asProtocolError(wrapped)
	if got != orig {
		t.Errorf("wrapped protocol error should be recovered, got %v", got)
	}
}

func TestAsProtocolError_NormalizesPlainErrors(t *testing.T) {
	got := asProtocolError(errors.New("connection reset"))

	if got.Code != -32603 {
		t.Errorf("Code: got %d, want -32603", got.Code)
	}
	if !strings.Contains(got.Message, "connection reset") {
		t.Errorf("Message should retain the original failure, got %q", got.Message)
	}
}
