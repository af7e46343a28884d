package server

import "errors"

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Error is a protocol-shaped error carrying a JSON-RPC code. It satisfies
// the error interface so it can travel through ordinary return paths and be
// recovered at the transport boundary with errors.As.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func methodNotFoundError(message string) *Error {
	return &Error{Code: codeMethodNotFound, Message: message}
}

func invalidParamsError(message string) *Error {
	return &Error{Code: codeInvalidParams, Message: message}
}

func internalError(message string) *Error {
	return &Error{Code: codeInternalError, Message: message}
}

// asProtocolError normalizes err into a protocol error. Errors that are
// already protocol-shaped pass through unchanged so codes assigned earlier
// in the pipeline are not double-wrapped; everything else becomes an
// internal error retaining the original message as diagnostic text.
func asProtocolError(err error) *Error {
	var protoErr *Error
	if errors.As(err, &protoErr) {
		return protoErr
	}
	return internalError("image generation failed: " + err.Error())
}
