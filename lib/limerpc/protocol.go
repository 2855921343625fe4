package limerpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type request struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
	Id     int64          `json:"id"`
}

// Reply is a decoded response envelope. Exactly one of Result and Err is
// meaningful: Err when the server reported a failure, Result otherwise.
type Reply struct {
	Id     any
	Result json.RawMessage
	Err    *RPCError
}

// ReplyParser turns a raw response body into a Reply. The parsing strategy
// is injected at client construction so the tolerance policy for
// non-conformant servers stays configurable instead of being patched into
// shared state.
type ReplyParser interface {
	ParseReply(data []byte) (Reply, error)
}

var allowedReplyKeys = map[string]bool{
	"id":      true,
	"result":  true,
	"error":   true,
	"jsonrpc": true,
}

// LenientReplyParser parses replies from a LimeSurvey remote control
// endpoint. The server is not strictly JSON-RPC 2 conformant: it sometimes
// reports errors as a bare string rather than the standard object. That
// shape is accepted here as a defined compatibility shim, mapped to
// UncodedError.
type LenientReplyParser struct{}

func (LenientReplyParser) ParseReply(data []byte) (Reply, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Reply{}, &ProtocolViolation{Reason: "reply body is not a json object", Cause: err}
	}
	for key := range envelope {
		if !allowedReplyKeys[key] {
			return Reply{}, &ProtocolViolation{Reason: fmt.Sprintf("key not allowed: %s", key)}
		}
	}

	rawId, ok := envelope["id"]
	if !ok {
		return Reply{}, &ProtocolViolation{Reason: "missing id in reply"}
	}
	var id any
	if err := json.Unmarshal(rawId, &id); err != nil {
		return Reply{}, &ProtocolViolation{Reason: "malformed id in reply", Cause: err}
	}

	if rawErr, ok := envelope["error"]; ok && !isJsonNull(rawErr) {
		var message string
		if err := json.Unmarshal(rawErr, &message); err == nil {
			return Reply{Id: id, Err: &RPCError{Code: UncodedError, Message: message}}, nil
		}

		var structured struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
			Data    any    `json:"data"`
		}
		if err := json.Unmarshal(rawErr, &structured); err != nil {
			return Reply{}, &ProtocolViolation{Reason: "malformed error in reply", Cause: err}
		}
		return Reply{Id: id, Err: &RPCError{
			Code:    structured.Code,
			Message: structured.Message,
			Data:    structured.Data,
		}}, nil
	}

	result, ok := envelope["result"]
	if !ok {
		result = json.RawMessage("null")
	}
	return Reply{Id: id, Result: result}, nil
}

func isJsonNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
