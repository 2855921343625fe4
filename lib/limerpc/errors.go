package limerpc

import "fmt"

// UncodedError is the code assigned when the server reports an error as a
// bare string instead of the standard object.
const UncodedError = -1

// ConfigurationError reports a credential field missing at construction
// time. Fatal, not retryable.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("limerpc: missing required credential field %q", e.Field)
}

// ProtocolViolation reports a reply body that does not conform to the
// remote control wire format. The call that produced it is aborted with no
// partial result; a fresh call may re-authenticate and succeed.
type ProtocolViolation struct {
	Reason string
	Cause  error
}

func (e *ProtocolViolation) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("limerpc: protocol violation: %s: %s", e.Reason, e.Cause)
	}
	return fmt.Sprintf("limerpc: protocol violation: %s", e.Reason)
}

func (e *ProtocolViolation) Unwrap() error { return e.Cause }

// AuthenticationError reports a session key that failed validation after an
// authentication attempt. Token carries whatever raw value the server
// returned, for diagnostics.
type AuthenticationError struct {
	Url   string
	Token any
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("limerpc: failed to validate session key: url=%s session_key=%v", e.Url, e.Token)
}

// InvalidParameterError reports an out-of-enumeration argument. It is
// returned before any network call is made.
type InvalidParameterError struct {
	Param   string
	Value   string
	Allowed []string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("limerpc: invalid %s %q, must be one of %v", e.Param, e.Value, e.Allowed)
}

// RPCError is a failure the server reported inside a well-formed reply
// envelope.
type RPCError struct {
	Code    int
	Message string
	Data    any
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("limerpc: rpc error %d: %s", e.Code, e.Message)
}
