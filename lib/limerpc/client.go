package limerpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"limeharvest/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const remoteControlPath = "/index.php/admin/remotecontrol"

var defaultHeaders = map[string]string{
	"content-type": "application/json",
	"connection":   "keep-alive",
}

// Credentials configure access to one remote control endpoint. Url,
// Username and Password are all required; Headers may override the default
// request headers.
type Credentials struct {
	Url      string            `json:"url"`
	Username string            `json:"username"`
	Password string            `json:"password"`
	Headers  map[string]string `json:"headers"`
}

func (c Credentials) validate() error {
	if c.Url == "" {
		return &ConfigurationError{Field: "url"}
	}
	if c.Username == "" {
		return &ConfigurationError{Field: "username"}
	}
	if c.Password == "" {
		return &ConfigurationError{Field: "password"}
	}
	return nil
}

// The session is in exactly one of these states at any time. EnsureValid
// keys off the state instead of inspecting the underlying objects.
type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateValid
	stateInvalid
)

// Client talks to a LimeSurvey remote control endpoint. A session key is
// acquired lazily on the first call and refreshed transparently whenever it
// fails validation, so callers never manage token lifetime themselves.
//
// Not safe for concurrent use: re-authentication mutates session state read
// by every subsequent call. Callers sharing one client across goroutines
// must add their own mutual exclusion.
type Client struct {
	creds  Credentials
	parser ReplyParser

	http       *resty.Client
	sessionKey string
	state      sessionState
	nextId     int64
}

type ClientOption func(*Client)

// WithReplyParser overrides the reply parsing strategy. The default is
// LenientReplyParser.
func WithReplyParser(p ReplyParser) ClientOption {
	return func(c *Client) {
		c.parser = p
	}
}

func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		creds:  creds,
		parser: LenientReplyParser{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RemoteApiUrl is the full endpoint url requests are posted to.
func (c *Client) RemoteApiUrl() string {
	return strings.TrimRight(c.creds.Url, "/") + remoteControlPath
}

// Username returns the account name the client authenticates as.
func (c *Client) Username() string {
	return c.creds.Username
}

func (c *Client) newTransport() *resty.Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(c.creds.Url, "/"))
	headers := c.creds.Headers
	if len(headers) == 0 {
		headers = defaultHeaders
	}
	client.SetHeaders(headers)
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
	return client
}

func validSessionKey(key string) bool {
	return key != ""
}

// Authenticate always runs the full handshake, replacing the transport and
// the session key. Calling it repeatedly is safe; there is no silent no-op,
// so callers needing a forced refresh can rely on calling it directly.
// Normal operations should go through EnsureValid instead.
func (c *Client) Authenticate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Authenticate")
	defer span.End()

	slog.InfoContext(ctx, "authenticating remote control client", "url", c.creds.Url)

	c.state = stateInvalid
	c.sessionKey = ""
	c.http = c.newTransport()

	result, err := c.call(ctx, "get_session_key", map[string]any{
		"username": c.creds.Username,
		"password": c.creds.Password,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get_session_key failed")
		return err
	}

	var key string
	if err := json.Unmarshal(result, &key); err != nil || !validSessionKey(key) {
		// bad credentials come back as a result object like
		// {"status": "Invalid user name or password"}, anything that is
		// not a non-empty string fails validation
		var raw any
		json.Unmarshal(result, &raw)
		authErr := &AuthenticationError{Url: c.creds.Url, Token: raw}
		span.RecordError(authErr)
		span.SetStatus(codes.Error, "session key failed validation")
		return authErr
	}

	c.sessionKey = key
	c.state = stateValid
	slog.InfoContext(ctx, "acquired session key")
	return nil
}

// EnsureValid re-authenticates if the session was never established, the
// current key fails validation, or the transport handle is absent. With an
// already-valid session it performs zero round trips.
func (c *Client) EnsureValid(ctx context.Context) error {
	if c.state == stateValid && validSessionKey(c.sessionKey) && c.http != nil {
		return nil
	}
	return c.Authenticate(ctx)
}

// call issues one rpc request over the current transport and decodes the
// reply envelope. Failures the server reported come back as *RPCError.
func (c *Client) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	c.nextId++
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(request{Method: method, Params: params, Id: c.nextId}).
		Post(remoteControlPath)
	if err != nil {
		return nil, err
	}

	reply, err := c.parser.ParseReply(res.Body())
	if err != nil {
		return nil, err
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return reply.Result, nil
}

// invoke wraps one endpoint call the way every operation needs it: a valid
// session, a span, timing and error logging. The session key is injected
// into params. Errors are returned to the caller unchanged.
func (c *Client) invoke(ctx context.Context, endpoint string, params map[string]any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("client:%s", endpoint))
	defer span.End()

	slog.InfoContext(ctx, "sending remote control request", "endpoint", endpoint)
	start := time.Now()

	if err := c.EnsureValid(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ensure a valid session")
		return nil, err
	}

	params["sSessionKey"] = c.sessionKey
	result, err := c.call(ctx, endpoint, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		slog.ErrorContext(ctx, "remote control request failed", "endpoint", endpoint, "err", err)
		return nil, err
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
	slog.InfoContext(ctx, "remote control request completed",
		"endpoint", endpoint,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}
