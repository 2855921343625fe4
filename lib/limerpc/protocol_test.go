package limerpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReplySuccess(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1,"result":"abc","error":null}`))
	require.NoError(t, err)
	require.Nil(t, reply.Err)
	require.JSONEq(t, `"abc"`, string(reply.Result))
}

func TestParseReplyResultDefaultsToNull(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1}`))
	require.NoError(t, err)
	require.Nil(t, reply.Err)
	require.JSONEq(t, `null`, string(reply.Result))
}

func TestParseReplyJsonrpcKeyAllowed(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1,"jsonrpc":"2.0","result":[1,2]}`))
	require.NoError(t, err)
	require.JSONEq(t, `[1,2]`, string(reply.Result))
}

func TestParseReplyStringError(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1,"error":"bad creds"}`))
	require.NoError(t, err)
	require.NotNil(t, reply.Err)
	require.Equal(t, UncodedError, reply.Err.Code)
	require.Equal(t, "bad creds", reply.Err.Message)
}

func TestParseReplyStructuredError(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1,"error":{"message":"boom","code":42,"data":"ctx"}}`))
	require.NoError(t, err)
	require.NotNil(t, reply.Err)
	require.Equal(t, 42, reply.Err.Code)
	require.Equal(t, "boom", reply.Err.Message)
	require.Equal(t, "ctx", reply.Err.Data)
}

func TestParseReplyViolations(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>502 bad gateway</html>`},
		{name: "not an object", body: `[1,2,3]`},
		{name: "missing id", body: `{"result":"abc"}`},
		{name: "key not allowed", body: `{"id":1,"result":null,"status":"ok"}`},
	}

	parser := LenientReplyParser{}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := parser.ParseReply([]byte(test.body))

			var violation *ProtocolViolation
			require.ErrorAs(t, err, &violation)
		})
	}
}

func TestParseReplyNullErrorIsSuccess(t *testing.T) {
	parser := LenientReplyParser{}

	reply, err := parser.ParseReply([]byte(`{"id":1,"result":7,"error":null}`))
	require.NoError(t, err)
	require.Nil(t, reply.Err)
	require.JSONEq(t, `7`, string(reply.Result))

	// sanity check that ProtocolViolation does not leak out of the happy path
	require.False(t, errors.As(err, new(*ProtocolViolation)))
}
