package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/hubspot-client/internal/http"
)

// TestToken is the credential every test transport sends.
const TestToken = "test-token"

// NewTestHTTPClient creates a transport pointed at baseURL with TestToken.
func NewTestHTTPClient(baseURL string) *internalhttp.Client {
	return internalhttp.NewClient(baseURL, auth.NewStaticTokenSource(TestToken))
}

// RecordedRequest is what a test server saw.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     []byte
}

// DecodeBody unmarshals the recorded body into out.
func (r *RecordedRequest) DecodeBody(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, out))
}

// NewRecordingServer starts a server that records the single request it
// receives and answers with statusCode and response. A nil response writes
// an empty body; a string response is written verbatim.
func NewRecordingServer(t *testing.T, statusCode int, response interface{}) (*httptest.Server, *RecordedRequest) {
	t.Helper()

	recorded := &RecordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer "+TestToken, request.Header.Get("Authorization"))

		body, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		recorded.Method = request.Method
		recorded.Path = request.URL.EscapedPath()
		recorded.RawQuery = request.URL.RawQuery
		recorded.Body = body

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)

		switch resp := response.(type) {
		case nil:
		case string:
			_, _ = writer.Write([]byte(resp))
		default:
			_ = json.NewEncoder(writer).Encode(resp)
		}
	}))

	t.Cleanup(server.Close)

	return server, recorded
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
