package hubspot_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		structured bool
		want       string
	}{
		{
			name:       "structured body",
			status:     http.StatusBadRequest,
			body:       `{"status":"error","message":"Property values were not valid","correlationId":"abc","category":"VALIDATION_ERROR","context":{"properties":["email"]}}`,
			structured: true,
			want:       `VALIDATION_ERROR: Property values were not valid, properties: ["email"]`,
		},
		{
			name:   "missing properties context",
			status: http.StatusNotFound,
			body:   `{"status":"error","message":"Object not found","category":"OBJECT_NOT_FOUND"}`,
			want:   `{"status":"error","message":"Object not found","category":"OBJECT_NOT_FOUND"}`,
		},
		{
			name:       "extra context keys are ignored",
			status:     http.StatusBadRequest,
			body:       `{"message":"m","category":"VALIDATION_ERROR","context":{"properties":["a"],"count":3}}`,
			structured: true,
			want:       `VALIDATION_ERROR: m, properties: ["a"]`,
		},
		{
			name:       "numeric status",
			status:     http.StatusBadRequest,
			body:       `{"status":400,"message":"m","category":"VALIDATION_ERROR","context":{"properties":["a"]}}`,
			structured: true,
			want:       `VALIDATION_ERROR: m, properties: ["a"]`,
		},
		{
			name:       "empty message",
			status:     http.StatusBadRequest,
			body:       `{"message":"","category":"VALIDATION_ERROR","context":{"properties":[]}}`,
			structured: true,
			want:       `VALIDATION_ERROR: , properties: []`,
		},
		{
			name:   "missing message",
			status: http.StatusBadRequest,
			body:   `{"category":"VALIDATION_ERROR","context":{"properties":["a"]}}`,
			want:   `{"category":"VALIDATION_ERROR","context":{"properties":["a"]}}`,
		},
		{
			name:   "properties not a list",
			status: http.StatusBadRequest,
			body:   `{"message":"m","category":"VALIDATION_ERROR","context":{"properties":"a"}}`,
			want:   `{"message":"m","category":"VALIDATION_ERROR","context":{"properties":"a"}}`,
		},
		{
			name:   "not json",
			status: http.StatusBadGateway,
			body:   "<html>bad gateway</html>",
			want:   "<html>bad gateway</html>",
		},
		{
			name:   "empty body",
			status: http.StatusServiceUnavailable,
			want:   "remote error: status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			remoteErr := hubspot.NewRemoteError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.structured, remoteErr.Structured())
			assert.Equal(t, tt.want, remoteErr.Error())
			assert.Equal(t, tt.status, remoteErr.StatusCode)
		})
	}
}

func TestRemoteError_Accessors(t *testing.T) {
	t.Parallel()

	remoteErr := hubspot.NewRemoteError(http.StatusConflict,
		[]byte(`{"message":"Contact already exists","category":"CONFLICT","correlationId":"c-1"}`))

	assert.Equal(t, "CONFLICT", remoteErr.Category())
	assert.Equal(t, "Contact already exists", remoteErr.Message())
	assert.Equal(t, "c-1", remoteErr.CorrelationID())

	raw := hubspot.NewRemoteError(http.StatusInternalServerError, []byte("oops"))
	assert.Empty(t, raw.Category())
	assert.Empty(t, raw.Message())
	assert.Empty(t, raw.CorrelationID())
}

func TestRemoteError_LenientResponse(t *testing.T) {
	t.Parallel()

	remoteErr := hubspot.NewRemoteError(http.StatusBadRequest, []byte(`{
		"status": 400,
		"message": "Property values were not valid",
		"category": "VALIDATION_ERROR",
		"correlationId": "c-2",
		"context": {"properties": ["email", "phone"], "count": 3},
		"errors": [{"message": "bad email", "context": {"propertyName": ["email"], "limit": 10}}]
	}`))

	require.True(t, remoteErr.Structured())
	assert.Equal(t, []string{"email", "phone"}, remoteErr.Properties())

	require.NotNil(t, remoteErr.Response)
	assert.Equal(t, "400", remoteErr.Response.Status)
	assert.Equal(t, "c-2", remoteErr.CorrelationID())
	assert.Equal(t, map[string][]string{"properties": {"email", "phone"}}, remoteErr.Response.Context)
	require.Len(t, remoteErr.Response.Errors, 1)
	assert.Equal(t, map[string][]string{"propertyName": {"email"}}, remoteErr.Response.Errors[0].Context)

	raw := hubspot.NewRemoteError(http.StatusInternalServerError, []byte("oops"))
	assert.Nil(t, raw.Properties())
	assert.Nil(t, raw.Response)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want hubspot.ErrorKind
	}{
		{name: "nil", err: nil, want: hubspot.KindUnknown},
		{name: "plain", err: errors.New("boom"), want: hubspot.KindUnknown},
		{name: "json", err: &hubspot.JSONError{Err: errors.New("bad")}, want: hubspot.KindJSON},
		{name: "http", err: &hubspot.HTTPError{Method: "GET", URL: "u", Err: errors.New("refused")}, want: hubspot.KindHTTP},
		{name: "remote", err: hubspot.NewRemoteError(http.StatusBadRequest, nil), want: hubspot.KindRemote},
		{name: "encoding", err: &hubspot.EncodingError{StatusCode: http.StatusOK, Body: []byte{0xff}}, want: hubspot.KindEncoding},
		{
			name: "wrapped remote",
			err:  fmt.Errorf("listing contacts: %w", hubspot.NewRemoteError(http.StatusBadRequest, nil)),
			want: hubspot.KindRemote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, hubspot.KindOf(tt.err))
			assert.NotEmpty(t, tt.want.String())
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	wrap := func(status int, body string) error {
		return fmt.Errorf("call: %w", hubspot.NewRemoteError(status, []byte(body)))
	}

	assert.True(t, hubspot.IsNotFound(wrap(http.StatusNotFound, "")))
	assert.True(t, hubspot.IsNotFound(wrap(http.StatusBadRequest, `{"message":"m","category":"OBJECT_NOT_FOUND"}`)))
	assert.False(t, hubspot.IsNotFound(wrap(http.StatusBadRequest, "")))

	assert.True(t, hubspot.IsUnauthorized(wrap(http.StatusUnauthorized, "")))
	assert.True(t, hubspot.IsUnauthorized(wrap(http.StatusForbidden, "")))
	assert.True(t, hubspot.IsUnauthorized(wrap(http.StatusBadRequest, `{"message":"m","category":"MISSING_SCOPES"}`)))

	assert.True(t, hubspot.IsRateLimited(wrap(http.StatusTooManyRequests, "")))
	assert.True(t, hubspot.IsValidation(wrap(http.StatusBadRequest, `{"message":"m","category":"VALIDATION_ERROR"}`)))
	assert.True(t, hubspot.IsConflict(wrap(http.StatusConflict, "")))

	plain := errors.New("plain")
	assert.False(t, hubspot.IsNotFound(plain))
	assert.False(t, hubspot.IsUnauthorized(plain))
	assert.False(t, hubspot.IsRateLimited(plain))
	assert.False(t, hubspot.IsValidation(plain))
	assert.False(t, hubspot.IsConflict(plain))
}

func TestJSONAndHTTPErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	require.ErrorIs(t, &hubspot.JSONError{Err: cause}, cause)
	require.ErrorIs(t, &hubspot.HTTPError{Err: cause}, cause)
	assert.Contains(t, (&hubspot.EncodingError{StatusCode: 200, Body: []byte{0xff, 0xfe}}).Error(), "2 bytes")
}
