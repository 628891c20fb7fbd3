package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *hubspot.Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: hubspot.ErrConfigRequired,
		},
		{
			name:    "everything missing reports domain first",
			config:  &hubspot.Config{},
			wantErr: hubspot.ErrMissingDomain,
		},
		{
			name:    "missing token",
			config:  &hubspot.Config{Domain: "api.hubapi.com", PortalID: "123"},
			wantErr: hubspot.ErrMissingToken,
		},
		{
			name:    "missing portal id",
			config:  &hubspot.Config{Domain: "api.hubapi.com", Token: "t"},
			wantErr: hubspot.ErrMissingPortalID,
		},
		{
			name:   "complete",
			config: &hubspot.Config{Domain: "api.hubapi.com", Token: "t", PortalID: "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "123", client.PortalID())
			assert.Equal(t, "https://api.hubapi.com", client.HTTPClient().BaseURL())
			assert.NotNil(t, client.Owners())
			assert.NotNil(t, client.Notes())
		})
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://api.hubapi.com", BaseURL("api.hubapi.com"))
	assert.Equal(t, "https://api.hubapi.com", BaseURL(" api.hubapi.com/ "))
	assert.Equal(t, "http://127.0.0.1:8080", BaseURL("http://127.0.0.1:8080/"))
	assert.Equal(t, "https://eu1.hubapi.com", BaseURL("https://eu1.hubapi.com"))
}

func TestNew_SharedTransport(t *testing.T) {
	t.Parallel()

	var authHeaders []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authHeaders = append(authHeaders, request.Header.Get("Authorization"))
		_, _ = writer.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client, err := New(&hubspot.Config{
		Domain:      server.URL,
		Token:       "ignored",
		PortalID:    "1",
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "from-source"}),
		HTTPClient:  server.Client(),
	})
	require.NoError(t, err)

	_, err = client.Owners().List(context.Background(), nil)
	require.NoError(t, err)

	_, err = NewBasicClient[map[string]string, hubspot.OptionNotDesired, hubspot.OptionNotDesired](client.HTTPClient(), hubspot.Tickets).
		List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer from-source", "Bearer from-source"}, authHeaders)
}
