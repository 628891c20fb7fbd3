package hsclient_test

import (
	"net/http"
	"testing"

	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		cli, err := hsclient.New(nil)
		require.ErrorIs(t, err, hubspot.ErrConfigRequired)
		assert.Nil(t, cli)
	})

	t.Run("normalizes domain without touching the caller's config", func(t *testing.T) {
		t.Parallel()

		config := &hubspot.Config{Domain: " api.hubapi.com/ ", Token: "t", PortalID: " 42 "}

		cli, err := hsclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.hubapi.com", cli.BaseURL())
		assert.Equal(t, "42", cli.PortalID())
		assert.Equal(t, " api.hubapi.com/ ", config.Domain)
	})

	t.Run("new with token", func(t *testing.T) {
		t.Parallel()

		cli, err := hsclient.NewWithToken("http://localhost:8080", "t", "1")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cli.BaseURL())
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func() *hsclient.Builder
		wantErr error
	}{
		{
			name:    "empty builder reports the domain",
			build:   hsclient.NewBuilder,
			wantErr: hubspot.ErrMissingDomain,
		},
		{
			name: "missing token",
			build: func() *hsclient.Builder {
				return hsclient.NewBuilder().Domain("api.hubapi.com").PortalID("1")
			},
			wantErr: hubspot.ErrMissingToken,
		},
		{
			name: "missing portal id",
			build: func() *hsclient.Builder {
				return hsclient.NewBuilder().Domain("api.hubapi.com").Token("t")
			},
			wantErr: hubspot.ErrMissingPortalID,
		},
		{
			name: "blank values count as missing",
			build: func() *hsclient.Builder {
				return hsclient.NewBuilder().Domain("api.hubapi.com").Token("  ").PortalID("1")
			},
			wantErr: hubspot.ErrMissingToken,
		},
		{
			name: "complete with http client",
			build: func() *hsclient.Builder {
				return hsclient.NewBuilder().
					Domain("api.hubapi.com").
					Token("t").
					PortalID("1").
					HTTPClient(&http.Client{}).
					UserAgent("tests/1.0")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli, err := tt.build().Build()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cli)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "1", cli.PortalID())
		})
	}
}

func TestClient_Handles(t *testing.T) {
	t.Parallel()

	cli, err := hsclient.NewWithToken("api.hubapi.com", "t", "1")
	require.NoError(t, err)

	assert.Equal(t, hubspot.Contacts, cli.Contacts().Kind())
	assert.Equal(t, hubspot.Companies, cli.Companies().Kind())
	assert.Equal(t, hubspot.Deals, cli.Deals().Kind())
	assert.Equal(t, hubspot.Tickets, cli.Tickets().Kind())
	assert.Equal(t, hubspot.Products, cli.Products().Kind())
	assert.Equal(t, hubspot.LineItems, cli.LineItems().Kind())
	assert.Equal(t, hubspot.Notes, cli.NoteObjects().Kind())
	assert.Equal(t, hubspot.ObjectType("2-99"), cli.Objects("2-99").Kind())
	assert.NotNil(t, cli.Owners())
	assert.NotNil(t, cli.Notes())
	assert.NotNil(t, cli.Deals().Associations())
}
