package hsclient

import (
	"net/http"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"golang.org/x/oauth2"
)

// Builder collects client settings step by step. Build reports the first
// missing required value.
type Builder struct {
	config hubspot.Config
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Domain sets the API host.
func (b *Builder) Domain(domain string) *Builder {
	b.config.Domain = domain

	return b
}

// Token sets the private app access token.
func (b *Builder) Token(token string) *Builder {
	b.config.Token = token

	return b
}

// PortalID sets the account id.
func (b *Builder) PortalID(portalID string) *Builder {
	b.config.PortalID = portalID

	return b
}

// HTTPClient sets a pre-configured HTTP client.
func (b *Builder) HTTPClient(httpClient *http.Client) *Builder {
	b.config.HTTPClient = httpClient

	return b
}

// TokenSource sets the source of the Bearer credential.
func (b *Builder) TokenSource(source oauth2.TokenSource) *Builder {
	b.config.TokenSource = source

	return b
}

// Logger sets the logger and whether requests are logged.
func (b *Builder) Logger(logger hubspot.Logger, debug bool) *Builder {
	b.config.Logger = logger
	b.config.Debug = debug

	return b
}

// UserAgent overrides the User-Agent header.
func (b *Builder) UserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent

	return b
}

// Build validates the settings and creates the client.
func (b *Builder) Build() (*Client, error) {
	config := b.config

	return New(&config)
}
