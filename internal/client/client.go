package client

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Client owns the transport shared by every operation set. Operation sets
// built from it hold the same *http.Client, so they share one credential and
// one connection pool.
type Client struct {
	httpClient *http.Client
	portalID   string
	logger     hubspot.Logger

	// Resource clients
	owners *OwnersClient
	notes  *NotesClient
}

// New validates config and creates the shared transport. Domain, token and
// portal id are checked in that order.
func New(config *hubspot.Config) (*Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	if strings.TrimSpace(config.Domain) == "" {
		return nil, hubspot.ErrMissingDomain
	}

	if strings.TrimSpace(config.Token) == "" {
		return nil, hubspot.ErrMissingToken
	}

	if strings.TrimSpace(config.PortalID) == "" {
		return nil, hubspot.ErrMissingPortalID
	}

	tokenSource, err := auth.NewTokenSource(config.Token, config.TokenSource)
	if err != nil {
		return nil, fmt.Errorf("creating token source: %w", err)
	}

	httpClient := http.NewClient(BaseURL(config.Domain), tokenSource, transportOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		portalID:   config.PortalID,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func transportOptions(config *hubspot.Config) []http.Option {
	opts := []http.Option{
		http.WithUserAgent(config.UserAgent),
		http.WithDebug(config.Debug),
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.HTTPClient != nil {
		opts = append(opts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}

func (c *Client) initializeResourceClients() {
	c.owners = NewOwnersClient(c.httpClient)
	c.notes = NewNotesClient(c.httpClient)
}

// BaseURL turns a configured domain into the base URL of every request:
// surrounding whitespace and a trailing slash are dropped and "https://" is
// added when no scheme is present.
func BaseURL(domain string) string {
	base := strings.TrimSuffix(strings.TrimSpace(domain), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = constants.DefaultScheme + base
	}

	return base
}

// HTTPClient returns the shared transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// PortalID returns the account id the client was built for.
func (c *Client) PortalID() string {
	return c.portalID
}

// Logger returns the configured logger, which may be nil.
func (c *Client) Logger() hubspot.Logger {
	return c.logger
}

// Owners returns the owners client.
func (c *Client) Owners() *OwnersClient {
	return c.owners
}

// Notes returns the notes client.
func (c *Client) Notes() *NotesClient {
	return c.notes
}
