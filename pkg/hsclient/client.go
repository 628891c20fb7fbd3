package hsclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/client"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Client is the entry point to the API. It is immutable and safe for
// concurrent use.
type Client struct {
	core *client.Client
}

// New creates a client from config. The caller's config is not modified.
func New(config *hubspot.Config) (*Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	normalized := *config
	normalized.Domain = strings.TrimSpace(normalized.Domain)
	normalized.Token = strings.TrimSpace(normalized.Token)
	normalized.PortalID = strings.TrimSpace(normalized.PortalID)

	core, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return &Client{core: core}, nil
}

// NewWithToken creates a client from the three required values.
func NewWithToken(domain, token, portalID string) (*Client, error) {
	return New(&hubspot.Config{
		Domain:   domain,
		Token:    token,
		PortalID: portalID,
	})
}

// PortalID returns the account id the client was built for.
func (c *Client) PortalID() string {
	return c.core.PortalID()
}

// BaseURL returns the scheme and host requests are sent to.
func (c *Client) BaseURL() string {
	return c.core.HTTPClient().BaseURL()
}

// Objects returns the handle for any object kind, including custom object
// type ids.
func (c *Client) Objects(kind hubspot.ObjectType) *Objects {
	return &Objects{
		client: c.core,
		kind:   kind,
	}
}

// Contacts returns the contacts handle.
func (c *Client) Contacts() *Objects { return c.Objects(hubspot.Contacts) }

// Companies returns the companies handle.
func (c *Client) Companies() *Objects { return c.Objects(hubspot.Companies) }

// Deals returns the deals handle.
func (c *Client) Deals() *Objects { return c.Objects(hubspot.Deals) }

// Tickets returns the tickets handle.
func (c *Client) Tickets() *Objects { return c.Objects(hubspot.Tickets) }

// Products returns the products handle.
func (c *Client) Products() *Objects { return c.Objects(hubspot.Products) }

// LineItems returns the line items handle.
func (c *Client) LineItems() *Objects { return c.Objects(hubspot.LineItems) }

// NoteObjects returns the notes handle for generic object operations. Use
// Notes to create notes with the engagement shape.
func (c *Client) NoteObjects() *Objects { return c.Objects(hubspot.Notes) }

// Owners returns the owners API.
func (c *Client) Owners() hubspot.OwnersAPI {
	return c.core.Owners()
}

// Notes returns the notes API.
func (c *Client) Notes() hubspot.NotesAPI {
	return c.core.Notes()
}
