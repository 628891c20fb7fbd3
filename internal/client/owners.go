package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// OwnersClient implements hubspot.OwnersAPI.
type OwnersClient struct {
	httpClient *http.Client
}

// NewOwnersClient creates a new owners client.
func NewOwnersClient(httpClient *http.Client) *OwnersClient {
	return &OwnersClient{
		httpClient: httpClient,
	}
}

// Read implements hubspot.OwnersAPI.Read.
func (c *OwnersClient) Read(ctx context.Context, id string, archived bool) (*hubspot.Owner, error) {
	path := constants.OwnersPath + "/" + url.PathEscape(id) + hubspot.NewQueryBuilder().Archived(archived).String()

	var owner hubspot.Owner

	err := c.httpClient.Get(ctx, path, &owner)
	if err != nil {
		return nil, fmt.Errorf("getting owner %s: %w", id, err)
	}

	return &owner, nil
}

// List implements hubspot.OwnersAPI.List.
func (c *OwnersClient) List(ctx context.Context, opts *hubspot.OwnersListOptions) (*hubspot.Page[hubspot.Owner], error) {
	if opts == nil {
		opts = &hubspot.OwnersListOptions{}
	}

	query := hubspot.NewQueryBuilder().
		Paging(opts.Limit, opts.After).
		Param(hubspot.QueryEmail, url.QueryEscape(opts.Email)).
		Archived(opts.Archived).
		String()

	var page hubspot.Page[hubspot.Owner]

	err := c.httpClient.Get(ctx, constants.OwnersPath+query, &page)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	return &page, nil
}
