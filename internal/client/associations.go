package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// AssociationsClient implements hubspot.AssociationsAPI for records of one
// object kind.
type AssociationsClient struct {
	httpClient *http.Client
	objectType hubspot.Pather
}

// NewAssociationsClient creates an associations client bound to objectType.
func NewAssociationsClient(httpClient *http.Client, objectType hubspot.Pather) *AssociationsClient {
	return &AssociationsClient{
		httpClient: httpClient,
		objectType: objectType,
	}
}

func (c *AssociationsClient) path(id string, to hubspot.Pather, segments ...string) string {
	base := objectPath(constants.ObjectsV4Path, c.objectType, id, constants.AssociationsSegment)

	return objectPath(base, to, segments...)
}

// List implements hubspot.AssociationsAPI.List.
func (c *AssociationsClient) List(ctx context.Context, id string, to hubspot.Pather, limit int, after string) (*hubspot.Page[hubspot.AssociationLink], error) {
	path := c.path(id, to) + hubspot.BuildPagingQuery(limit, after)

	var page hubspot.Page[hubspot.AssociationLink]

	err := c.httpClient.Get(ctx, path, &page)
	if err != nil {
		return nil, fmt.Errorf("listing %s associations of %s %s: %w", to.ToPath(), c.objectType.ToPath(), id, err)
	}

	return &page, nil
}

// Create implements hubspot.AssociationsAPI.Create. Existing labels between
// the two records are kept; specs adds to them.
func (c *AssociationsClient) Create(
	ctx context.Context,
	id string,
	to hubspot.Pather,
	toID string,
	specs []hubspot.AssociationSpec,
) (*hubspot.CreatedAssociation, error) {
	if specs == nil {
		specs = []hubspot.AssociationSpec{}
	}

	var created hubspot.CreatedAssociation

	err := c.httpClient.Put(ctx, c.path(id, to, toID), specs, &created)
	if err != nil {
		return nil, fmt.Errorf("associating %s %s with %s %s: %w", c.objectType.ToPath(), id, to.ToPath(), toID, err)
	}

	return &created, nil
}

// Delete implements hubspot.AssociationsAPI.Delete. Every label between the
// two records is removed.
func (c *AssociationsClient) Delete(ctx context.Context, id string, to hubspot.Pather, toID string) error {
	err := c.httpClient.Delete(ctx, c.path(id, to, toID), nil)
	if err != nil {
		return fmt.Errorf("removing associations between %s %s and %s %s: %w", c.objectType.ToPath(), id, to.ToPath(), toID, err)
	}

	return nil
}
