package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// BasicClient implements hubspot.BasicAPI for one object kind.
type BasicClient[P, H, A any] struct {
	httpClient *http.Client
	objectType hubspot.Pather
}

// NewBasicClient creates a single record client bound to objectType.
func NewBasicClient[P, H, A any](httpClient *http.Client, objectType hubspot.Pather) *BasicClient[P, H, A] {
	return &BasicClient[P, H, A]{
		httpClient: httpClient,
		objectType: objectType,
	}
}

type updateRequest[P any] struct {
	Properties P `json:"properties"`
}

func (c *BasicClient[P, H, A]) path(segments ...string) string {
	return objectPath(constants.ObjectsV3Path, c.objectType, segments...)
}

// List implements hubspot.BasicAPI.List.
func (c *BasicClient[P, H, A]) List(ctx context.Context, opts *hubspot.ListOptions) (*hubspot.Page[hubspot.Record[P, H, A]], error) {
	if opts == nil {
		opts = &hubspot.ListOptions{}
	}

	query := hubspot.BuildQuery(
		opts.Limit,
		opts.After,
		fieldNames[P](opts.Properties),
		fieldNames[H](opts.PropertiesWithHistory),
		fieldNames[A](opts.Associations),
		opts.Archived,
	)

	var page hubspot.Page[hubspot.Record[P, H, A]]

	err := c.httpClient.Get(ctx, c.path()+query, &page)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.objectType.ToPath(), err)
	}

	return &page, nil
}

// Create implements hubspot.BasicAPI.Create.
func (c *BasicClient[P, H, A]) Create(ctx context.Context, record *hubspot.NewRecord[P]) (*hubspot.Record[P, H, A], error) {
	var created hubspot.Record[P, H, A]

	err := c.httpClient.Post(ctx, c.path(), record, &created)
	if err != nil {
		return nil, fmt.Errorf("creating %s record: %w", c.objectType.ToPath(), err)
	}

	return &created, nil
}

// Read implements hubspot.BasicAPI.Read.
func (c *BasicClient[P, H, A]) Read(ctx context.Context, id string, opts *hubspot.ReadOptions) (*hubspot.Record[P, H, A], error) {
	if opts == nil {
		opts = &hubspot.ReadOptions{}
	}

	query := hubspot.BuildQuery(
		0,
		"",
		fieldNames[P](opts.Properties),
		fieldNames[H](opts.PropertiesWithHistory),
		fieldNames[A](opts.Associations),
		opts.Archived,
	)

	var record hubspot.Record[P, H, A]

	err := c.httpClient.Get(ctx, c.path(id)+query, &record)
	if err != nil {
		return nil, fmt.Errorf("reading %s record %s: %w", c.objectType.ToPath(), id, err)
	}

	return &record, nil
}

// Update implements hubspot.BasicAPI.Update. Only properties are sent;
// history and associations in the result are left at their zero values
// unless the platform returns them.
func (c *BasicClient[P, H, A]) Update(ctx context.Context, id string, properties P) (*hubspot.Record[P, H, A], error) {
	var updated hubspot.Record[P, H, A]

	err := c.httpClient.Patch(ctx, c.path(id), updateRequest[P]{Properties: properties}, &updated)
	if err != nil {
		return nil, fmt.Errorf("updating %s record %s: %w", c.objectType.ToPath(), id, err)
	}

	return &updated, nil
}

// Archive implements hubspot.BasicAPI.Archive.
func (c *BasicClient[P, H, A]) Archive(ctx context.Context, id string) error {
	err := c.httpClient.Delete(ctx, c.path(id), nil)
	if err != nil {
		return fmt.Errorf("archiving %s record %s: %w", c.objectType.ToPath(), id, err)
	}

	return nil
}
