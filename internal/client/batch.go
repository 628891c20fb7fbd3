package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// BatchClient implements hubspot.BatchAPI for one object kind.
type BatchClient[P, H, A any] struct {
	httpClient *http.Client
	objectType hubspot.Pather
}

// NewBatchClient creates a batch client bound to objectType.
func NewBatchClient[P, H, A any](httpClient *http.Client, objectType hubspot.Pather) *BatchClient[P, H, A] {
	return &BatchClient[P, H, A]{
		httpClient: httpClient,
		objectType: objectType,
	}
}

type batchInputs[T any] struct {
	Inputs []T `json:"inputs"`
}

type batchIDInput struct {
	ID string `json:"id"`
}

type batchCreateInput[P any] struct {
	Properties P `json:"properties"`
}

type batchUpdateInput[P any] struct {
	ID         string `json:"id"`
	Properties P      `json:"properties"`
}

type batchReadRequest[P, H, A any] struct {
	Properties            P              `json:"properties"`
	PropertiesWithHistory H              `json:"propertiesWithHistory"`
	Associations          A              `json:"associations"`
	Archived              bool           `json:"archived"`
	Inputs                []batchIDInput `json:"inputs"`
}

func idInputs(ids []string) []batchIDInput {
	inputs := make([]batchIDInput, 0, len(ids))
	for _, id := range ids {
		inputs = append(inputs, batchIDInput{ID: id})
	}

	return inputs
}

func (c *BatchClient[P, H, A]) batchPath(action string) string {
	return objectPath(constants.ObjectsV3Path, c.objectType, constants.BatchSegment, action)
}

// Archive implements hubspot.BatchAPI.Archive.
func (c *BatchClient[P, H, A]) Archive(ctx context.Context, ids []string) error {
	body := batchInputs[batchIDInput]{Inputs: idInputs(ids)}

	err := c.httpClient.Delete(ctx, c.batchPath(constants.BatchArchive), body)
	if err != nil {
		return fmt.Errorf("batch archiving %s: %w", c.objectType.ToPath(), err)
	}

	return nil
}

// Create implements hubspot.BatchAPI.Create. One input is sent per element
// of inputs, in order.
func (c *BatchClient[P, H, A]) Create(ctx context.Context, inputs []P) (*hubspot.BatchResult[P, H, A], error) {
	body := batchInputs[batchCreateInput[P]]{Inputs: make([]batchCreateInput[P], 0, len(inputs))}
	for _, properties := range inputs {
		body.Inputs = append(body.Inputs, batchCreateInput[P]{Properties: properties})
	}

	var result hubspot.BatchResult[P, H, A]

	err := c.httpClient.Post(ctx, objectPath(constants.ObjectsV4Path, c.objectType), body, &result)
	if err != nil {
		return nil, fmt.Errorf("batch creating %s: %w", c.objectType.ToPath(), err)
	}

	return &result, nil
}

// Read implements hubspot.BatchAPI.Read. The shape values are sent as they
// are in the body, not as field name lists.
func (c *BatchClient[P, H, A]) Read(
	ctx context.Context,
	ids []string,
	properties P,
	propertiesWithHistory H,
	associations A,
	archived bool,
) (*hubspot.BatchResult[P, H, A], error) {
	body := batchReadRequest[P, H, A]{
		Properties:            properties,
		PropertiesWithHistory: propertiesWithHistory,
		Associations:          associations,
		Archived:              archived,
		Inputs:                idInputs(ids),
	}

	var result hubspot.BatchResult[P, H, A]

	err := c.httpClient.Post(ctx, c.batchPath(constants.BatchRead), body, &result)
	if err != nil {
		return nil, fmt.Errorf("batch reading %s: %w", c.objectType.ToPath(), err)
	}

	return &result, nil
}

// Update implements hubspot.BatchAPI.Update. The same properties are applied
// to every id.
func (c *BatchClient[P, H, A]) Update(ctx context.Context, ids []string, properties P) (*hubspot.BatchResult[P, H, A], error) {
	body := batchInputs[batchUpdateInput[P]]{Inputs: make([]batchUpdateInput[P], 0, len(ids))}
	for _, id := range ids {
		body.Inputs = append(body.Inputs, batchUpdateInput[P]{ID: id, Properties: properties})
	}

	var result hubspot.BatchResult[P, H, A]

	err := c.httpClient.Patch(ctx, c.batchPath(constants.BatchUpdate), body, &result)
	if err != nil {
		return nil, fmt.Errorf("batch updating %s: %w", c.objectType.ToPath(), err)
	}

	return &result, nil
}
