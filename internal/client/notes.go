package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NotesClient implements hubspot.NotesAPI.
type NotesClient struct {
	httpClient *http.Client
}

// NewNotesClient creates a new notes client.
func NewNotesClient(httpClient *http.Client) *NotesClient {
	return &NotesClient{
		httpClient: httpClient,
	}
}

// Create implements hubspot.NotesAPI.Create.
func (c *NotesClient) Create(ctx context.Context, note *hubspot.Note) (*hubspot.NoteRecord, error) {
	var created hubspot.NoteRecord

	err := c.httpClient.Post(ctx, objectPath(constants.ObjectsV4Path, hubspot.Notes), note, &created)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	return &created, nil
}
