package hsclient

import (
	"github.com/fivetwenty-io/hubspot-client/internal/client"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Objects is the handle for one object kind. The shapes of its records are
// picked per call site with Basic and Batch.
type Objects struct {
	client *client.Client
	kind   hubspot.ObjectType
}

// Kind returns the object kind of the handle.
func (o *Objects) Kind() hubspot.ObjectType {
	return o.kind
}

// Associations returns the associations API for records of this kind.
func (o *Objects) Associations() hubspot.AssociationsAPI {
	return client.NewAssociationsClient(o.client.HTTPClient(), o.kind)
}

// Basic returns the single record API of o for the given shapes.
func Basic[P, H, A any](o *Objects) hubspot.BasicAPI[P, H, A] {
	return client.NewBasicClient[P, H, A](o.client.HTTPClient(), o.kind)
}

// Batch returns the batch API of o for the given shapes.
func Batch[P, H, A any](o *Objects) hubspot.BatchAPI[P, H, A] {
	return client.NewBatchClient[P, H, A](o.client.HTTPClient(), o.kind)
}
