// Package hubspot provides types, interfaces, and helpers for working with
// the HubSpot CRM v3/v4 API.
//
// # Overview
//
// The hubspot package defines the record envelope, paging and batch types,
// association types and the capability interfaces (BasicAPI, BatchAPI,
// AssociationsAPI, OwnersAPI, NotesAPI). The hsclient package provides the
// concrete implementation. Most consumers import hsclient to construct a
// client and then work with the interfaces exposed here.
//
// # Shapes
//
// A record is parametrized by three caller-chosen shapes: its properties, its
// properties with history and its associations. The field names declared on
// a shape (its json tags) select what the platform returns, so a shape is
// both the decode target and the query:
//
//	type ContactProperties struct {
//	  Email     string `json:"email"`
//	  FirstName string `json:"firstname"`
//	}
//
//	type ContactAssociations struct {
//	  Companies *hubspot.AssociationResults `json:"companies"`
//	}
//
//	contacts := hsclient.Basic[ContactProperties, hubspot.OptionNotDesired, ContactAssociations](cli.Contacts())
//	page, err := contacts.List(ctx, &hubspot.ListOptions{Limit: 10})
//
// Use OptionNotDesired for a shape the call does not need.
//
// # Queries and pagination
//
// BuildQuery and BuildPagingQuery assemble the raw query strings used by the
// object and association endpoints. Paging is cursor based: pass
// Page.NextAfter() as ListOptions.After to fetch the next page.
//
// # Errors
//
// Calls fail with exactly one of JSONError, HTTPError, RemoteError or
// EncodingError. KindOf classifies an error, and helpers such as IsNotFound,
// IsRateLimited and IsValidation branch on common platform failures.
package hubspot
