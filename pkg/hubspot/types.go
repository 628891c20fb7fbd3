package hubspot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// OptionNotDesired is the shape to use for history or associations when a
// call does not need them. It declares no fields, so it adds nothing to a
// query, and it is omitted when a record is encoded.
type OptionNotDesired struct{}

// Record is the envelope of every CRM object. P is the properties shape, H
// the properties-with-history shape and A the associations shape.
type Record[P, H, A any] struct {
	ID                    string     `json:"id"                              yaml:"id"`
	Properties            P          `json:"properties"                      yaml:"properties"`
	PropertiesWithHistory H          `json:"propertiesWithHistory,omitzero"  yaml:"propertiesWithHistory,omitempty"`
	Associations          A          `json:"associations,omitzero"           yaml:"associations,omitempty"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"             yaml:"createdAt,omitempty"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"             yaml:"updatedAt,omitempty"`
	Archived              *bool      `json:"archived,omitempty"              yaml:"archived,omitempty"`
	ArchivedAt            *time.Time `json:"archivedAt,omitempty"            yaml:"archivedAt,omitempty"`
}

// IsArchived reports whether the platform marked the record archived.
func (r *Record[P, H, A]) IsArchived() bool {
	return r.Archived != nil && *r.Archived
}

// PropertyHistory is one historical value of a property.
type PropertyHistory struct {
	Value           string    `json:"value"                     yaml:"value"`
	Timestamp       time.Time `json:"timestamp"                 yaml:"timestamp"`
	SourceType      string    `json:"sourceType,omitempty"      yaml:"sourceType,omitempty"`
	SourceID        string    `json:"sourceId,omitempty"        yaml:"sourceId,omitempty"`
	SourceLabel     string    `json:"sourceLabel,omitempty"     yaml:"sourceLabel,omitempty"`
	UpdatedByUserID int64     `json:"updatedByUserId,omitempty" yaml:"updatedByUserId,omitempty"`
}

// NewRecord is the body of a create call: properties plus optional
// associations to existing records.
type NewRecord[P any] struct {
	Properties   P                   `json:"properties"             yaml:"properties"`
	Associations []CreateAssociation `json:"associations,omitempty" yaml:"associations,omitempty"`
}

// WithProperties starts a create body from a properties value.
func WithProperties[P any](properties P) *NewRecord[P] {
	return &NewRecord[P]{Properties: properties}
}

// AttachBuiltInAssociations links the new record to each of ids using one of
// the platform defined association types.
func (r *NewRecord[P]) AttachBuiltInAssociations(link BuiltInAssociation, ids ...string) *NewRecord[P] {
	for _, id := range ids {
		r.Associations = append(r.Associations, CreateAssociation{
			To:    AssociationTarget{ID: id},
			Types: []AssociationSpec{link.Spec()},
		})
	}

	return r
}

// AttachAssociations appends explicit associations.
func (r *NewRecord[P]) AttachAssociations(associations ...CreateAssociation) *NewRecord[P] {
	r.Associations = append(r.Associations, associations...)

	return r
}

// Paging carries the cursor to the next page, if any.
type Paging struct {
	Next *PagingNext `json:"next,omitempty" yaml:"next,omitempty"`
}

// PagingNext is the next-page cursor and its ready-made link.
type PagingNext struct {
	After string `json:"after"          yaml:"after"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Page is one page of results. It is built fresh from each response.
type Page[T any] struct {
	Results []T     `json:"results"          yaml:"results"`
	Paging  *Paging `json:"paging,omitempty" yaml:"paging,omitempty"`
}

// NextAfter returns the cursor for the next page, or "" on the last page.
func (p *Page[T]) NextAfter() string {
	if p == nil || p.Paging == nil || p.Paging.Next == nil {
		return ""
	}

	return p.Paging.Next.After
}

// HasMore reports whether another page exists.
func (p *Page[T]) HasMore() bool {
	return p.NextAfter() != ""
}

// BatchResult is the response of a batch call.
type BatchResult[P, H, A any] struct {
	Status      string            `json:"status"                yaml:"status"`
	Results     []Record[P, H, A] `json:"results"               yaml:"results"`
	RequestedAt *time.Time        `json:"requestedAt,omitempty" yaml:"requestedAt,omitempty"`
	StartedAt   *time.Time        `json:"startedAt,omitempty"   yaml:"startedAt,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Links       map[string]string `json:"links,omitempty"       yaml:"links,omitempty"`
	NumErrors   int               `json:"numErrors,omitempty"   yaml:"numErrors,omitempty"`
	Errors      []ErrorResponse   `json:"errors,omitempty"      yaml:"errors,omitempty"`
}

// Batch statuses.
const (
	BatchStatusPending    = "PENDING"
	BatchStatusProcessing = "PROCESSING"
	BatchStatusCanceled   = "CANCELED"
	BatchStatusComplete   = "COMPLETE"
)

// ObjectID is a record id. The platform sends ids as strings on objects and
// as numbers on associations; both decode into an ObjectID.
type ObjectID string

// UnmarshalJSON accepts a JSON string or a JSON integer.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""

		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string

		err := json.Unmarshal(trimmed, &s)
		if err != nil {
			return fmt.Errorf("decoding object id: %w", err)
		}

		*id = ObjectID(s)

		return nil
	}

	_, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidObjectID, trimmed)
	}

	*id = ObjectID(trimmed)

	return nil
}

func (id ObjectID) String() string {
	return string(id)
}
