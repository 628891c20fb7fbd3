package hubspot

import "context"

// ListOptions controls a list call. Limit <= 0 and an empty After are left
// out of the query. The extra name lists are appended after the names
// declared on the shapes, which lets map-backed shapes select fields.
type ListOptions struct {
	Limit                 int
	After                 string
	Archived              bool
	Properties            []string
	PropertiesWithHistory []string
	Associations          []string
}

// ReadOptions controls a single record read.
type ReadOptions struct {
	Archived              bool
	Properties            []string
	PropertiesWithHistory []string
	Associations          []string
}

// BasicAPI is the single record surface of one object kind.
type BasicAPI[P, H, A any] interface {
	List(ctx context.Context, opts *ListOptions) (*Page[Record[P, H, A]], error)
	Create(ctx context.Context, record *NewRecord[P]) (*Record[P, H, A], error)
	Read(ctx context.Context, id string, opts *ReadOptions) (*Record[P, H, A], error)
	Update(ctx context.Context, id string, properties P) (*Record[P, H, A], error)
	Archive(ctx context.Context, id string) error
}

// BatchAPI is the batch surface of one object kind. Read sends the shape
// values themselves in the request body.
type BatchAPI[P, H, A any] interface {
	Archive(ctx context.Context, ids []string) error
	Create(ctx context.Context, inputs []P) (*BatchResult[P, H, A], error)
	Read(ctx context.Context, ids []string, properties P, propertiesWithHistory H, associations A, archived bool) (*BatchResult[P, H, A], error)
	Update(ctx context.Context, ids []string, properties P) (*BatchResult[P, H, A], error)
}

// AssociationsAPI manages links from records of one object kind.
type AssociationsAPI interface {
	List(ctx context.Context, id string, to Pather, limit int, after string) (*Page[AssociationLink], error)
	Create(ctx context.Context, id string, to Pather, toID string, specs []AssociationSpec) (*CreatedAssociation, error)
	Delete(ctx context.Context, id string, to Pather, toID string) error
}

// OwnersAPI reads record owners.
type OwnersAPI interface {
	Read(ctx context.Context, id string, archived bool) (*Owner, error)
	List(ctx context.Context, opts *OwnersListOptions) (*Page[Owner], error)
}

// NotesAPI creates note engagements.
type NotesAPI interface {
	Create(ctx context.Context, note *Note) (*NoteRecord, error)
}
