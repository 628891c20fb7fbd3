package hubspot

// AssociationCategory tells who defined an association type.
type AssociationCategory string

// Association categories.
const (
	HubSpotDefined    AssociationCategory = "HUBSPOT_DEFINED"
	UserDefined       AssociationCategory = "USER_DEFINED"
	IntegratorDefined AssociationCategory = "INTEGRATOR_DEFINED"
)

// AssociationSpec selects one association type. It is the element of the
// body of an association create call and of CreateAssociation.Types.
type AssociationSpec struct {
	Category AssociationCategory `json:"associationCategory" yaml:"associationCategory"`
	TypeID   int                 `json:"associationTypeId"   yaml:"associationTypeId"`
}

// AssociationTarget is the record an association points to.
type AssociationTarget struct {
	ID string `json:"id" yaml:"id"`
}

// CreateAssociation links a record being created to an existing one.
type CreateAssociation struct {
	To    AssociationTarget `json:"to"    yaml:"to"`
	Types []AssociationSpec `json:"types" yaml:"types"`
}

// BuiltInAssociation is a platform defined association type id.
type BuiltInAssociation int

// Platform defined association types.
const (
	NoteToContact    BuiltInAssociation = 202
	NoteToCompany    BuiltInAssociation = 190
	NoteToDeal       BuiltInAssociation = 214
	NoteToTicket     BuiltInAssociation = 228
	ContactToCompany BuiltInAssociation = 279
	CompanyToContact BuiltInAssociation = 280
	DealToContact    BuiltInAssociation = 3
	ContactToDeal    BuiltInAssociation = 4
	DealToCompany    BuiltInAssociation = 341
	CompanyToDeal    BuiltInAssociation = 342
	DealToLineItem   BuiltInAssociation = 19
	LineItemToDeal   BuiltInAssociation = 20
)

// Spec returns the association spec for a built-in type.
func (b BuiltInAssociation) Spec() AssociationSpec {
	return AssociationSpec{Category: HubSpotDefined, TypeID: int(b)}
}

// NoteAssociationFor returns the built-in note association to kind.
func NoteAssociationFor(kind ObjectType) (BuiltInAssociation, bool) {
	switch kind {
	case Contacts:
		return NoteToContact, true
	case Companies:
		return NoteToCompany, true
	case Deals:
		return NoteToDeal, true
	case Tickets:
		return NoteToTicket, true
	default:
		return 0, false
	}
}

// AssociationType is the type of one link as reported by the platform.
type AssociationType struct {
	Category AssociationCategory `json:"category"        yaml:"category"`
	TypeID   int                 `json:"typeId"          yaml:"typeId"`
	Label    *string             `json:"label,omitempty" yaml:"label,omitempty"`
}

// AssociationLink is one item of an association list: the target record and
// every type linking it to the source.
type AssociationLink struct {
	ToObjectID       ObjectID          `json:"toObjectId"       yaml:"toObjectId"`
	AssociationTypes []AssociationType `json:"associationTypes" yaml:"associationTypes"`
}

// CreatedAssociation is the response of an association create call.
type CreatedAssociation struct {
	FromObjectTypeID string   `json:"fromObjectTypeId"         yaml:"fromObjectTypeId"`
	FromObjectID     ObjectID `json:"fromObjectId"             yaml:"fromObjectId"`
	ToObjectTypeID   string   `json:"toObjectTypeId,omitempty" yaml:"toObjectTypeId,omitempty"`
	ToObjectID       ObjectID `json:"toObjectId"               yaml:"toObjectId"`
	Labels           []string `json:"labels"                   yaml:"labels"`
}

// AssociatedObject is one association embedded in a record read with the
// associations query parameter.
type AssociatedObject struct {
	ID   ObjectID `json:"id"   yaml:"id"`
	Type string   `json:"type" yaml:"type"`
}

// AssociationResults is the value of one key of a record's associations,
// e.g. the "companies" field of an associations shape.
type AssociationResults struct {
	Results []AssociatedObject `json:"results"          yaml:"results"`
	Paging  *Paging            `json:"paging,omitempty" yaml:"paging,omitempty"`
}

// IDs returns the associated record ids in response order.
func (r *AssociationResults) IDs() []string {
	if r == nil {
		return nil
	}

	ids := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		ids = append(ids, result.ID.String())
	}

	return ids
}
