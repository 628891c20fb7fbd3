package hubspot

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Pather is implemented by anything that names a CRM resource in a URL.
// ToPath must be stable and independent of String.
type Pather interface {
	ToPath() string
}

// ObjectType identifies a CRM object kind. Its value is the wire path
// segment, so custom object type ids such as "2-1234567" or "p_cars" are
// valid ObjectTypes as well.
type ObjectType string

// Standard CRM object kinds.
const (
	Contacts  ObjectType = "contacts"
	Companies ObjectType = "companies"
	Deals     ObjectType = "deals"
	Tickets   ObjectType = "tickets"
	Products  ObjectType = "products"
	LineItems ObjectType = "line_items"
	Quotes    ObjectType = "quotes"
	Notes     ObjectType = "notes"
	Calls     ObjectType = "calls"
	Emails    ObjectType = "emails"
	Meetings  ObjectType = "meetings"
	Tasks     ObjectType = "tasks"
)

var displayNames = map[ObjectType]string{
	Contacts:  "Contacts",
	Companies: "Companies",
	Deals:     "Deals",
	Tickets:   "Tickets",
	Products:  "Products",
	LineItems: "Line Items",
	Quotes:    "Quotes",
	Notes:     "Notes",
	Calls:     "Calls",
	Emails:    "Emails",
	Meetings:  "Meetings",
	Tasks:     "Tasks",
}

// StandardObjectTypes lists the built-in kinds in a stable order.
func StandardObjectTypes() []ObjectType {
	return []ObjectType{
		Contacts, Companies, Deals, Tickets, Products, LineItems,
		Quotes, Notes, Calls, Emails, Meetings, Tasks,
	}
}

// ToPath implements Pather.
func (t ObjectType) ToPath() string {
	return string(t)
}

// String returns the human readable name of the kind.
func (t ObjectType) String() string {
	if name, ok := displayNames[t]; ok {
		return name
	}

	return string(t)
}

// IsStandard reports whether t is one of the built-in kinds.
func (t ObjectType) IsStandard() bool {
	_, ok := displayNames[t]

	return ok
}

// ParseObjectType resolves user input such as "Line Items", "lineItems" or
// "line-items" to a kind. Custom object type ids ("2-123", "p_cars") are
// passed through unchanged.
func ParseObjectType(input string) (ObjectType, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrUnknownObjectType
	}

	if isCustomObjectID(trimmed) {
		return ObjectType(trimmed), nil
	}

	candidate := ObjectType(strcase.ToSnake(trimmed))
	if candidate.IsStandard() {
		return candidate, nil
	}

	// singular forms: "contact", "company", "line item"
	for _, known := range StandardObjectTypes() {
		if singular(known) == string(candidate) {
			return known, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownObjectType, input)
}

func singular(t ObjectType) string {
	path := string(t)
	if strings.HasSuffix(path, "ies") {
		return strings.TrimSuffix(path, "ies") + "y"
	}

	return strings.TrimSuffix(path, "s")
}

func isCustomObjectID(s string) bool {
	if strings.HasPrefix(s, "p_") {
		return true
	}

	prefix, rest, found := strings.Cut(s, "-")
	if !found || prefix == "" || rest == "" {
		return false
	}

	for _, r := range prefix + rest {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
