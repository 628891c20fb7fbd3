package hubspot

import "time"

// Owner is a user that can be assigned as the owner of CRM records.
type Owner struct {
	ID        string     `json:"id"                  yaml:"id"`
	Email     string     `json:"email"               yaml:"email"`
	FirstName string     `json:"firstName"           yaml:"firstName"`
	LastName  string     `json:"lastName"            yaml:"lastName"`
	UserID    int64      `json:"userId"              yaml:"userId"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Archived  bool       `json:"archived"            yaml:"archived"`
	Teams     []Team     `json:"teams,omitempty"     yaml:"teams,omitempty"`
}

// FullName joins first and last name.
func (o *Owner) FullName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}

// Team is a team an owner belongs to.
type Team struct {
	ID      string `json:"id"      yaml:"id"`
	Name    string `json:"name"    yaml:"name"`
	Primary bool   `json:"primary" yaml:"primary"`
}

// OwnersListOptions filters an owner listing.
type OwnersListOptions struct {
	Limit    int
	After    string
	Email    string
	Archived bool
}
