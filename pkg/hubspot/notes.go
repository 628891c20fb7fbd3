package hubspot

import "time"

// NoteProperties are the properties of a note engagement.
type NoteProperties struct {
	Body      string    `json:"hs_note_body"               yaml:"hs_note_body"`
	Timestamp time.Time `json:"hs_timestamp"               yaml:"hs_timestamp"`
	OwnerID   string    `json:"hubspot_owner_id,omitempty" yaml:"hubspot_owner_id,omitempty"`
}

// Note is the body of a note create call.
type Note = NewRecord[NoteProperties]

// NoteRecord is a created note.
type NoteRecord = Record[NoteProperties, OptionNotDesired, OptionNotDesired]

// NewNote starts a note stamped with the current time.
func NewNote(body string) *Note {
	return WithProperties(NoteProperties{
		Body:      body,
		Timestamp: time.Now().UTC(),
	})
}

// NewOwnedNote starts a note assigned to an owner.
func NewOwnedNote(body, ownerID string) *Note {
	note := NewNote(body)
	note.Properties.OwnerID = ownerID

	return note
}
