package hubspot_test

import (
	"testing"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
)

type auditFields struct {
	CreatedBy string `json:"hs_created_by_user_id"`
}

type dealFields struct {
	auditFields

	Name     string `json:"dealname"`
	Amount   string `json:"amount,omitempty"`
	Stage    string `json:"dealstage"`
	Internal string `json:"-"`
	Untagged string
	hidden   string
}

type namedFields map[string]string

func (namedFields) PropertyNames() []string {
	return []string{"custom_a", "custom_b"}
}

type pointerNamed struct{}

func (*pointerNamed) PropertyNames() []string {
	return []string{"from_pointer"}
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	_ = dealFields{hidden: ""}

	assert.Equal(t,
		[]string{"hs_created_by_user_id", "dealname", "amount", "dealstage", "Untagged"},
		hubspot.FieldNames[dealFields]())
	assert.Equal(t, hubspot.FieldNames[dealFields](), hubspot.FieldNames[*dealFields]())
	assert.Empty(t, hubspot.FieldNames[hubspot.OptionNotDesired]())
	assert.Empty(t, hubspot.FieldNames[map[string]string]())
	assert.Empty(t, hubspot.FieldNames[[]string]())
	assert.Equal(t, []string{"custom_a", "custom_b"}, hubspot.FieldNames[namedFields]())
	assert.Equal(t, []string{"from_pointer"}, hubspot.FieldNames[pointerNamed]())
	assert.Equal(t, []string{"hs_note_body", "hs_timestamp", "hubspot_owner_id"}, hubspot.FieldNames[hubspot.NoteProperties]())
}
