//go:build integration

package integration

import (
	"testing"

	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
}

type contactAssociations struct {
	Companies *hubspot.AssociationResults `json:"companies,omitempty"`
}

type companyProperties struct {
	Name string `json:"name"`
}

// TestWorkflow_ContactWithCompany creates a company and a linked contact,
// reads them back and archives both.
func TestWorkflow_ContactWithCompany(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := Context(t)

	companies := hsclient.Batch[companyProperties, hubspot.OptionNotDesired, hubspot.OptionNotDesired](client.Companies())
	contacts := hsclient.Basic[contactProperties, hubspot.OptionNotDesired, contactAssociations](client.Contacts())

	name := GenerateTestName("integration-company")

	created, err := companies.Create(ctx, []companyProperties{{Name: name}})
	require.NoError(t, err)
	require.Len(t, created.Results, 1)

	companyID := created.Results[0].ID

	defer func() {
		assert.NoError(t, companies.Archive(ctx, []string{companyID}))
	}()

	email := GenerateTestName("integration") + "@example.com"

	contact, err := contacts.Create(ctx, hubspot.WithProperties(contactProperties{Email: email, FirstName: "Integration"}).
		AttachBuiltInAssociations(hubspot.ContactToCompany, companyID))
	require.NoError(t, err)

	defer func() {
		assert.NoError(t, contacts.Archive(ctx, contact.ID))
	}()

	read, err := contacts.Read(ctx, contact.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, email, read.Properties.Email)
	assert.Contains(t, read.Associations.Companies.IDs(), companyID)

	links, err := client.Companies().Associations().List(ctx, companyID, hubspot.Contacts, 10, "")
	require.NoError(t, err)
	require.NotEmpty(t, links.Results)
	assert.Equal(t, hubspot.ObjectID(contact.ID), links.Results[0].ToObjectID)
}

// TestWorkflow_ValidationError checks that a rejected property surfaces as a
// structured validation error.
func TestWorkflow_ValidationError(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)

	contacts := hsclient.Basic[map[string]string, hubspot.OptionNotDesired, hubspot.OptionNotDesired](client.Contacts())

	_, err := contacts.Create(Context(t), hubspot.WithProperties(map[string]string{
		GenerateTestName("no_such_property"): "x",
	}))
	require.Error(t, err)
	assert.True(t, hubspot.IsValidation(err), "unexpected error: %v", err)
}

// TestWorkflow_Owners lists the owners of the account.
func TestWorkflow_Owners(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)

	owners, err := client.Owners().List(Context(t), &hubspot.OwnersListOptions{Limit: 10})
	require.NoError(t, err)

	for _, owner := range owners.Results {
		assert.NotEmpty(t, owner.ID)
	}
}
