package hsclient_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fivetwenty-io/hubspot-client/internal/testhelpers"
	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeToken = "pat-test"

type companyProperties struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

type contactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
}

type contactAssociations struct {
	Companies *hubspot.AssociationResults `json:"companies,omitempty"`
}

func newFakeClient(t *testing.T) (*hsclient.Client, *testhelpers.FakeHub) {
	t.Helper()

	hub := testhelpers.NewFakeHub(fakeToken)
	server := hub.Start(t)

	cli, err := hsclient.NewBuilder().
		Domain(server.URL).
		Token(fakeToken).
		PortalID("12345").
		HTTPClient(server.Client()).
		Build()
	require.NoError(t, err)

	return cli, hub
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWorkflow_ContactLifecycle(t *testing.T) {
	t.Parallel()

	cli, hub := newFakeClient(t)
	ctx := context.Background()

	companyID := hub.Seed("companies", map[string]string{"name": "HubSpot", "domain": "hubspot.com"})

	contacts := hsclient.Basic[contactProperties, hubspot.OptionNotDesired, contactAssociations](cli.Contacts())

	created, err := contacts.Create(ctx, hubspot.WithProperties(contactProperties{Email: "bh@hubspot.com", FirstName: "Brian"}).
		AttachBuiltInAssociations(hubspot.ContactToCompany, companyID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "bh@hubspot.com", created.Properties.Email)

	read, err := contacts.Read(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Brian", read.Properties.FirstName)
	assert.Equal(t, []string{companyID}, read.Associations.Companies.IDs())

	updated, err := contacts.Update(ctx, created.ID, contactProperties{Email: "brian@hubspot.com"})
	require.NoError(t, err)
	assert.Equal(t, "brian@hubspot.com", updated.Properties.Email)

	props, ok := hub.Properties("contacts", created.ID)
	require.True(t, ok)
	assert.Equal(t, "brian@hubspot.com", props["email"])

	links, err := cli.Contacts().Associations().List(ctx, created.ID, hubspot.Companies, 0, "")
	require.NoError(t, err)
	require.Len(t, links.Results, 1)
	assert.Equal(t, hubspot.ObjectID(companyID), links.Results[0].ToObjectID)

	require.NoError(t, cli.Contacts().Associations().Delete(ctx, created.ID, hubspot.Companies, companyID))

	links, err = cli.Contacts().Associations().List(ctx, created.ID, hubspot.Companies, 0, "")
	require.NoError(t, err)
	assert.Empty(t, links.Results)

	require.NoError(t, contacts.Archive(ctx, created.ID))
	assert.True(t, hub.IsArchived("contacts", created.ID))

	_, err = contacts.Read(ctx, created.ID, nil)
	require.Error(t, err)
	assert.True(t, hubspot.IsNotFound(err))

	archived, err := contacts.Read(ctx, created.ID, &hubspot.ReadOptions{Archived: true})
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())
}

func TestWorkflow_Paging(t *testing.T) {
	t.Parallel()

	cli, hub := newFakeClient(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		hub.Seed("companies", map[string]string{"name": name})
	}

	companies := hsclient.Basic[companyProperties, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Companies())

	var names []string

	opts := &hubspot.ListOptions{Limit: 2}

	for {
		page, err := companies.List(ctx, opts)
		require.NoError(t, err)

		for _, record := range page.Results {
			names = append(names, record.Properties.Name)
		}

		if !page.HasMore() {
			break
		}

		opts.After = page.NextAfter()
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
	assert.Contains(t, hub.Requests(), "GET /crm/v3/objects/companies?limit=2&properties=name,domain&archived=false")
}

func TestWorkflow_Batch(t *testing.T) {
	t.Parallel()

	cli, hub := newFakeClient(t)
	ctx := context.Background()

	batch := hsclient.Batch[companyProperties, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Companies())

	created, err := batch.Create(ctx, []companyProperties{{Name: "one"}, {Name: "two"}, {Name: "three"}})
	require.NoError(t, err)
	require.Len(t, created.Results, 3)

	ids := make([]string, 0, len(created.Results))
	for _, record := range created.Results {
		ids = append(ids, record.ID)
	}

	updated, err := batch.Update(ctx, append(ids, "999999"), companyProperties{Name: "renamed"})
	require.NoError(t, err)
	assert.Len(t, updated.Results, 3)
	assert.Equal(t, 1, updated.NumErrors)

	for _, id := range ids {
		props, ok := hub.Properties("companies", id)
		require.True(t, ok)
		assert.Equal(t, "renamed", props["name"])
	}

	read, err := batch.Read(ctx, ids, companyProperties{}, hubspot.OptionNotDesired{}, hubspot.OptionNotDesired{}, false)
	require.NoError(t, err)
	assert.Len(t, read.Results, 3)

	require.NoError(t, batch.Archive(ctx, ids[:2]))
	assert.True(t, hub.IsArchived("companies", ids[0]))
	assert.True(t, hub.IsArchived("companies", ids[1]))
	assert.False(t, hub.IsArchived("companies", ids[2]))
}

func TestWorkflow_NotesAndOwners(t *testing.T) {
	t.Parallel()

	cli, hub := newFakeClient(t)
	ctx := context.Background()

	hub.AddOwner(testhelpers.Owner{ID: "7", Email: "owner@example.com", FirstName: "Ada", LastName: "Lovelace", UserID: 70})
	dealID := hub.Seed("deals", map[string]string{"dealname": "Big deal"})

	owner, err := cli.Owners().Read(ctx, "7", false)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", owner.FullName())

	owners, err := cli.Owners().List(ctx, &hubspot.OwnersListOptions{Email: "owner@example.com"})
	require.NoError(t, err)
	require.Len(t, owners.Results, 1)

	_, err = cli.Owners().Read(ctx, "7", true)
	require.Error(t, err)
	assert.True(t, hubspot.IsNotFound(err))

	note := hubspot.NewOwnedNote("Kickoff call", owner.ID).AttachBuiltInAssociations(hubspot.NoteToDeal, dealID)

	created, err := cli.Notes().Create(ctx, note)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff call", created.Properties.Body)

	links, err := cli.Deals().Associations().List(ctx, dealID, hubspot.Notes, 10, "")
	require.NoError(t, err)
	require.Len(t, links.Results, 1)
	assert.Equal(t, hubspot.ObjectID(created.ID), links.Results[0].ToObjectID)
	assert.Equal(t, int(hubspot.NoteToDeal), links.Results[0].AssociationTypes[0].TypeID)
}

func TestWorkflow_WrongToken(t *testing.T) {
	t.Parallel()

	hub := testhelpers.NewFakeHub(fakeToken)
	server := hub.Start(t)

	cli, err := hsclient.NewWithToken(server.URL, "wrong", "1")
	require.NoError(t, err)

	_, err = cli.Owners().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, hubspot.IsUnauthorized(err))
}

func TestWorkflow_ConcurrentHandles(t *testing.T) {
	t.Parallel()

	cli, hub := newFakeClient(t)

	for i := 0; i < 5; i++ {
		hub.Seed("deals", map[string]string{"dealname": "d"})
	}

	var wg sync.WaitGroup

	errs := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			deals := hsclient.Basic[map[string]string, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Deals())

			_, err := deals.List(context.Background(), &hubspot.ListOptions{Limit: 5, Properties: []string{"dealname"}})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
