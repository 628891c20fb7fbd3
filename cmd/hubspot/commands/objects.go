package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// propertyMap holds whatever properties a call selected. The CLI does not
// know record shapes ahead of time, so names come from flags.
type propertyMap = map[string]string

// historyMap holds the value history of the properties asked for with
// --properties-with-history.
type historyMap = map[string][]hubspot.PropertyHistory

// associationMap holds the associations embedded in a record, keyed by the
// associated object kind.
type associationMap = map[string]*hubspot.AssociationResults

type cliRecord = hubspot.Record[propertyMap, historyMap, associationMap]

func basicAPI(cli *hsclient.Client, kind hubspot.ObjectType) hubspot.BasicAPI[propertyMap, historyMap, associationMap] {
	return hsclient.Basic[propertyMap, historyMap, associationMap](cli.Objects(kind))
}

// NewObjectsCommand creates the objects command group.
func NewObjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object", "obj"},
		Short:   "Manage CRM records",
		Long: `List, read, create, update and archive records of any object kind.

KIND is a standard kind such as contacts, companies, deals or line-items, or
a custom object type id such as 2-1234567.`,
	}

	cmd.AddCommand(newObjectsKindsCommand())
	cmd.AddCommand(newObjectsListCommand())
	cmd.AddCommand(newObjectsGetCommand())
	cmd.AddCommand(newObjectsCreateCommand())
	cmd.AddCommand(newObjectsUpdateCommand())
	cmd.AddCommand(newObjectsArchiveCommand())

	return cmd
}

func recordShort(verb string) string {
	return cases.Title(language.English).String(verb) + " a CRM record"
}

func newObjectsKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List standard object kinds",
		Long:  "List the standard object kinds and the path segment each one uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := hubspot.StandardObjectTypes()

			type kindInfo struct {
				Name string `json:"name" yaml:"name"`
				Path string `json:"path" yaml:"path"`
			}

			infos := make([]kindInfo, 0, len(kinds))
			for _, kind := range kinds {
				infos = append(infos, kindInfo{Name: kind.String(), Path: kind.ToPath()})
			}

			return render(cmd.OutOrStdout(), infos, func(table *tableWriter) {
				table.header("Name", "Path")

				for _, info := range infos {
					table.row(info.Name, info.Path)
				}
			})
		},
	}
}

func newObjectsListCommand() *cobra.Command {
	var (
		opts     hubspot.ListOptions
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List CRM records",
		Long:  "List records of one object kind, one page at a time or all pages with --all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			records, next, err := listRecords(cmd.Context(), basicAPI(cli, kind), opts, allPages)
			if err != nil {
				return err
			}

			err = renderRecords(cmd, records, opts.Properties)
			if err != nil {
				return err
			}

			if next != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "More results available, use --after %s\n", next)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", constants.DefaultPageSize, "page size (at most 100)")
	cmd.Flags().StringVar(&opts.After, "after", "", "cursor returned by the previous page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch every page")
	cmd.Flags().BoolVar(&opts.Archived, "archived", false, "list archived records")
	cmd.Flags().StringSliceVarP(&opts.Properties, "properties", "p", nil, "properties to return")
	cmd.Flags().StringSliceVar(&opts.PropertiesWithHistory, "properties-with-history", nil, "properties to return with history")
	cmd.Flags().StringSliceVar(&opts.Associations, "associations", nil, "associated kinds to return ids for")

	return cmd
}

// listRecords fetches one page, or every page when allPages is set. It
// returns the cursor of the page after the last one fetched.
func listRecords(
	ctx context.Context,
	api hubspot.BasicAPI[propertyMap, historyMap, associationMap],
	opts hubspot.ListOptions,
	allPages bool,
) ([]cliRecord, string, error) {
	opts.Limit = min(opts.Limit, constants.MaxPageSize)

	var records []cliRecord

	for {
		page, err := api.List(ctx, &opts)
		if err != nil {
			return nil, "", err
		}

		records = append(records, page.Results...)

		if !allPages || !page.HasMore() {
			return records, page.NextAfter(), nil
		}

		opts.After = page.NextAfter()
	}
}

func renderRecords(cmd *cobra.Command, records []cliRecord, requested []string) error {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Properties)
	}

	columns := propertyColumns(requested, rows)

	return render(cmd.OutOrStdout(), records, func(table *tableWriter) {
		table.header(append([]string{"ID"}, append(upperHeader(columns), "UPDATED")...)...)

		for _, record := range records {
			values := []string{record.ID}
			for _, column := range columns {
				values = append(values, record.Properties[column])
			}

			table.row(append(values, formatTime(record.UpdatedAt))...)
		}
	})
}

func renderRecord(cmd *cobra.Command, record *cliRecord) error {
	return render(cmd.OutOrStdout(), record, func(table *tableWriter) {
		table.header("Property", "Value")
		table.row("id", record.ID)

		for _, name := range slices.Sorted(maps.Keys(record.Properties)) {
			table.row(name, record.Properties[name])
		}

		for _, name := range slices.Sorted(maps.Keys(record.PropertiesWithHistory)) {
			table.row("history."+name, strconv.Itoa(len(record.PropertiesWithHistory[name]))+" values")
		}

		for _, kind := range slices.Sorted(maps.Keys(record.Associations)) {
			table.row("associations."+kind, strings.Join(record.Associations[kind].IDs(), ","))
		}

		table.row("createdAt", formatTime(record.CreatedAt))
		table.row("updatedAt", formatTime(record.UpdatedAt))
		table.row("archived", strconv.FormatBool(record.IsArchived()))
	})
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.RFC3339)
}

func newObjectsGetCommand() *cobra.Command {
	var opts hubspot.ReadOptions

	cmd := &cobra.Command{
		Use:   "get KIND ID",
		Short: recordShort("get"),
		Long:  "Display one record with the selected properties and associations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			record, err := basicAPI(cli, kind).Read(cmd.Context(), args[1], &opts)
			if err != nil {
				return err
			}

			return renderRecord(cmd, record)
		},
	}

	cmd.Flags().BoolVar(&opts.Archived, "archived", false, "read an archived record")
	cmd.Flags().StringSliceVarP(&opts.Properties, "properties", "p", nil, "properties to return")
	cmd.Flags().StringSliceVar(&opts.PropertiesWithHistory, "properties-with-history", nil, "properties to return with history")
	cmd.Flags().StringSliceVar(&opts.Associations, "associations", nil, "associated kinds to return ids for")

	return cmd
}

func newObjectsCreateCommand() *cobra.Command {
	var (
		assignments []string
		associate   []string
	)

	cmd := &cobra.Command{
		Use:   "create KIND",
		Short: recordShort("create"),
		Long: `Create a record from --set name=value pairs.

--associate TYPE_ID:ID links the new record to an existing one using a
platform defined association type, e.g. --associate 279:123 to link a new
contact to company 123.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			properties, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			input := hubspot.WithProperties(properties)

			for _, raw := range associate {
				link, err := parseAssociateFlag(raw)
				if err != nil {
					return err
				}

				input.AttachAssociations(link)
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			record, err := basicAPI(cli, kind).Create(cmd.Context(), input)
			if err != nil {
				return err
			}

			return renderRecord(cmd, record)
		},
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "property as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&associate, "associate", nil, "association as TYPE_ID:ID (repeatable)")

	return cmd
}

func newObjectsUpdateCommand() *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "update KIND ID",
		Short: recordShort("update"),
		Long:  "Change properties of a record with --set name=value pairs; other properties are left alone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			properties, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			record, err := basicAPI(cli, kind).Update(cmd.Context(), args[1], properties)
			if err != nil {
				return err
			}

			return renderRecord(cmd, record)
		},
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "property as name=value (repeatable)")

	return cmd
}

func newObjectsArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "archive KIND ID",
		Aliases: []string{"delete"},
		Short:   recordShort("archive"),
		Long:    "Move a record to the recycling bin",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			err = basicAPI(cli, kind).Archive(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived %s %s\n", kind.ToPath(), args[1])

			return nil
		},
	}

	return cmd
}

// parseAssignments turns name=value pairs into a property map. Values may
// contain '=' and may be empty.
func parseAssignments(assignments []string) (propertyMap, error) {
	properties := make(propertyMap, len(assignments))

	for _, assignment := range assignments {
		name, value, found := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidProperty, assignment)
		}

		properties[name] = value
	}

	return properties, nil
}

// parseAssociateFlag parses TYPE_ID:ID into a platform defined association.
func parseAssociateFlag(raw string) (hubspot.CreateAssociation, error) {
	typeID, id, found := strings.Cut(raw, ":")
	if !found || id == "" {
		return hubspot.CreateAssociation{}, fmt.Errorf("%w: %q", constants.ErrInvalidAssociation, raw)
	}

	spec, err := parseAssociationSpec(typeID, hubspot.HubSpotDefined)
	if err != nil {
		return hubspot.CreateAssociation{}, err
	}

	return hubspot.CreateAssociation{
		To:    hubspot.AssociationTarget{ID: id},
		Types: []hubspot.AssociationSpec{spec},
	}, nil
}

// parseAssociationSpec parses [CATEGORY:]TYPE_ID. fallback is used when no
// category is given.
func parseAssociationSpec(raw string, fallback hubspot.AssociationCategory) (hubspot.AssociationSpec, error) {
	category := fallback
	typeID := raw

	if before, after, found := strings.Cut(raw, ":"); found {
		category = hubspot.AssociationCategory(strings.ToUpper(before))
		typeID = after
	}

	id, err := strconv.Atoi(strings.TrimSpace(typeID))
	if err != nil || id <= 0 {
		return hubspot.AssociationSpec{}, fmt.Errorf("%w: %q", constants.ErrInvalidAssociation, raw)
	}

	return hubspot.AssociationSpec{Category: category, TypeID: id}, nil
}
