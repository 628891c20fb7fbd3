package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/cobra"
)

// NewAssociationsCommand creates the associations command group.
func NewAssociationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "associations",
		Aliases: []string{"assoc"},
		Short:   "Manage links between records",
		Long:    "List, create and delete associations from one record to records of another kind",
	}

	cmd.AddCommand(newAssociationsListCommand())
	cmd.AddCommand(newAssociationsCreateCommand())
	cmd.AddCommand(newAssociationsDeleteCommand())

	return cmd
}

func parseKinds(from, to string) (hubspot.ObjectType, hubspot.ObjectType, error) {
	fromKind, err := hubspot.ParseObjectType(from)
	if err != nil {
		return "", "", err
	}

	toKind, err := hubspot.ParseObjectType(to)
	if err != nil {
		return "", "", err
	}

	return fromKind, toKind, nil
}

func newAssociationsListCommand() *cobra.Command {
	var (
		limit int
		after string
	)

	cmd := &cobra.Command{
		Use:   "list KIND ID TO_KIND",
		Short: "List associated records",
		Long:  "List the records of TO_KIND linked to a record, with every association type per link",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromKind, toKind, err := parseKinds(args[0], args[2])
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			page, err := cli.Objects(fromKind).Associations().List(cmd.Context(), args[1], toKind, limit, after)
			if err != nil {
				return err
			}

			err = render(cmd.OutOrStdout(), page, func(table *tableWriter) {
				table.header("To ID", "Types")

				for _, link := range page.Results {
					types := make([]string, 0, len(link.AssociationTypes))
					for _, associationType := range link.AssociationTypes {
						types = append(types, describeAssociationType(associationType))
					}

					table.row(link.ToObjectID.String(), strings.Join(types, ", "))
				}
			})
			if err != nil {
				return err
			}

			if page.HasMore() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "More results available, use --after %s\n", page.NextAfter())
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&after, "after", "", "cursor returned by the previous page")

	return cmd
}

func describeAssociationType(associationType hubspot.AssociationType) string {
	description := string(associationType.Category) + ":" + strconv.Itoa(associationType.TypeID)
	if associationType.Label != nil && *associationType.Label != "" {
		description += " (" + *associationType.Label + ")"
	}

	return description
}

func newAssociationsCreateCommand() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "create KIND ID TO_KIND TO_ID",
		Short: "Link two records",
		Long: `Link a record to another one with one or more association types.

Each --type is [CATEGORY:]TYPE_ID; the category defaults to HUBSPOT_DEFINED,
e.g. --type 279 or --type USER_DEFINED:12.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromKind, toKind, err := parseKinds(args[0], args[2])
			if err != nil {
				return err
			}

			if len(types) == 0 {
				return fmt.Errorf("%w: at least one --type is required", constants.ErrInvalidAssociation)
			}

			specs := make([]hubspot.AssociationSpec, 0, len(types))

			for _, raw := range types {
				spec, err := parseAssociationSpec(raw, hubspot.HubSpotDefined)
				if err != nil {
					return err
				}

				specs = append(specs, spec)
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			created, err := cli.Objects(fromKind).Associations().Create(cmd.Context(), args[1], toKind, args[3], specs)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), created, func(table *tableWriter) {
				table.header("Property", "Value")
				table.row("From", created.FromObjectTypeID+"/"+created.FromObjectID.String())
				table.row("To", created.ToObjectTypeID+"/"+created.ToObjectID.String())
				table.row("Labels", strings.Join(created.Labels, ", "))
			})
		},
	}

	cmd.Flags().StringArrayVar(&types, "type", nil, "association type as [CATEGORY:]TYPE_ID (repeatable)")

	return cmd
}

func newAssociationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KIND ID TO_KIND TO_ID",
		Short: "Unlink two records",
		Long:  "Remove every association between two records",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromKind, toKind, err := parseKinds(args[0], args[2])
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			err = cli.Objects(fromKind).Associations().Delete(cmd.Context(), args[1], toKind, args[3])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed associations between %s %s and %s %s\n",
				fromKind.ToPath(), args[1], toKind.ToPath(), args[3])

			return nil
		},
	}
}
