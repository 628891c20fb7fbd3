package commands

import (
	"strconv"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/cobra"
)

// NewOwnersCommand creates the owners command group.
func NewOwnersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "owners",
		Aliases: []string{"owner"},
		Short:   "Look up record owners",
		Long:    "Read the users that can be assigned as owners of CRM records",
	}

	cmd.AddCommand(newOwnersGetCommand())
	cmd.AddCommand(newOwnersListCommand())

	return cmd
}

func renderOwners(cmd *cobra.Command, data interface{}, owners []hubspot.Owner) error {
	return render(cmd.OutOrStdout(), data, func(table *tableWriter) {
		table.header("ID", "Name", "Email", "User ID", "Archived")

		for _, owner := range owners {
			table.row(owner.ID, owner.FullName(), owner.Email,
				strconv.FormatInt(owner.UserID, 10), strconv.FormatBool(owner.Archived))
		}
	})
}

func newOwnersGetCommand() *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get an owner",
		Long:  "Display one owner by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			owner, err := cli.Owners().Read(cmd.Context(), args[0], archived)
			if err != nil {
				return err
			}

			return renderOwners(cmd, owner, []hubspot.Owner{*owner})
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "read an archived owner")

	return cmd
}

func newOwnersListCommand() *cobra.Command {
	var (
		opts     hubspot.OwnersListOptions
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owners",
		Long:  "List owners, optionally filtered by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			var owners []hubspot.Owner

			for {
				page, err := cli.Owners().List(cmd.Context(), &opts)
				if err != nil {
					return err
				}

				owners = append(owners, page.Results...)

				if !allPages || !page.HasMore() {
					break
				}

				opts.After = page.NextAfter()
			}

			return renderOwners(cmd, owners, owners)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&opts.After, "after", "", "cursor returned by the previous page")
	cmd.Flags().StringVar(&opts.Email, "email", "", "only the owner with this email")
	cmd.Flags().BoolVar(&opts.Archived, "archived", false, "list archived owners")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch every page")

	return cmd
}
