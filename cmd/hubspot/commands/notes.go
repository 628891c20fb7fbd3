package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/cobra"
)

// NewNotesCommand creates the notes command group.
func NewNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Manage notes",
		Long:    "Create notes and attach them to contacts, companies, deals or tickets",
	}

	cmd.AddCommand(newNotesCreateCommand())

	return cmd
}

// parseNoteTarget parses KIND:ID into the built-in note association to that
// kind and the target id.
func parseNoteTarget(raw string) (hubspot.BuiltInAssociation, string, error) {
	rawKind, id, found := strings.Cut(raw, ":")
	if !found || id == "" {
		return 0, "", fmt.Errorf("%w: %q, expected KIND:ID", constants.ErrInvalidAssociation, raw)
	}

	kind, err := hubspot.ParseObjectType(rawKind)
	if err != nil {
		return 0, "", err
	}

	link, ok := hubspot.NoteAssociationFor(kind)
	if !ok {
		return 0, "", fmt.Errorf("%w: notes cannot be attached to %s", constants.ErrInvalidAssociation, kind)
	}

	return link, id, nil
}

func newNotesCreateCommand() *cobra.Command {
	var (
		body    string
		ownerID string
		targets []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Long: `Create a note stamped with the current time.

--attach KIND:ID links the note to a record, e.g. --attach deals:123.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(body) == "" {
				return fmt.Errorf("%w: --body is required", constants.ErrInvalidProperty)
			}

			note := hubspot.NewOwnedNote(body, ownerID)

			for _, raw := range targets {
				link, id, err := parseNoteTarget(raw)
				if err != nil {
					return err
				}

				note.AttachBuiltInAssociations(link, id)
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			created, err := cli.Notes().Create(cmd.Context(), note)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), created, func(table *tableWriter) {
				table.header("Property", "Value")
				table.row("id", created.ID)
				table.row("body", created.Properties.Body)
				table.row("owner", created.Properties.OwnerID)
				table.row("timestamp", formatTime(&created.Properties.Timestamp))
			})
		},
	}

	cmd.Flags().StringVarP(&body, "body", "b", "", "note text")
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")
	cmd.Flags().StringArrayVar(&targets, "attach", nil, "record to attach to as KIND:ID (repeatable)")

	return cmd
}
