package commands

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/cobra"
)

// propertySelection decodes like a property map but encodes as the sorted
// list of its keys, which is the form the batch read body expects.
type propertySelection map[string]string

func (s propertySelection) MarshalJSON() ([]byte, error) {
	return marshalNames(maps.Keys(s))
}

// historySelection is propertySelection for properties with history.
type historySelection map[string][]hubspot.PropertyHistory

func (s historySelection) MarshalJSON() ([]byte, error) {
	return marshalNames(maps.Keys(s))
}

func marshalNames(keys iter.Seq[string]) ([]byte, error) {
	names := slices.AppendSeq([]string{}, keys)
	slices.Sort(names)

	return json.Marshal(names)
}

type batchRecord = hubspot.Record[propertyMap, historyMap, hubspot.OptionNotDesired]

// batchReadOutput is a batch read result with the selections turned back
// into plain maps for printing.
type batchReadOutput struct {
	Status    string                  `json:"status"              yaml:"status"`
	Results   []batchRecord           `json:"results"             yaml:"results"`
	NumErrors int                     `json:"numErrors,omitempty" yaml:"numErrors,omitempty"`
	Errors    []hubspot.ErrorResponse `json:"errors,omitempty"    yaml:"errors,omitempty"`
}

func selectNames[T any](names []string) map[string]T {
	selection := make(map[string]T, len(names))

	var zero T

	for _, name := range names {
		selection[name] = zero
	}

	return selection
}

// NewBatchCommand creates the batch command group.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run batch calls",
		Long:  "Read, update or archive up to 100 records of one kind in a single call",
	}

	cmd.AddCommand(newBatchReadCommand())
	cmd.AddCommand(newBatchUpdateCommand())
	cmd.AddCommand(newBatchArchiveCommand())

	return cmd
}

func checkBatchIDs(ids []string) error {
	switch {
	case len(ids) == 0:
		return constants.ErrNoIDs
	case len(ids) > constants.MaxBatchSize:
		return fmt.Errorf("%w: %d, at most %d", constants.ErrTooManyIDs, len(ids), constants.MaxBatchSize)
	default:
		return nil
	}
}

func reportBatchErrors(cmd *cobra.Command, errs []hubspot.ErrorResponse) {
	for _, batchErr := range errs {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %v\n", batchErr.Category, batchErr.Message, batchErr.Context["ids"])
	}
}

func newBatchReadCommand() *cobra.Command {
	var (
		properties []string
		history    []string
		archived   bool
	)

	cmd := &cobra.Command{
		Use:   "read KIND ID...",
		Short: "Read records by id",
		Long:  "Read several records of one kind; ids that cannot be read are reported on stderr",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			ids := args[1:]

			err = checkBatchIDs(ids)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			api := hsclient.Batch[propertySelection, historySelection, hubspot.OptionNotDesired](cli.Objects(kind))

			result, err := api.Read(
				cmd.Context(),
				ids,
				selectNames[string](properties),
				selectNames[[]hubspot.PropertyHistory](history),
				hubspot.OptionNotDesired{},
				archived,
			)
			if err != nil {
				return err
			}

			reportBatchErrors(cmd, result.Errors)

			output := batchReadOutput{
				Status:    result.Status,
				Results:   make([]batchRecord, 0, len(result.Results)),
				NumErrors: result.NumErrors,
				Errors:    result.Errors,
			}

			rows := make([]map[string]string, 0, len(result.Results))

			for _, record := range result.Results {
				rows = append(rows, record.Properties)
				output.Results = append(output.Results, batchRecord{
					ID:                    record.ID,
					Properties:            record.Properties,
					PropertiesWithHistory: record.PropertiesWithHistory,
					CreatedAt:             record.CreatedAt,
					UpdatedAt:             record.UpdatedAt,
					Archived:              record.Archived,
				})
			}

			columns := propertyColumns(properties, rows)

			return render(cmd.OutOrStdout(), output, func(table *tableWriter) {
				table.header(append([]string{"ID"}, upperHeader(columns)...)...)

				for _, record := range output.Results {
					values := []string{record.ID}
					for _, column := range columns {
						values = append(values, record.Properties[column])
					}

					table.row(values...)
				}
			})
		},
	}

	cmd.Flags().StringSliceVarP(&properties, "properties", "p", nil, "properties to return")
	cmd.Flags().StringSliceVar(&history, "properties-with-history", nil, "properties to return with history")
	cmd.Flags().BoolVar(&archived, "archived", false, "read archived records")

	return cmd
}

func newBatchUpdateCommand() *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "update KIND ID...",
		Short: "Apply the same properties to several records",
		Long:  "Set the --set name=value pairs on every listed record",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			ids := args[1:]

			err = checkBatchIDs(ids)
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

			api := hsclient.Batch[propertyMap, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Objects(kind))

			result, err := api.Update(cmd.Context(), ids, properties)
			if err != nil {
				return err
			}

			reportBatchErrors(cmd, result.Errors)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %d %s records\n", len(result.Results), kind.ToPath())

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "property as name=value (repeatable)")

	return cmd
}

func newBatchArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive KIND ID...",
		Short: "Archive records by id",
		Long:  "Move several records of one kind to the recycling bin",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hubspot.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			ids := args[1:]

			err = checkBatchIDs(ids)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			api := hsclient.Batch[propertyMap, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Objects(kind))

			err = api.Archive(cmd.Context(), ids)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived %d %s records\n", len(ids), kind.ToPath())

			return nil
		},
	}
}
