package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// tableWriter collects rows and keeps the first append error.
type tableWriter struct {
	table *tablewriter.Table
	err   error
}

func (t *tableWriter) header(columns ...string) {
	t.table.Header(columns)
}

func (t *tableWriter) row(values ...string) {
	if t.err != nil {
		return
	}

	t.err = t.table.Append(values)
}

func validateOutputFormat(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

func outputFormat() (string, error) {
	format := viper.GetString("output")
	if format == "" {
		format = constants.FormatTable
	}

	return format, validateOutputFormat(format)
}

// render writes data as JSON or YAML, or calls fill to build a table.
func render(out io.Writer, data interface{}, fill func(table *tableWriter)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		table := &tableWriter{table: tablewriter.NewWriter(out)}
		fill(table)

		if table.err != nil {
			return fmt.Errorf("failed to build table: %w", table.err)
		}

		err = table.table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// propertyColumns returns the property names to show as columns: the
// requested ones, or every name seen across rows in sorted order.
func propertyColumns(requested []string, rows []map[string]string) []string {
	if len(requested) > 0 {
		return requested
	}

	var columns []string

	for _, row := range rows {
		for name := range row {
			if !slices.Contains(columns, name) {
				columns = append(columns, name)
			}
		}
	}

	slices.Sort(columns)

	return columns
}

func upperHeader(names []string) []string {
	headers := make([]string, 0, len(names))
	for _, name := range names {
		headers = append(headers, strings.ToUpper(name))
	}

	return headers
}
