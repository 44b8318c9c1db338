package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/schema"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the prompt categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, cat := range schema.Categories() {
				fields, err := schema.For(cat)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-18s %-18s %d fields\n", cat, cat.Slug(), len(fields))
			}
			return nil
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema <category>",
		Short: "Show the fields of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			fields, err := schema.For(cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(fields)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(fields)
			case "table", "":
				fmt.Fprintf(out, "%s\n\n", cat)
				for _, f := range fields {
					fmt.Fprintf(out, "  %-16s %-16s %s\n", f.Name, f.Kind, describeField(f))
				}
				return nil
			default:
				return errors.InvalidInputError(fmt.Sprintf("unknown format %q (use table, json or yaml)", format))
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, yaml")
	return cmd
}

func describeField(f models.FieldSpec) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("default=%q", models.FormatValue(f.Default)))
	if f.Kind == models.KindBoundedInteger {
		parts = append(parts, fmt.Sprintf("range=%d..%d", f.Min, f.Max))
	}
	if len(f.Options) > 0 {
		parts = append(parts, "options="+strings.Join(f.Options, "|"))
	}
	if !f.Required {
		parts = append(parts, "optional")
	}
	return strings.Join(parts, " ")
}
