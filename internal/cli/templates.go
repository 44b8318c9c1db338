package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/schema"
	"github.com/dpshade/pocket-composer/internal/service"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "tpl"},
		Short:   "Manage saved templates",
		Long: `Saved templates are named field values of one category.
Commands act on --category, which defaults to the configured legacy category.`,
	}
	cmd.PersistentFlags().StringVarP(&category, "category", "C", "", "Category the command acts on")

	// open switches the engine to the selected category
	open := func() (*service.Service, models.Category, error) {
		cat := a.cfg.Legacy()
		if category != "" {
			parsed, err := parseCategoryArg(category)
			if err != nil {
				return nil, "", err
			}
			cat = parsed
		}
		svc, err := a.service()
		if err != nil {
			return nil, "", err
		}
		if err := svc.SwitchCategory(cat); err != nil {
			return nil, "", err
		}
		return svc, cat, nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List the templates of a category",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, cat, err := open()
				if err != nil {
					return err
				}
				printTemplates(cmd, cat, svc.ListTemplates())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show the field values of a template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, _, err := open()
				if err != nil {
					return err
				}
				tmpl, err := svc.GetTemplate(args[0])
				if err != nil {
					return err
				}
				return writeValuesYAML(cmd, tmpl)
			},
		},
		newTemplateSaveCmd(a, open),
		&cobra.Command{
			Use:     "delete <name>",
			Aliases: []string{"rm"},
			Short:   "Delete a template",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, cat, err := open()
				if err != nil {
					return err
				}
				removed, err := svc.DeleteTemplate(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return errors.NotFoundError(fmt.Sprintf("template %q in %s", args[0], cat))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %q from %s\n", args[0], cat)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Fuzzy search template names and values",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, cat, err := open()
				if err != nil {
					return err
				}
				printTemplates(cmd, cat, svc.SearchTemplates(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Add the standard facade templates that are missing",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.service()
				if err != nil {
					return err
				}
				added, err := svc.SeedTemplates()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d standard template(s)\n", added)
				return nil
			},
		},
	)
	return cmd
}

func newTemplateSaveCmd(a *app, open func() (*service.Service, models.Category, error)) *cobra.Command {
	var (
		sets []string
		from string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save field values as a template, overwriting one of the same name",
		Long: `Save the category defaults, optionally starting from another template,
with --set overrides applied.

Example:
  pocket-composer templates save "Red Brick" -C facade --set material=Brick --set color=red`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			svc, cat, err := open()
			if err != nil {
				return err
			}
			if from != "" {
				warnings, err := svc.LoadTemplate(from)
				if err != nil {
					return err
				}
				for _, w := range warnings {
					a.warn(cmd.ErrOrStderr(), w)
				}
			}
			if err := a.applyAssignments(svc, assignments, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := svc.SaveTemplate(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q in %s\n", args[0], cat)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Set a field: name=value (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Start from an existing template")
	return cmd
}

func printTemplates(cmd *cobra.Command, cat models.Category, templates []models.SavedTemplate) {
	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintf(out, "No templates in %s\n", cat)
		return
	}
	for _, t := range templates {
		fmt.Fprintf(out, "%-24s %s\n", t.Name, t.Description())
	}
}

// writeValuesYAML prints a template's values in schema order
func writeValuesYAML(cmd *cobra.Command, tmpl models.SavedTemplate) error {
	doc := yaml.Node{Kind: yaml.MappingNode}
	add := func(name string, value interface{}) error {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return err
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &v)
		return nil
	}

	seen := map[string]bool{}
	names, err := schema.FieldNames(tmpl.Category)
	if err != nil {
		return err
	}
	for _, name := range names {
		if value, ok := tmpl.Values[name]; ok {
			seen[name] = true
			if err := add(name, models.FormatValue(value)); err != nil {
				return err
			}
		}
	}
	for _, name := range sortedKeys(tmpl.Values) {
		if !seen[name] {
			if err := add(name, models.FormatValue(tmpl.Values[name])); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %s / %s\n", tmpl.Category, tmpl.Name)
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
