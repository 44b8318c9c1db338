package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/postprocess"
	"github.com/dpshade/pocket-composer/internal/storage"
)

type generateOptions struct {
	sets      []string
	template  string
	optimize  bool
	shorten   bool
	lines     int
	expand    bool
	diff      bool
	copy      bool
	output    string
	format    string
	noHistory bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <category>",
		Short: "Compose a prompt for a category",
		Long: `Compose a prompt from the category's defaults, an optional saved template and
--set overrides, then optionally post-process, copy or export it.

Examples:
  pocket-composer generate architecture --set color=red --set details=
  pocket-composer generate facade --template "Industrial Loft" --set windows=6
  pocket-composer generate marketing --set product=X --format json
  pocket-composer generate ai-art --optimize --expand --diff --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lines") {
				a.cfg.PostProcess.TruncateLines = opts.lines
			}
			return a.runGenerate(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.sets, "set", "s", nil, "Set a field: name=value (repeatable)")
	f.StringVarP(&opts.template, "template", "t", "", "Start from a saved template of the category")
	f.BoolVar(&opts.optimize, "optimize", false, "Collapse spacing and trim lines")
	f.BoolVar(&opts.shorten, "shorten", false, "Keep the first lines and append [...]")
	f.IntVar(&opts.lines, "lines", postprocess.DefaultTruncateLines, "Lines kept by --shorten")
	f.BoolVar(&opts.expand, "expand", false, "Append the category's elaboration clause")
	f.BoolVar(&opts.diff, "diff", false, "Show what post-processing changed on stderr")
	f.BoolVarP(&opts.copy, "copy", "c", false, "Copy the prompt to the clipboard")
	f.StringVarP(&opts.output, "output", "o", "", "Export to a file instead of printing")
	f.StringVarP(&opts.format, "format", "f", "", "Output format: text, json (default from --output extension)")
	f.BoolVar(&opts.noHistory, "no-history", false, "Do not record the prompt in history")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, categoryArg string, opts *generateOptions) error {
	cat, err := parseCategoryArg(categoryArg)
	if err != nil {
		return err
	}
	assignments, err := parseAssignments(opts.sets)
	if err != nil {
		return err
	}
	var format storage.ExportFormat
	if opts.format != "" {
		if format, err = storage.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	a.noHistory = opts.noHistory
	svc, err := a.service()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if err := svc.SwitchCategory(cat); err != nil {
		return err
	}
	if opts.template != "" {
		warnings, err := svc.LoadTemplate(opts.template)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			a.warn(stderr, w)
		}
	}
	if err := a.applyAssignments(svc, assignments, stderr); err != nil {
		return err
	}

	before, err := svc.Generate()
	if err != nil {
		return err
	}
	for _, w := range svc.Warnings() {
		a.warn(stderr, w)
	}

	if opts.optimize {
		svc.Optimize()
	}
	if opts.shorten {
		svc.Shorten()
	}
	if opts.expand {
		svc.Expand()
	}
	if opts.diff {
		lines := postprocess.Diff(before, svc.Prompt())
		inserted, deleted := postprocess.DiffStats(lines)
		fmt.Fprint(stderr, postprocess.FormatDiff(lines))
		fmt.Fprintf(stderr, "%d line(s) added, %d removed\n", inserted, deleted)
	}

	if opts.output != "" {
		path, err := svc.ExportTo(opts.output, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Exported to %s\n", path)
	} else {
		if format == "" {
			format = storage.ExportText
		}
		doc, err := svc.ExportDocument()
		if err != nil {
			return err
		}
		data, err := storage.EncodeExport(doc, format)
		if err != nil {
			return err
		}
		out := string(data)
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}

	if opts.copy {
		msg, err := svc.CopyToClipboard()
		if err != nil {
			a.warn(stderr, err)
		} else {
			fmt.Fprintln(stderr, msg)
		}
	}

	a.logger.Debug("Generate finished",
		zap.String("category", string(cat)),
		zap.Int("overrides", len(assignments)),
		zap.Bool("post_processed", opts.optimize || opts.shorten || opts.expand))
	return nil
}
