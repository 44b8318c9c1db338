package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/storage"
	"github.com/dpshade/pocket-composer/internal/ui"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit    int
		format   string
		raw      bool
		clearAll bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear generated prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if clearAll {
				if err := svc.ClearHistory(); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared")
				return nil
			}

			entries, err := svc.History(limit)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "json":
				if entries == nil {
					entries = []models.HistoryEntry{}
				}
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "markdown", "md":
				md := storage.FormatHistoryMarkdown(entries)
				if raw {
					fmt.Fprint(out, md)
					return nil
				}
				rendered, err := ui.RenderMarkdown(md, width)
				if err != nil {
					a.warn(cmd.ErrOrStderr(), errors.Wrap(err, errors.ErrCodeInternalError, "markdown rendering failed"))
					fmt.Fprint(out, md)
					return nil
				}
				fmt.Fprint(out, rendered)
				return nil
			default:
				return errors.InvalidInputError(fmt.Sprintf("unknown format %q (use markdown or json)", format))
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of entries (default history.display_limit)")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown, json")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal rendering")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove every history entry")
	cmd.Flags().IntVar(&width, "width", 100, "Word wrap width for rendered markdown")
	return cmd
}
