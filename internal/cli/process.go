package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/postprocess"
)

func newProcessCmd(a *app) *cobra.Command {
	var (
		optimize bool
		shorten  bool
		lines    int
		expand   string
		diff     bool
	)

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Post-process prompt text from a file or stdin",
		Long: `Apply the post-processing steps to any text. Steps run in the order
optimize, shorten, expand. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
				if err != nil {
					return errors.IOFailure("read input", err).WithContext("path", args[0])
				}
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.IOFailure("read stdin", err)
				}
			}

			if !cmd.Flags().Changed("lines") {
				lines = a.cfg.PostProcess.TruncateLines
			}

			before := string(data)
			text := before
			if optimize {
				text = postprocess.Normalize(text)
			}
			if shorten {
				text = postprocess.Truncate(text, lines)
			}
			if expand != "" {
				cat, err := parseCategoryArg(expand)
				if err != nil {
					return err
				}
				text = postprocess.Expand(cat, text)
			}

			if diff {
				fmt.Fprint(cmd.ErrOrStderr(), postprocess.FormatDiff(postprocess.Diff(before, text)))
			}
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&optimize, "optimize", false, "Collapse spacing and trim lines")
	cmd.Flags().BoolVar(&shorten, "shorten", false, "Keep the first lines and append [...]")
	cmd.Flags().IntVar(&lines, "lines", postprocess.DefaultTruncateLines, "Lines kept by --shorten")
	cmd.Flags().StringVar(&expand, "expand", "", "Append the elaboration clause of this category")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show what changed on stderr")
	return cmd
}
