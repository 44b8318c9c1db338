// Command migrate-templates rewrites a single-category template file in the
// multi-category layout, so templates of every category can live in it.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-composer/internal/config"
	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/logging"
	"github.com/dpshade/pocket-composer/internal/storage"
)

func main() {
	if err := newMigrateCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.NewCLIErrorHandler(false, nil).FormatError(err))
		os.Exit(1)
	}
}

func newMigrateCmd() *cobra.Command {
	var (
		dataDir    string
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:           "migrate-templates",
		Short:         "Rewrite a legacy template file in the multi-category layout",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.DataDir(dataDir)
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath, dir)
			if err != nil {
				return err
			}
			logger, err := logging.New("warn", "stderr")
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			store := storage.NewTemplateStore(cfg.TemplatesPath(), cfg.Legacy(), logger)
			result := store.Load()

			switch {
			case result.Status == storage.LoadMissing:
				fmt.Fprintf(out, "No template file at %s - migration not needed\n", store.Path())
				return nil
			case result.Status == storage.LoadRecovered:
				return result.Cause
			case result.Format == storage.FormatMulti:
				fmt.Fprintln(out, "Template file already holds categories - migration not needed")
				return nil
			}

			names := store.Names(cfg.Legacy())
			fmt.Fprintf(out, "Found %d templates that will be filed under %s:\n", len(names), cfg.Legacy())
			for _, name := range names {
				fmt.Fprintf(out, "  - %s\n", name)
			}

			if !yes {
				fmt.Fprint(out, "\nProceed with migration? (y/N): ")
				var response string
				fmt.Fscanln(cmd.InOrStdin(), &response)

				if strings.ToLower(response) != "y" {
					fmt.Fprintln(out, "Migration cancelled")
					return nil
				}
			}

			if _, err := store.Upgrade(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Migration completed! %s now uses the multi-category layout\n", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", "",
		"Data directory (default $"+config.EnvDataDir+" or ~/.pocket-composer)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"Config file (default <dir>/"+config.FileName+")")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Migrate without asking")
	return cmd
}
