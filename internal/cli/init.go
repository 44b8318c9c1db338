package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-composer/internal/config"
	"github.com/dpshade/pocket-composer/internal/errors"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		force bool
		seed  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = filepath.Join(a.cfg.DataDir, config.FileName)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.InvalidInputError(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
			}

			if err := config.Default(a.cfg.DataDir).Save(path); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", path)

			svc, err := a.service()
			if err != nil {
				return err
			}
			if seed {
				added, err := svc.SeedTemplates()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %d standard template(s)\n", added)
			}
			fmt.Fprintf(out, "Data directory: %s\n", svc.GetBaseDir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&seed, "seed", false, "Add the standard facade templates")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pocket-composer %s\n", a.version)
		},
	}
}
