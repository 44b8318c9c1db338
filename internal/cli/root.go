// Package cli is the cobra command tree of pocket-composer.
//
// Every command opens the engine lazily through app.service so that commands
// such as init and version never touch the stores. Running the binary with no
// command starts the TUI.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/clipboard"
	"github.com/dpshade/pocket-composer/internal/config"
	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/logging"
	"github.com/dpshade/pocket-composer/internal/service"
	"github.com/dpshade/pocket-composer/internal/ui"
)

type app struct {
	version string

	// Global flags
	dataDir    string
	configPath string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	svc    *service.Service

	noHistory bool

	// test seams
	clipboard clipboard.Writer
	now       func() time.Time
	runTUI    func(*service.Service, *zap.Logger) error
}

// Execute runs the command tree against os.Args and returns the process exit code
func Execute(version string) int {
	a := &app{version: version}
	root := newRootCmd(a)
	err := root.Execute()
	if err != nil {
		handler := errors.NewCLIErrorHandler(a.verbose, a.logger)
		fmt.Fprintln(os.Stderr, handler.HandleError(err))
	}
	a.teardown()
	if err != nil {
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pocket-composer",
		Short: "Compose structured AI prompts from category templates",
		Long: `pocket-composer builds prompts for image generators, code assistants and
marketing copy from a form of named fields per category.

Run without a command to start the interactive composer.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			run := a.runTUI
			if run == nil {
				run = ui.Run
			}
			return run(svc, a.logger)
		},
	}

	root.PersistentFlags().StringVar(&a.dataDir, "dir", "",
		"Data directory (default $"+config.EnvDataDir+" or ~/.pocket-composer)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default <dir>/"+config.FileName+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Show error details and debug logs")

	root.AddCommand(
		newCategoriesCmd(a),
		newSchemaCmd(a),
		newGenerateCmd(a),
		newProcessCmd(a),
		newTemplatesCmd(a),
		newHistoryCmd(a),
		newInitCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the config and builds the logger. The TUI logs to the configured
// file; every other command logs to stderr and stays quiet below warn unless asked.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := config.DataDir(a.dataDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath, dir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	interactive := cmd.Root() == cmd
	switch {
	case a.verbose:
		level = "debug"
	case level == "" && interactive:
		level = cfg.Logging.Level
	case level == "":
		level = "warn"
	}

	output := "stderr"
	if interactive {
		output = cfg.LogPath()
	}
	logger, err := logging.New(level, output)
	if err != nil {
		return errors.ConfigurationError("invalid logging setup: %v", err)
	}
	a.logger = logger.Named("cli")
	return nil
}

func (a *app) teardown() {
	if a.svc != nil {
		if err := a.svc.Close(); err != nil {
			a.logger.Warn("Failed to close history", zap.Error(err))
		}
		a.svc = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// service opens the engine on first use
func (a *app) service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := service.NewService(service.Options{
		Config:    a.cfg,
		Logger:    a.logger,
		Clipboard: a.clipboard,
		Now:       a.now,
		NoHistory: a.noHistory,
	})
	if err != nil {
		return nil, err
	}

	if result := svc.TemplateLoadResult(); result.Cause != nil {
		a.logger.Warn("Templates were reset", zap.Error(result.Cause))
	}
	a.svc = svc
	return svc, nil
}

// warn prints a non-fatal AppError to the command's error stream
func (a *app) warn(w io.Writer, err error) {
	handler := errors.NewCLIErrorHandler(a.verbose, a.logger)
	fmt.Fprintln(w, handler.FormatError(err))
}
