package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/bbtree/config"
	"github.com/katalvlaran/bbtree/logging"
)

// app carries state shared by all subcommands once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log zerolog.Logger
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bbtree",
		Short:         "Branch-and-bound knapsack search tree builder",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "loglevel", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "logformat", "", "Log format (console, json, auto)")

	root.AddCommand(
		a.solveCommand(),
		a.serveCommand(),
		a.batchCommand(),
		versionCommand(),
	)

	return root
}

// setup loads configuration and installs the logger. Flags win over the
// file and the environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("loglevel") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("logformat") {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    os.Stderr,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	if a.configPath != "" {
		a.log.Debug().Str("path", a.configPath).Msg("configuration loaded")
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		a.log.Debug().Str("flag", f.Name).Str("value", f.Value.String()).Msg("flag set")
	})

	return nil
}
