// Package cmd holds the insightmeet command tree.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/Poli-Reddy/insightmeet/config"
)

var version = "dev"

// app is the state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	cfgFile  string
	logLevel string

	conf *cfg.Root
	log  *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{log: logrus.New()}

	cmd := &cobra.Command{
		Use:   "insightmeet",
		Short: "Turn meeting recordings into analysis bundles",
		Long: `insightmeet turns a transcribed meeting into a dashboard-ready analysis bundle:
timestamped transcript, per-speaker participation, an emotion timeline,
a relationship graph and a summary.

Configuration is read from --config, or config/<CONFIG_ENV>/config.yaml,
or src/shared/config.yaml. INSIGHTMEET_<SECTION>_<KEY> variables override it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides pipeline.log_level")

	cmd.AddCommand(newAnalyzeCommand(a))
	cmd.AddCommand(newGenerateCommand(a))
	cmd.AddCommand(newDemoCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newConfigCommand(a))

	return cmd
}

func (a *app) init(stderr io.Writer) error {
	conf, err := cfg.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.conf = conf

	a.log.SetOutput(stderr)
	lvl := a.logLevel
	if lvl == "" {
		lvl = conf.Pipeline.LogLvl
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.log.SetLevel(level)
	switch strings.ToLower(conf.Pipeline.LogFormat) {
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if conf.Source != "" {
		a.log.WithField("file", conf.Source).Debug("config loaded")
	}
	return nil
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
