package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facet/internal/config"
	"facet/internal/logger"
)

var version = "dev"

type rootOptions struct {
	cfgFile string
	theme   string
	mode    string
	debug   bool
	logFile string

	v   *viper.Viper
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	root := &cobra.Command{
		Use:           "facet",
		Short:         "Language-aware highlighting and indentation for text buffers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default: .facet/config.yaml, then ~/.config/facet/config.yaml)")
	flags.StringVar(&opts.theme, "theme", "", "color theme (for example: nord, dracula, monokai, github, solarized-dark)")
	flags.StringVarP(&opts.mode, "mode", "m", "", "force a major mode instead of resolving it from the file name")
	flags.BoolVar(&opts.debug, "debug", false, "log debug entries")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	_ = opts.v.BindPFlag("theme", flags.Lookup("theme"))
	_ = opts.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = opts.v.BindPFlag("log_file", flags.Lookup("log-file"))

	root.AddCommand(
		newHighlightCmd(opts),
		newIndentCmd(opts),
		newNewlineCmd(opts),
		newModesCmd(opts),
		newViewCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func (o *rootOptions) load(*cobra.Command) error {
	cfg, _, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg

	flush, err := logger.Init(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	cobra.OnFinalize(flush)
	return nil
}

func main() {
	// Query the background color before any Bubble Tea program reads input.
	_ = lipgloss.HasDarkBackground()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "facet: %v\n", err)
		os.Exit(1)
	}
}
