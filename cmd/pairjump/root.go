package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/pairjump/internal/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pairjump",
		Short: "Jump across bracket and quote pairs",
		Long: `pairjump moves cursors out of and into (), [], {} and quoted strings.

Positions on the command line are 1-based LINE:COL, with COL counted in
characters.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyColorFlag(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default $XDG_CONFIG_HOME/pairjump/config.toml)")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	for _, mc := range motionCommands {
		root.AddCommand(newMotionCmd(mc))
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newScriptCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func applyColorFlag(cmd *cobra.Command) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(cmd.OutOrStdout())
	default:
		return fmt.Errorf("invalid --color %q (must be auto, on or off)", colorFlag)
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newApplication builds the application from the persistent flags. Logs go
// to stderr so stdout carries only results.
func newApplication(cmd *cobra.Command) (*app.Application, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	return app.New(app.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		LogOutput:  cmd.ErrOrStderr(),
	})
}
