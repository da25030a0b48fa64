package main

import (
	"github.com/spf13/cobra"
)

func newScriptCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "script SCRIPT.lua FILE [LINE:COL...]",
		Short: "Run a Lua script against a document",
		Long: `script loads FILE, places cursors at the given positions (default 1:1),
runs SCRIPT.lua with the document bound to the global "doc", and prints the
resulting cursors. The script can call doc.dispatch("pair.exit") and any
action registered by a plugin.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			a, err := newApplication(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.OpenDocument(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if len(args) > 2 {
				points, err := parsePositions(e.Snapshot(), args[2:])
				if err != nil {
					return err
				}
				e.SetCursorPoints(points)
			}

			if err := a.Plugins().RunScript(args[0]); err != nil {
				return err
			}
			return writePoints(cmd.OutOrStdout(), format, e.CursorPoints())
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}
