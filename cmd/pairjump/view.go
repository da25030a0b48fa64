package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/tui"
)

func newViewCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Try motions on a file in the terminal",
		Long: `view shows FILE in the terminal. Arrow keys and hjkl move the cursor,
digits set a count, "." repeats the last motion, and q or Esc quits.
Keys bound in the [keymap] config section dispatch their actions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApplication(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.OpenDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if at != "" {
				p, err := parsePosition(e.Snapshot(), at)
				if err != nil {
					return err
				}
				e.SetCursorPoints([]buffer.Point{p})
			}
			return tui.Run(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "initial cursor position (LINE:COL)")
	return cmd
}
