package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/app"
	"github.com/dshills/pairjump/internal/delim"
)

type motionCommand struct {
	use    string
	motion string
	short  string
}

var motionCommands = []motionCommand{
	{"exit", "exit", "Move past the closer of the enclosing pair"},
	{"enter", "enter", "Move back onto the previous closer"},
	{"exit-backward", "exitBackward", "Move onto the opener of the enclosing pair"},
	{"enter-forward", "enterForward", "Move just inside the next opener"},
}

func newMotionCmd(mc motionCommand) *cobra.Command {
	var (
		format string
		count  int
	)
	cmd := &cobra.Command{
		Use:   mc.use + " FILE LINE:COL...",
		Short: mc.short,
		Long: mc.short + `.

FILE is read from standard input when it is "-". Each position is moved
independently and printed on its own line, in argument order. Positions that
do not move are printed dimmed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			m, ok := delim.Lookup(mc.motion)
			if !ok {
				return fmt.Errorf("unknown motion %q", mc.motion)
			}

			a, err := newApplication(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := app.LoadDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			snap := e.Snapshot()
			points, err := parsePositions(snap, args[1:])
			if err != nil {
				return err
			}

			if limit := a.Config().Dispatcher.MaxRepeatCount; limit > 0 && count > limit {
				a.Logger().Debug("count clamped", zap.Int("count", count), zap.Int("limit", limit))
				count = limit
			}
			moved := delim.Apply(snap, delim.Repeat(m, count), points)
			a.Logger().Debug("motion applied",
				zap.String("motion", mc.motion),
				zap.String("file", args[0]),
				zap.Int("positions", len(points)),
				zap.Int("count", count),
			)
			return writeMoves(cmd.OutOrStdout(), format, points, moved)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "repeat the motion N times")
	return cmd
}
