package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/pairjump/internal/rpc"
)

func newServeCmd() *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer line-delimited JSON requests on stdin",
		Long: `serve reads one JSON request per line from standard input and writes one
response per line to standard output, in order. It stops at end of input.

Request:  {"id": 1, "method": "pair.exit", "text": "f(a)", "cursors": [{"line": 0, "character": 2}]}
Response: {"id": 1, "status": "ok", "cursors": [{"line": 0, "character": 4}]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApplication(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.Config()
			srv := rpc.NewServer(a, cmd.InOrStdin(), cmd.OutOrStdout(), rpc.Options{
				WatchConfig: cfg.Serve.WatchConfig && !noWatch,
				Debounce:    time.Duration(cfg.Serve.DebounceMS) * time.Millisecond,
			})
			return srv.Serve(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file when it changes")
	return cmd
}
