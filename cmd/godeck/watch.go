package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoDeck/pipeline"
)

func newWatchCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a deck whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.log.Info("watching", "path", path)
			return pipeline.Watch(cmd.Context(), path, pipeline.DefaultDebounce, a.log, func(ctx context.Context) error {
				return a.renderFile(ctx, path, flags, false)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
