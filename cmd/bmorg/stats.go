package main

import (
	"github.com/nikbrunner/bmorg/internal/report"
	"github.com/spf13/cobra"
)

func NewStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <input>",
		Short: "Show statistics about a bookmark export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks, err := a.loadInput(args[0])
			if err != nil {
				return err
			}

			a.renderer(cmd).Stats(report.ComputeStats(bookmarks))
			return nil
		},
	}
}
