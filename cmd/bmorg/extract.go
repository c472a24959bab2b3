package main

import (
	"fmt"

	"github.com/nikbrunner/bmorg/internal/report"
	"github.com/nikbrunner/bmorg/internal/storage"
	"github.com/spf13/cobra"
)

func NewExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <bookmarks.html>",
		Short: "Convert a bookmark export into a flat JSON list",
		Long: `Parse a Netscape bookmark export and write every bookmark, with the chain of
folders it was found in, as JSON (.json) or JSON lines (.jsonl).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			bookmarks, err := a.loadInput(args[0])
			if err != nil {
				return err
			}

			if err := storage.SaveBookmarks(output, bookmarks); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info().Str("output", output).Msg("wrote raw bookmarks")

			a.renderer(cmd).Stats(report.ComputeStats(bookmarks))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "bookmarks.json", "Output file (.json or .jsonl)")
	return cmd
}
