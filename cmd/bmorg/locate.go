package main

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/bmorg/internal/search"
	"github.com/spf13/cobra"
)

func NewLocateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate <input> <query>",
		Short: "Show which folders a bookmark ends up in",
		Long: `Organize the input without writing anything and fuzzy-match bookmark titles
against the query. Each match is printed with its folder in the organized tree.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			bookmarks, err := a.loadInput(args[0])
			if err != nil {
				return err
			}

			res := a.organizer().Organize(bookmarks)
			query := strings.Join(args[1:], " ")
			results := search.FuzzySearchBookmarks(res.Root, query)
			if len(results) == 0 {
				return fmt.Errorf("no bookmark matches %q", query)
			}

			out := cmd.OutOrStdout()
			for i, r := range results {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", strings.Join(r.Folder, "/"), r.Bookmark.Title, r.Bookmark.URL)
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of matches to print (0 for all)")
	return cmd
}
