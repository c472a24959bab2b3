package main

import (
	"fmt"
	"strconv"

	"github.com/nikbrunner/bmorg/internal/exporter"
	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/nikbrunner/bmorg/internal/report"
	"github.com/nikbrunner/bmorg/internal/storage"
	"github.com/spf13/cobra"
)

func NewOrganizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <input>",
		Short: "Regroup bookmarks into topic folders",
		Long: `Read bookmarks from a Netscape export (.html) or a flat list (.json, .jsonl),
regroup them and write a new Netscape export. The organized tree can also be
written as JSON and as a SQLite database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			jsonPath, _ := cmd.Flags().GetString("json")
			dbPath, _ := cmd.Flags().GetString("db")

			now := a.now()
			if output == "" {
				var err error
				if output, err = exporter.DefaultExportPath(now); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			bookmarks, err := a.loadInput(args[0])
			if err != nil {
				return err
			}

			runID := model.GenerateUUID()
			a.logger.Debug().Str("run", runID).Msg("organizing")
			res := a.organizer().Organize(bookmarks)

			html := exporter.ExportHTML(res.Root, strconv.FormatInt(now.Unix(), 10))
			if err := storage.WriteFile(output, []byte(html)); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			outputs := []string{output}

			for _, path := range []string{jsonPath, dbPath} {
				if path == "" {
					continue
				}
				if err := saveTree(path, res.Root); err != nil {
					return err
				}
				outputs = append(outputs, path)
			}
			a.logger.Info().Strs("outputs", outputs).Msg("wrote organized bookmarks")

			a.renderer(cmd).Summary(report.Summary{
				RunID:   runID,
				Result:  res,
				Input:   args[0],
				Outputs: outputs,
			})
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "HTML output file (default ~/Downloads/bookmarks-organized-<date>.html)")
	cmd.Flags().String("json", "", "Also write the organized tree as JSON")
	cmd.Flags().String("db", "", "Also write the organized tree to a SQLite database")
	return cmd
}

func saveTree(path string, root *model.FolderNode) error {
	s, err := storage.OpenStorage(path)
	if err != nil {
		return err
	}
	if c, ok := s.(interface{ Close() error }); ok {
		defer c.Close()
	}
	if err := s.Save(root); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
