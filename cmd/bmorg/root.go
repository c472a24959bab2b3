package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmorg/internal/importer"
	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/nikbrunner/bmorg/internal/organizer"
	"github.com/nikbrunner/bmorg/internal/report"
	"github.com/nikbrunner/bmorg/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    storage.Config
	logger zerolog.Logger
	now    func() time.Time
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{now: time.Now, logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "bmorg",
		Short: "Reorganize browser bookmarks into topic folders",
		Long: `Reads a browser bookmark export, removes duplicates, groups the rest into
named topic folders and writes a new export with a Bookmarks Bar on top.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		NewExtractCmd(a),
		NewOrganizeCmd(a),
		NewStatsCmd(a),
		NewLocateCmd(a),
	)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.config/bmorg/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// setup loads the config, applies environment overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = storage.DefaultConfigFilePath(); err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	a.cfg = *cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

func (a *app) organizer() *organizer.Organizer {
	return organizer.New(organizer.Options{
		Config: &organizer.Config{
			MaxClusters: a.cfg.MaxClusters,
			Namer: organizer.NamerConfig{
				FolderPathThreshold:    a.cfg.FolderPathThreshold,
				SecondaryWordThreshold: a.cfg.SecondaryWordThreshold,
			},
			StrictClassRule: a.cfg.StrictClassRule,
			MatchFullHost:   a.cfg.MatchFullHost,
		},
		Logger: &a.logger,
		Now:    a.now,
	})
}

func (a *app) renderer(cmd *cobra.Command) *report.Renderer {
	return report.NewRenderer(cmd.OutOrStdout(), report.DefaultStyles())
}

// loadInput reads bookmarks from a Netscape HTML export or a JSON/JSONL list.
func (a *app) loadInput(path string) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		bookmarks, err = importer.ParseHTMLBookmarks(f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		var err error
		bookmarks, err = storage.LoadBookmarks(path)
		if err != nil {
			return nil, err
		}
	}

	a.logger.Info().Str("input", path).Int("bookmarks", len(bookmarks)).Msg("read bookmarks")
	return bookmarks, nil
}
