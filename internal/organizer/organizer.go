// Package organizer regroups a flat bookmark export into a semantic folder tree.
//
// The pipeline deduplicates the input by URL, builds a text signature per
// bookmark, clusters the signatures, names each cluster and places copies of
// its bookmarks in one folder per name. A Bookmarks Bar folder is filled
// independently from the original, non-deduplicated input.
package organizer

import (
	"strconv"
	"time"

	"github.com/nikbrunner/bmorg/internal/cluster"
	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/rs/zerolog"
)

// DefaultMaxClusters caps the number of statistical clusters.
const DefaultMaxClusters = 10

// Config holds the tunable parts of the pipeline.
type Config struct {
	MaxClusters     int
	Namer           NamerConfig
	StrictClassRule bool
	MatchFullHost   bool
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		MaxClusters:     DefaultMaxClusters,
		Namer:           DefaultNamerConfig(),
		StrictClassRule: true,
	}
}

// Options configures an Organizer. Zero values select the defaults.
type Options struct {
	Config    *Config
	Clusterer *cluster.Clusterer
	Logger    *zerolog.Logger
	Now       func() time.Time
}

// Organizer runs the reorganization pipeline.
type Organizer struct {
	cfg        Config
	clusterer  *cluster.Clusterer
	classifier FrequentUseClassifier
	logger     zerolog.Logger
	now        func() time.Time
}

// New creates an Organizer.
func New(opts Options) *Organizer {
	o := &Organizer{
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	if opts.Config != nil {
		o.cfg = *opts.Config
	}
	if o.cfg.MaxClusters < 1 {
		o.cfg.MaxClusters = DefaultMaxClusters
	}
	if opts.Logger != nil {
		o.logger = *opts.Logger
	}
	if opts.Now != nil {
		o.now = opts.Now
	}
	o.clusterer = opts.Clusterer
	if o.clusterer == nil {
		o.clusterer = cluster.New(cluster.Options{Logger: &o.logger})
	}
	o.classifier = FrequentUseClassifier{Strict: o.cfg.StrictClassRule, MatchFullHost: o.cfg.MatchFullHost}
	return o
}

// ClusterInfo describes one cluster of the last run.
type ClusterInfo struct {
	Label int
	Name  string
	Size  int
}

// Result is the output of one run.
type Result struct {
	Root        *model.FolderNode
	Input       int
	Unique      int
	Dropped     int
	Method      cluster.Method // empty when there was nothing to cluster
	FallbackErr error
	Clusters    []ClusterInfo
	BarSize     int
}

// Organize builds the folder tree for bookmarks. It never fails.
func (o *Organizer) Organize(bookmarks []model.Bookmark) Result {
	timestamp := strconv.FormatInt(o.now().Unix(), 10)
	builder := NewTreeBuilder(timestamp)

	unique, dropped := Deduplicate(bookmarks)
	res := Result{
		Input:   len(bookmarks),
		Unique:  len(unique),
		Dropped: dropped,
	}
	o.logger.Info().
		Int("input", res.Input).
		Int("unique", res.Unique).
		Int("dropped", res.Dropped).
		Msg("deduplicated bookmarks")

	if len(unique) > 0 {
		records := ExtractFeatures(unique)
		k := min(o.cfg.MaxClusters, len(unique))
		assigned := o.clusterer.Assign(Signatures(records), k)
		res.Method = assigned.Method
		res.FallbackErr = assigned.Err
		o.logger.Debug().Str("method", string(assigned.Method)).Int("clusters", k).Msg("clustered bookmarks")

		labels, groups := groupByLabel(unique, assigned.Labels)
		for _, label := range labels {
			members := groups[label]
			name := NameCluster(members, o.cfg.Namer)
			builder.AddCluster(name, members)
			res.Clusters = append(res.Clusters, ClusterInfo{Label: label, Name: name, Size: len(members)})
		}
	}

	for _, b := range o.classifier.Select(bookmarks) {
		if builder.AddToBar(b) {
			res.BarSize++
		}
	}

	res.Root = builder.Root()
	o.logger.Info().
		Int("folders", res.Root.CountFolders()).
		Int("placements", res.Root.CountBookmarks()).
		Msg("built folder tree")
	return res
}
