// Package cluster assigns bookmark text signatures to groups.
//
// The statistical path vectorizes signatures with TF-IDF and merges them with
// Ward-linkage agglomerative clustering. When that path fails for any reason the
// Clusterer answers with Fallback, which buckets signatures by a fixed
// domain-keyword table and never fails.
package cluster

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyVocabulary is returned when document-frequency pruning leaves no terms.
	ErrEmptyVocabulary = errors.New("no terms remain after pruning")
	// ErrTooFewDocuments is returned when there are too few documents for the requested clusters.
	ErrTooFewDocuments = errors.New("too few documents to cluster")
	// ErrInvalidClusterCount is returned for a cluster count outside [1, documents].
	ErrInvalidClusterCount = errors.New("invalid cluster count")
)

// Matrix is a dense row-major document-term matrix.
type Matrix struct {
	Rows  [][]float64
	Terms []string // column labels
}

// Vectorizer turns documents into fixed-dimension vectors, one row per document.
type Vectorizer interface {
	Vectorize(docs []string) (Matrix, error)
}

// Linker partitions the rows of a matrix into k groups.
// Labels are in [0, k) and align with the input rows.
type Linker interface {
	Link(m Matrix, k int) ([]int, error)
}

// Method records which path produced a set of labels.
type Method string

const (
	MethodStatistical Method = "tfidf-ward"
	MethodFallback    Method = "domain-fallback"
)

// Result holds one label per input signature.
type Result struct {
	Labels []int
	Method Method
	Err    error // why the statistical path was abandoned; nil for MethodStatistical
}

// Clusterer runs the statistical path and falls back to domain buckets.
type Clusterer struct {
	vectorizer Vectorizer
	linker     Linker
	logger     zerolog.Logger
}

// Options configures a Clusterer. Zero values select the defaults.
type Options struct {
	Vectorizer Vectorizer
	Linker     Linker
	Logger     *zerolog.Logger
}

// New creates a Clusterer.
func New(opts Options) *Clusterer {
	c := &Clusterer{
		vectorizer: opts.Vectorizer,
		linker:     opts.Linker,
		logger:     zerolog.Nop(),
	}
	if c.vectorizer == nil {
		c.vectorizer = NewTFIDF(DefaultTFIDFConfig())
	}
	if c.linker == nil {
		c.linker = Ward{}
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	}
	return c
}

// Assign labels every signature. It never fails: any error from the statistical
// path is logged and the fallback labels are returned instead.
func (c *Clusterer) Assign(signatures []string, k int) Result {
	labels, err := c.statistical(signatures, k)
	if err == nil {
		c.logger.Debug().Int("documents", len(signatures)).Int("clusters", k).Msg("statistical clustering succeeded")
		return Result{Labels: labels, Method: MethodStatistical}
	}

	c.logger.Warn().Err(err).Msg("clustering failed, using domain-based grouping instead")
	return Result{Labels: Fallback(signatures), Method: MethodFallback, Err: err}
}

func (c *Clusterer) statistical(signatures []string, k int) (labels []int, err error) {
	// A numerical library may panic on degenerate input; treat it like any other failure.
	defer func() {
		if r := recover(); r != nil {
			labels, err = nil, fmt.Errorf("clustering panicked: %v", r)
		}
	}()

	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClusterCount, k)
	}
	// Asking for as many clusters as documents yields only singletons.
	if len(signatures) < 2 || k >= len(signatures) {
		return nil, fmt.Errorf("%w: %d documents for %d clusters", ErrTooFewDocuments, len(signatures), k)
	}

	m, err := c.vectorizer.Vectorize(signatures)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}

	labels, err = c.linker.Link(m, k)
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	if len(labels) != len(signatures) {
		return nil, fmt.Errorf("link: got %d labels for %d documents", len(labels), len(signatures))
	}
	return labels, nil
}
