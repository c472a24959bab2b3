package cluster

import (
	"fmt"
	"math"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// TFIDFConfig mirrors the usual text-vectorizer knobs.
type TFIDFConfig struct {
	MaxFeatures  int     // keep this many terms with the highest corpus counts
	MinDF        int     // a term must occur in at least this many documents
	MaxDF        float64 // a term occurring in more than this fraction of documents is dropped
	MinN, MaxN   int     // n-gram range, inclusive
	StopWords    bool    // drop English stop words before building n-grams
	// TokenPattern must match a whole word for it to count as a token.
	// Words are maximal runs of Unicode letters, digits and underscores.
	TokenPattern *regexp.Regexp
}

// DefaultTFIDFConfig returns the settings used for bookmark signatures:
// unigrams and bigrams of alphabetic runs of at least two letters.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxFeatures:  1000,
		MinDF:        2,
		MaxDF:        0.8,
		MinN:         1,
		MaxN:         2,
		StopWords:    true,
		TokenPattern: regexp.MustCompile(`^[a-zA-Z]{2,}$`),
	}
}

// TFIDF is a Vectorizer producing smoothed, L2-normalized TF-IDF rows.
type TFIDF struct {
	cfg TFIDFConfig
}

// NewTFIDF creates a TFIDF vectorizer.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	if cfg.TokenPattern == nil {
		cfg.TokenPattern = DefaultTFIDFConfig().TokenPattern
	}
	if cfg.MinN < 1 {
		cfg.MinN = 1
	}
	if cfg.MaxN < cfg.MinN {
		cfg.MaxN = cfg.MinN
	}
	return &TFIDF{cfg: cfg}
}

// Analyze splits one document into the terms the vectorizer counts.
func (t *TFIDF) Analyze(doc string) []string {
	var tokens []string
	for _, tok := range strings.FieldsFunc(strings.ToLower(doc), isWordBreak) {
		if !t.cfg.TokenPattern.MatchString(tok) {
			continue
		}
		if t.cfg.StopWords && isStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	var terms []string
	for n := t.cfg.MinN; n <= t.cfg.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// isWordBreak reports whether r separates words. Accented letters do not, so
// "café" stays one word and is dropped whole instead of yielding "caf".
func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// Vectorize fits the vocabulary on docs and returns their TF-IDF matrix.
func (t *TFIDF) Vectorize(docs []string) (Matrix, error) {
	n := len(docs)
	if n == 0 {
		return Matrix{}, ErrTooFewDocuments
	}

	counts := make([]map[string]int, n)
	if err := parallelRange(n, func(i int) error {
		c := make(map[string]int)
		for _, term := range t.Analyze(docs[i]) {
			c[term]++
		}
		counts[i] = c
		return nil
	}); err != nil {
		return Matrix{}, err
	}

	df := make(map[string]int)
	total := make(map[string]int)
	for _, c := range counts {
		for term, k := range c {
			df[term]++
			total[term] += k
		}
	}

	maxDocs := t.cfg.MaxDF * float64(n)
	if maxDocs < float64(t.cfg.MinDF) {
		return Matrix{}, fmt.Errorf("%w: max_df allows %.1f documents, min_df requires %d", ErrEmptyVocabulary, maxDocs, t.cfg.MinDF)
	}

	var vocab []string
	for term, d := range df {
		if d >= t.cfg.MinDF && float64(d) <= maxDocs {
			vocab = append(vocab, term)
		}
	}
	if len(vocab) == 0 {
		return Matrix{}, ErrEmptyVocabulary
	}

	if t.cfg.MaxFeatures > 0 && len(vocab) > t.cfg.MaxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if total[vocab[i]] != total[vocab[j]] {
				return total[vocab[i]] > total[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:t.cfg.MaxFeatures]
	}
	sort.Strings(vocab)

	column := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		column[term] = j
		idf[j] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	rows := make([][]float64, n)
	if err := parallelRange(n, func(i int) error {
		row := make([]float64, len(vocab))
		for term, k := range counts[i] {
			if j, ok := column[term]; ok {
				row[j] = float64(k) * idf[j]
			}
		}
		// Sum in column order so the norm is bit-identical across runs.
		var norm float64
		for _, x := range row {
			norm += x * x
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
		return nil
	}); err != nil {
		return Matrix{}, err
	}

	return Matrix{Rows: rows, Terms: vocab}, nil
}

// parallelRange runs fn(i) for every i in [0, n) across GOMAXPROCS workers.
// Callers write results into slot i only, so output order never depends on scheduling.
func parallelRange(n int, fn func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
