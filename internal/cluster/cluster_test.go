package cluster_test

import (
	"errors"
	"math"
	"testing"

	"github.com/nikbrunner/bmorg/internal/cluster"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var groupedDocs = []string{
	"github repo code",
	"github repo python",
	"cooking recipes pasta",
	"cooking recipes bread",
}

func TestAnalyze(t *testing.T) {
	v := cluster.NewTFIDF(cluster.DefaultTFIDFConfig())

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "stop words numbers and single letters",
			doc:  "The Quick brown fox 42 a",
			want: []string{"quick", "brown", "fox", "quick brown", "brown fox"},
		},
		{
			name: "accented words are dropped whole",
			doc:  "café recipes naïve",
			want: []string{"recipes"},
		},
		{
			name: "letters joined to digits or underscores",
			doc:  "web2 go_lang python-docs",
			want: []string{"python", "docs", "python docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, v.Analyze(tt.doc), tt.want)
		})
	}
}

func TestVectorize_Vocabulary(t *testing.T) {
	v := cluster.NewTFIDF(cluster.DefaultTFIDFConfig())

	m, err := v.Vectorize(groupedDocs)
	assert.NilError(t, err)

	assert.DeepEqual(t, m.Terms, []string{"cooking", "cooking recipes", "github", "github repo", "recipes", "repo"})
	assert.Assert(t, is.Len(m.Rows, 4))

	for i, row := range m.Rows {
		var norm float64
		for _, x := range row {
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("row %d: expected unit norm, got %f", i, norm)
		}
	}

	// Three terms with equal weight.
	want := 1 / math.Sqrt(3)
	if math.Abs(m.Rows[0][2]-want) > 1e-9 {
		t.Errorf("expected weight %f for github, got %f", want, m.Rows[0][2])
	}
	if m.Rows[0][0] != 0 {
		t.Errorf("expected zero weight for cooking in first row, got %f", m.Rows[0][0])
	}
}

func TestVectorize_Errors(t *testing.T) {
	v := cluster.NewTFIDF(cluster.DefaultTFIDFConfig())

	tests := []struct {
		name string
		docs []string
		want error
	}{
		{name: "no documents", docs: nil, want: cluster.ErrTooFewDocuments},
		{name: "no shared terms", docs: []string{"alpha", "beta", "gamma"}, want: cluster.ErrEmptyVocabulary},
		{name: "max_df below min_df", docs: []string{"same words", "same words"}, want: cluster.ErrEmptyVocabulary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Vectorize(tt.docs)
			assert.Assert(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestWard_SeparatedGroups(t *testing.T) {
	m := cluster.Matrix{Rows: [][]float64{
		{10, 10},
		{0, 0},
		{10, 11},
		{0, 1},
		{0, 0.5},
	}}

	labels, err := cluster.Ward{}.Link(m, 2)
	assert.NilError(t, err)

	// Labels follow first appearance.
	assert.DeepEqual(t, labels, []int{0, 1, 0, 1, 1})
}

func TestWard_ClusterCountBounds(t *testing.T) {
	m := cluster.Matrix{Rows: [][]float64{{0}, {1}, {5}}}

	all, err := cluster.Ward{}.Link(m, 1)
	assert.NilError(t, err)
	assert.DeepEqual(t, all, []int{0, 0, 0})

	each, err := cluster.Ward{}.Link(m, 3)
	assert.NilError(t, err)
	assert.DeepEqual(t, each, []int{0, 1, 2})

	_, err = cluster.Ward{}.Link(m, 4)
	assert.Assert(t, errors.Is(err, cluster.ErrInvalidClusterCount))
}

func TestWard_ThreeGroups(t *testing.T) {
	m := cluster.Matrix{Rows: [][]float64{
		{0, 0}, {0.2, 0}, {5, 5}, {5.1, 5}, {-5, 5}, {-5, 5.2},
	}}

	labels, err := cluster.Ward{}.Link(m, 3)
	assert.NilError(t, err)
	assert.DeepEqual(t, labels, []int{0, 0, 1, 1, 2, 2})
}

func TestFallback(t *testing.T) {
	signatures := []string{
		"github my repo",
		"github other repo",
		"docs.python python docs",
		"",
		"mail.google inbox",
		"youtube-dropbox mixed",
	}

	got := cluster.Fallback(signatures)

	assert.DeepEqual(t, got, []int{1, 1, 15, 15, 0, 0})
	assert.DeepEqual(t, cluster.Fallback(signatures), got)
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, cluster.CategoryFor("github").Name, "Code hosting")
	assert.Equal(t, cluster.CategoryFor("python"), cluster.DefaultCategory)
	// "inbox" contains "box" and matches cloud storage.
	assert.Equal(t, cluster.CategoryFor("inbox").ID, 7)
}

func TestClusterer_Statistical(t *testing.T) {
	c := cluster.New(cluster.Options{})

	res := c.Assign(groupedDocs, 2)

	assert.Equal(t, res.Method, cluster.MethodStatistical)
	assert.NilError(t, res.Err)
	assert.DeepEqual(t, res.Labels, []int{0, 0, 1, 1})
}

func TestClusterer_FallsBackOnSmallInput(t *testing.T) {
	c := cluster.New(cluster.Options{})
	signatures := []string{"github my repo", "github other repo", "docs.python python docs"}

	res := c.Assign(signatures, 3)

	assert.Equal(t, res.Method, cluster.MethodFallback)
	assert.Assert(t, errors.Is(res.Err, cluster.ErrTooFewDocuments))
	assert.DeepEqual(t, res.Labels, []int{1, 1, 15})
}

type panickingLinker struct{}

func (panickingLinker) Link(cluster.Matrix, int) ([]int, error) { panic("singular matrix") }

type shortLinker struct{}

func (shortLinker) Link(cluster.Matrix, int) ([]int, error) { return []int{0}, nil }

func TestClusterer_LinkerFailures(t *testing.T) {
	tests := []struct {
		name   string
		linker cluster.Linker
	}{
		{name: "panic", linker: panickingLinker{}},
		{name: "wrong label count", linker: shortLinker{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cluster.New(cluster.Options{Linker: tt.linker})

			res := c.Assign(groupedDocs, 2)

			assert.Equal(t, res.Method, cluster.MethodFallback)
			assert.Assert(t, res.Err != nil)
			assert.Assert(t, is.Len(res.Labels, len(groupedDocs)))
		})
	}
}

func TestClusterer_InvalidK(t *testing.T) {
	res := cluster.New(cluster.Options{}).Assign(groupedDocs, 0)

	assert.Equal(t, res.Method, cluster.MethodFallback)
	assert.Assert(t, errors.Is(res.Err, cluster.ErrInvalidClusterCount))
}
