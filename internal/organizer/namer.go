package organizer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nikbrunner/bmorg/internal/model"
)

// OtherClusterName names a cluster with no usable words or domains.
const OtherClusterName = "Other"

// namingStopWords never name a cluster.
var namingStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"this", "that", "these", "those", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "should", "could", "may",
	"might", "must", "can", "your", "my", "our", "their", "his", "her", "its", "com",
	"org", "net", "edu", "gov", "io", "www", "home", "page", "site", "official", "website",
}

var namingStopSet = toSet(namingStopWords)

// NamerConfig holds the cluster naming thresholds.
type NamerConfig struct {
	// FolderPathThreshold is the share of bookmarks a folder segment must reach to name the cluster.
	FolderPathThreshold float64
	// SecondaryWordThreshold is the share of the primary word's count a secondary word must reach.
	SecondaryWordThreshold float64
}

// DefaultNamerConfig returns the 40%/40% thresholds.
func DefaultNamerConfig() NamerConfig {
	return NamerConfig{FolderPathThreshold: 0.4, SecondaryWordThreshold: 0.4}
}

// NameCluster derives a folder name for the bookmarks of one cluster.
//
// A folder segment shared by enough bookmarks wins outright. Otherwise the most
// frequent title word is the primary name, followed by up to two frequent
// secondary words joined with " & ". Clusters without title words are named
// after their most frequent domain, or OtherClusterName.
func NameCluster(bookmarks []model.Bookmark, cfg NamerConfig) string {
	words := newTally()
	folders := newTally()
	domains := newTally()

	for _, b := range bookmarks {
		for _, w := range strings.Fields(strings.ToLower(b.Title)) {
			if _, stop := namingStopSet[w]; stop || utf8.RuneCountInString(w) <= 2 {
				continue
			}
			words.add(w)
		}
		if d := ParseDomain(b.URL).String(); d != "" {
			domains.add(d)
		}
		for _, seg := range b.FolderPath {
			folders.add(strings.ToLower(seg))
		}
	}

	if top := folders.top(1); len(top) == 1 && float64(top[0].count) >= float64(len(bookmarks))*cfg.FolderPathThreshold {
		return capitalize(top[0].key)
	}

	if top := words.top(3); len(top) > 0 {
		primary := capitalize(top[0].key)
		names := []string{primary}
		for _, e := range top[1:] {
			if strings.Contains(strings.ToLower(primary), e.key) {
				continue
			}
			if float64(e.count) >= float64(top[0].count)*cfg.SecondaryWordThreshold {
				names = append(names, capitalize(e.key))
			}
		}
		return strings.Join(names, " & ")
	}

	if top := domains.top(1); len(top) == 1 {
		return capitalize(top[0].key)
	}
	return OtherClusterName
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

type tallyEntry struct {
	key   string
	count int
}

// tally counts keys and remembers first-seen order for tie breaking.
type tally struct {
	index   map[string]int
	entries []tallyEntry
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(key string) {
	if i, ok := t.index[key]; ok {
		t.entries[i].count++
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, tallyEntry{key: key, count: 1})
}

// top returns up to n entries by descending count; ties keep first-seen order.
func (t *tally) top(n int) []tallyEntry {
	sorted := append([]tallyEntry(nil), t.entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
