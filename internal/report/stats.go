// Package report computes bookmark statistics and renders them, together with
// the processing summary of a run, for the terminal.
package report

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/bmorg/internal/model"
)

// TopN is the length of the domain and folder rankings.
const TopN = 10

// Count is one ranked entry.
type Count struct {
	Name    string
	Count   int
	Percent float64
}

// Dated is a bookmark with a parsed ADD_DATE.
type Dated struct {
	Title string
	Added time.Time
}

// Stats describes a flat bookmark list.
type Stats struct {
	Total        int
	Folders      int // distinct folder paths
	WithIcons    int
	WithoutIcons int
	MaxDepth     int
	Domains      int // distinct hosts
	Oldest       *Dated
	Newest       *Dated
	TopDomains   []Count
	TopFolders   []Count
}

// ComputeStats summarizes bookmarks. Hosts are counted as they appear in the
// URL; a URL that does not parse counts as "invalid_url".
func ComputeStats(bookmarks []model.Bookmark) Stats {
	s := Stats{Total: len(bookmarks)}
	domains := newCounter()
	folders := newCounter()

	for _, b := range bookmarks {
		if b.Icon != "" {
			s.WithIcons++
		}

		host := "invalid_url"
		if u, err := url.Parse(b.URL); err == nil {
			host = u.Host
		}
		domains.add(host)

		if len(b.FolderPath) > 0 {
			folders.add(strings.Join(b.FolderPath, "/"))
			s.MaxDepth = max(s.MaxDepth, len(b.FolderPath))
		}

		if secs, err := strconv.ParseInt(b.AddDate, 10, 64); err == nil {
			d := &Dated{Title: b.Title, Added: time.Unix(secs, 0).UTC()}
			if s.Oldest == nil || d.Added.Before(s.Oldest.Added) {
				s.Oldest = d
			}
			if s.Newest == nil || d.Added.After(s.Newest.Added) {
				s.Newest = d
			}
		}
	}

	s.WithoutIcons = s.Total - s.WithIcons
	s.Domains = len(domains.order)
	s.Folders = len(folders.order)
	s.TopDomains = domains.top(TopN, s.Total)
	s.TopFolders = folders.top(TopN, s.Total)
	return s
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top ranks keys by count; ties keep first-seen order.
func (c *counter) top(n, total int) []Count {
	ranked := make([]Count, 0, len(c.order))
	for _, key := range c.order {
		ranked = append(ranked, Count{Name: key, Count: c.counts[key], Percent: Percent(c.counts[key], total)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
