package organizer

import (
	"slices"
	"strings"

	"github.com/nikbrunner/bmorg/internal/model"
)

// OriginalBarSegment is the folder segment browsers use for the toolbar in exports.
const OriginalBarSegment = "Bookmarks bar"

// ToolDomains are hosts promoted to the Bookmarks Bar.
// They only match when MatchFullHost is set; a normalized domain such as "github" never equals "github.com".
var ToolDomains = []string{"google.com", "gmail.com", "github.com", "stackoverflow.com", "wikipedia.org"}

// ClassKeywords mark course material in a title or URL.
var ClassKeywords = []string{"canvas", "class", "lecture", "homework", "assignment", "course", "syllabus"}

// FrequentUseClassifier decides which bookmarks are copied into the Bookmarks Bar.
type FrequentUseClassifier struct {
	// Strict requires a class keyword to come with a tool domain.
	// When false, a keyword alone is enough.
	Strict bool
	// MatchFullHost compares ToolDomains against the host ("github.com")
	// instead of the normalized domain ("github").
	MatchFullHost bool
}

// IsFrequentlyUsed reports whether b belongs in the Bookmarks Bar.
func (c FrequentUseClassifier) IsFrequentlyUsed(b model.Bookmark) bool {
	if b.InFolder(OriginalBarSegment) {
		return true
	}

	tool := isToolDomain(c.host(b.URL))
	if hasClassKeyword(b) && (tool || !c.Strict) {
		return true
	}
	return tool
}

// Select returns the bookmarks that qualify, at most one per URL, in input order.
func (c FrequentUseClassifier) Select(bookmarks []model.Bookmark) []model.Bookmark {
	seen := make(map[string]struct{})
	var selected []model.Bookmark
	for _, b := range bookmarks {
		if !c.IsFrequentlyUsed(b) {
			continue
		}
		if _, dup := seen[b.URL]; dup {
			continue
		}
		seen[b.URL] = struct{}{}
		selected = append(selected, b)
	}
	return selected
}

func (c FrequentUseClassifier) host(rawURL string) string {
	if c.MatchFullHost {
		return NormalizeHost(rawURL)
	}
	return ParseDomain(rawURL).String()
}

func hasClassKeyword(b model.Bookmark) bool {
	title := strings.ToLower(b.Title)
	u := strings.ToLower(b.URL)
	for _, kw := range ClassKeywords {
		if strings.Contains(title, kw) || strings.Contains(u, kw) {
			return true
		}
	}
	return false
}

func isToolDomain(host string) bool {
	return host != "" && slices.Contains(ToolDomains, host)
}
