package organizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nikbrunner/bmorg/internal/model"
)

var domainAffixes = regexp.MustCompile(`^www\.|\.com$|\.org$|\.net$|\.edu$|\.gov$`)

// DomainResult is the outcome of parsing a bookmark URL for its domain.
// The zero value is Unparseable.
type DomainResult struct {
	domain string
	ok     bool
}

// Domain returns a parsed result holding d.
func Domain(d string) DomainResult { return DomainResult{domain: d, ok: true} }

// Unparseable is the result for a URL that does not parse.
var Unparseable = DomainResult{}

// Get returns the domain and whether the URL parsed.
func (r DomainResult) Get() (string, bool) { return r.domain, r.ok }

// String returns the domain, or "" when the URL did not parse.
func (r DomainResult) String() string { return r.domain }

// ParseDomain extracts the normalized domain of rawURL: the host with a leading
// "www." and a trailing .com, .org, .net, .edu or .gov removed.
// A URL without a host parses to an empty domain.
func ParseDomain(rawURL string) DomainResult {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Unparseable
	}
	return Domain(domainAffixes.ReplaceAllString(u.Host, ""))
}

// NormalizeHost returns the lower-cased hostname of rawURL without a leading
// "www." or port, e.g. "github.com". It returns "" when the URL does not parse.
func NormalizeHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// FeatureRecord pairs a unique bookmark with its text signature.
type FeatureRecord struct {
	Bookmark  *model.Bookmark
	Domain    DomainResult
	Signature string
}

// Signature joins the normalized domain, the lower-cased title and the
// original folder path segments with spaces. Empty parts are skipped.
func Signature(b model.Bookmark, domain DomainResult) string {
	parts := make([]string, 0, 2+len(b.FolderPath))
	if d := domain.String(); d != "" {
		parts = append(parts, d)
	}
	if t := strings.ToLower(b.Title); strings.TrimSpace(t) != "" {
		parts = append(parts, t)
	}
	for _, seg := range b.FolderPath {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, " ")
}

// ExtractFeatures builds one record per bookmark, in input order.
func ExtractFeatures(bookmarks []model.Bookmark) []FeatureRecord {
	records := make([]FeatureRecord, len(bookmarks))
	for i := range bookmarks {
		domain := ParseDomain(bookmarks[i].URL)
		records[i] = FeatureRecord{
			Bookmark:  &bookmarks[i],
			Domain:    domain,
			Signature: Signature(bookmarks[i], domain),
		}
	}
	return records
}

// Signatures returns the signature of every record.
func Signatures(records []FeatureRecord) []string {
	sigs := make([]string, len(records))
	for i, r := range records {
		sigs[i] = r.Signature
	}
	return sigs
}
