package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nikbrunner/bmorg/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-organized-YYYY-MM-DD.html
func DefaultExportPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-organized-%s.html", now.Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders an organized tree as Netscape bookmark HTML.
//
// The root itself is never rendered. The Bookmarks Bar comes first and is
// marked as the personal toolbar folder; other folders follow in insertion
// order. Folders without dates get timestamp.
func ExportHTML(root *model.FolderNode, timestamp string) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	if bar, ok := root.Subfolder(model.BookmarksBarName); ok {
		writeFolder(&b, bar, timestamp, 1, true)
	}
	for _, folder := range root.Subfolders() {
		if folder.Name == model.BookmarksBarName {
			continue
		}
		writeFolder(&b, folder, timestamp, 1, false)
	}
	writeBookmarks(&b, root.Bookmarks, 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeFolder(b *strings.Builder, folder *model.FolderNode, timestamp string, indent int, toolbar bool) {
	prefix := strings.Repeat("    ", indent)

	addDate := orDefault(folder.AddDate, timestamp)
	lastModified := orDefault(folder.LastModified, timestamp)
	toolbarAttr := ""
	if toolbar {
		toolbarAttr = ` PERSONAL_TOOLBAR_FOLDER="true"`
	}

	fmt.Fprintf(b, "%s<DT><H3 ADD_DATE=\"%s\" LAST_MODIFIED=\"%s\"%s>%s</H3>\n",
		prefix,
		html.EscapeString(addDate),
		html.EscapeString(lastModified),
		toolbarAttr,
		html.EscapeString(folder.Name),
	)
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)

	for _, child := range folder.Subfolders() {
		writeFolder(b, child, timestamp, indent+1, false)
	}
	writeBookmarks(b, folder.Bookmarks, indent+1)

	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}

// writeBookmarks writes bookmarks sorted by lower-cased title.
func writeBookmarks(b *strings.Builder, bookmarks []model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)

	sorted := append([]model.Bookmark(nil), bookmarks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	for _, bookmark := range sorted {
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%s\" LAST_MODIFIED=\"%s\" ICON=\"%s\">%s</A>\n",
			prefix,
			html.EscapeString(bookmark.URL),
			html.EscapeString(bookmark.AddDate),
			html.EscapeString(bookmark.LastModified),
			html.EscapeString(bookmark.Icon),
			html.EscapeString(bookmark.Title),
		)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
