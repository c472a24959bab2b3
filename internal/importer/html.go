package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/bmorg/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a flat list of bookmarks
// in document order. Each bookmark records the names of its enclosing folders,
// outermost first. Links without an HREF are kept with an empty URL.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	// Names of the folders enclosing the current DL.
	var folderStack []string
	// Folder name waiting to be pushed on the next DL.
	var pendingFolder *string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				pendingFolder = &name
				return // Don't recurse into H3

			case "a":
				bookmarks = append(bookmarks, model.NewBookmark(model.NewBookmarkParams{
					Title:        getTextContent(n),
					URL:          getAttr(n, "href"),
					AddDate:      getAttr(n, "add_date"),
					LastModified: getAttr(n, "last_modified"),
					Icon:         getAttr(n, "icon"),
					FolderPath:   append([]string{}, folderStack...),
				}))
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
