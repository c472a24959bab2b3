package organizer

import "github.com/nikbrunner/bmorg/internal/model"

// Deduplicate returns the bookmarks whose URL has not been seen earlier in the
// sequence, in their original order, and the number of later duplicates dropped.
func Deduplicate(bookmarks []model.Bookmark) (unique []model.Bookmark, dropped int) {
	seen := make(map[string]struct{}, len(bookmarks))
	unique = make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if _, ok := seen[b.URL]; ok {
			dropped++
			continue
		}
		seen[b.URL] = struct{}{}
		unique = append(unique, b)
	}
	return unique, dropped
}
