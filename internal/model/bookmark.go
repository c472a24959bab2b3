package model

// Bookmark is a single exported link as produced by the extractor.
// URL is the identity key; it is compared case-sensitively without normalization.
type Bookmark struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	AddDate      string   `json:"add_date"`
	LastModified string   `json:"last_modified"`
	Icon         string   `json:"icon"`
	FolderPath   []string `json:"folder_path"` // outermost folder first
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title        string
	URL          string
	AddDate      string
	LastModified string
	Icon         string
	FolderPath   []string
}

// NewBookmark creates a Bookmark with a non-nil folder path.
func NewBookmark(params NewBookmarkParams) Bookmark {
	path := params.FolderPath
	if path == nil {
		path = []string{}
	}

	return Bookmark{
		Title:        params.Title,
		URL:          params.URL,
		AddDate:      params.AddDate,
		LastModified: params.LastModified,
		Icon:         params.Icon,
		FolderPath:   path,
	}
}

// Clone returns a deep copy that shares no memory with b.
func (b Bookmark) Clone() Bookmark {
	c := b
	c.FolderPath = append([]string{}, b.FolderPath...)
	return c
}

// Retag returns a copy of b whose folder path is replaced by path.
func (b Bookmark) Retag(path ...string) Bookmark {
	c := b
	c.FolderPath = append([]string{}, path...)
	return c
}

// InFolder reports whether segment appears verbatim in the original folder path.
func (b Bookmark) InFolder(segment string) bool {
	for _, s := range b.FolderPath {
		if s == segment {
			return true
		}
	}
	return false
}
