package entity

// Bookmark represents a saved page. URLs are unique within the bookmark
// collection; a duplicate add is rejected, not merged.
type Bookmark struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewBookmark creates a bookmark, substituting a readable title when the
// page never reported one.
func NewBookmark(title, url string) Bookmark {
	if title == "" {
		title = url
	}
	return Bookmark{Title: title, URL: url}
}
