package domain

// MaxSites is the number of tiles the site grid can hold.
const MaxSites = 6

// SiteEntry is one tile of the site grid.
//
// Two lists share this shape: recent searches (recorded automatically,
// deduplicated by URL, newest first) and bookmarks (curated by hand, kept in
// insertion/edit order). Only one of them is active per deployment.
type SiteEntry struct {
	// Name is the tile label, truncated before it is stored.
	Name string `json:"name" yaml:"name"`

	// URL is the tile target.
	URL string `json:"url" yaml:"url"`

	// Icon is a favicon URL.
	Icon string `json:"icon" yaml:"icon,omitempty"`
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
