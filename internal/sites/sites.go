// Package sites keeps the six tiles of the dashboard grid: either the most
// recent searches (recent mode) or hand-curated bookmarks (bookmark mode).
package sites

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/store"
	"github.com/MrSnakeDoc/termtab/internal/utils"
)

// Lister reads the list backing the grid.
type Lister interface {
	List(ctx context.Context) ([]domain.SiteEntry, error)
}

// Mode selects which list backs the grid.
type Mode string

const (
	ModeRecent    Mode = "recent"
	ModeBookmarks Mode = "bookmarks"
)

// Key returns the store record that backs the mode.
func (m Mode) Key() string {
	if m == ModeBookmarks {
		return store.KeyBookmarks
	}
	return store.KeyRecentSites
}

const (
	// RecentNameLen caps the label of a recorded search.
	RecentNameLen = 10
	// BookmarkNameLen caps the label of a bookmark.
	BookmarkNameLen = 12

	duckDuckGoSearch = "https://duckduckgo.com/?q="
	duckDuckGoIcon   = "https://icons.duckduckgo.com/ip3/duckduckgo.com.ico"
)

var (
	ErrBlankField      = errors.New("please fill in both name and url")
	ErrInvalidURL      = errors.New("please enter a valid url")
	ErrCapacity        = errors.New("maximum 6 bookmarks allowed")
	ErrIndexOutOfRange = errors.New("bookmark no longer exists")
)

// SearchURL is the address recorded for a recent search, whichever engine
// actually served it.
func SearchURL(query string) string {
	return duckDuckGoSearch + utils.EncodeURIComponent(query)
}

// IconURL is the favicon shown for a bookmark.
func IconURL(rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return duckDuckGoIcon
	}
	return "https://icons.duckduckgo.com/ip3/" + host + ".ico"
}

// FallbackIconURL is used by the page when IconURL fails to load.
func FallbackIconURL(rawURL string) string {
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(hostname(rawURL)) + "&sz=64"
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
