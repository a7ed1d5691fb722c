package command

import (
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/utils"
)

// Engine is a search provider reachable through a "!token query" line.
type Engine struct {
	Token    string
	Name     string
	Template string // %s is replaced by the encoded query
	// BookmarkOnly engines are only offered when the grid shows bookmarks.
	BookmarkOnly bool
}

// URL builds the search address for query.
func (e Engine) URL(query string) string {
	return strings.Replace(e.Template, "%s", utils.EncodeURIComponent(query), 1)
}

var engines = []Engine{
	{Token: "!gl", Name: "Google", Template: "https://www.google.com/search?q=%s"},
	{Token: "!ddg", Name: "DuckDuckGo", Template: "https://duckduckgo.com/?q=%s"},
	{Token: "!yt", Name: "YouTube", Template: "https://www.youtube.com/results?search_query=%s"},
	{Token: "!img", Name: "Google Images", Template: "https://www.google.com/search?tbm=isch&q=%s"},
	{Token: "!gh", Name: "GitHub", Template: "https://github.com/search?q=%s"},
	{Token: "!az", Name: "Amazon", Template: "https://www.amazon.com/s?k=%s"},
	{Token: "!wiki", Name: "Wikipedia", Template: "https://en.wikipedia.org/wiki/Special:Search?search=%s"},
	{Token: "!maps", Name: "Google Maps", Template: "https://www.google.com/maps/search/%s"},
	{Token: "!reddit", Name: "Reddit", Template: "https://www.reddit.com/search/?q=%s"},
	{Token: "!x", Name: "X (Twitter)", Template: "https://twitter.com/search?q=%s"},
	{Token: "!tumblr", Name: "Tumblr", Template: "https://www.tumblr.com/search/%s", BookmarkOnly: true},
}

// Fallback serves any line that is neither a URL nor a known command. It is
// given the whole line, token included.
var Fallback = Engine{Name: "DuckDuckGo", Template: "https://duckduckgo.com/?q=%s"}

// Engines lists the engines available in the given grid mode, in help order.
func Engines(bookmarkMode bool) []Engine {
	out := make([]Engine, 0, len(engines))
	for _, e := range engines {
		if e.BookmarkOnly && !bookmarkMode {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LookupEngine finds the engine for a lowercased token.
func LookupEngine(token string, bookmarkMode bool) (*Engine, bool) {
	for i := range engines {
		e := &engines[i]
		if e.Token != token {
			continue
		}
		if e.BookmarkOnly && !bookmarkMode {
			return nil, false
		}
		return e, true
	}
	return nil, false
}
