package sites

import (
	"fmt"

	"github.com/MrSnakeDoc/termtab/internal/domain"
)

// Tile is one cell of the rendered grid.
type Tile struct {
	Index        int    `json:"index"`
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	Icon         string `json:"icon,omitempty"`
	FallbackIcon string `json:"fallback_icon,omitempty"`
	EditURL      string `json:"edit_url,omitempty"`
	Placeholder  bool   `json:"placeholder"`
}

// Grid lays out at most six tiles. In bookmark mode the slots left after the
// bookmarks are filled with "add" placeholders; recent mode shows only
// what was recorded.
func Grid(mode Mode, entries []domain.SiteEntry) []Tile {
	tiles := make([]Tile, 0, domain.MaxSites)
	for i, e := range entries {
		if i == domain.MaxSites {
			break
		}
		tile := Tile{
			Index:        i,
			Name:         e.Name,
			URL:          e.URL,
			Icon:         e.Icon,
			FallbackIcon: FallbackIconURL(e.URL),
		}
		if tile.Icon == "" {
			tile.Icon = IconURL(e.URL)
		}
		if mode == ModeBookmarks {
			tile.EditURL = fmt.Sprintf("/bookmarks/%d/edit", i)
		}
		tiles = append(tiles, tile)
	}

	if mode != ModeBookmarks {
		return tiles
	}
	for i := len(tiles); i < domain.MaxSites; i++ {
		tiles = append(tiles, Tile{Index: i, EditURL: "/bookmarks/new", Placeholder: true})
	}
	return tiles
}
