package seed

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/sites"
)

// Records is a seed file converted to store records. A nil field means the
// file says nothing about that record.
type Records struct {
	Theme     domain.ColorTheme
	Bookmarks []domain.SiteEntry
	Recent    []domain.SiteEntry

	// Skipped describes entries that were dropped, one line each.
	Skipped []string
}

// Empty reports whether there is nothing to write.
func (r Records) Empty() bool {
	return r.Theme == nil && r.Bookmarks == nil && r.Recent == nil
}

// Map validates cfg with the same rules the dashboard applies to user input.
// Invalid or surplus entries are skipped and listed in Skipped.
func Map(cfg Config) Records {
	var out Records

	if len(cfg.Theme) > 0 {
		out.Theme = domain.ColorTheme{}
		for name, value := range cfg.Theme {
			slot := domain.Slot(strings.ToLower(strings.TrimSpace(name)))
			value = strings.TrimSpace(value)
			if !slot.Valid() || value == "" {
				out.Skipped = append(out.Skipped, fmt.Sprintf("theme.%s: unknown slot or empty value", name))
				continue
			}
			out.Theme[slot] = value
		}
	}

	if len(cfg.Bookmarks) > 0 {
		out.Bookmarks = make([]domain.SiteEntry, 0, domain.MaxSites)
		for i, b := range cfg.Bookmarks {
			if len(out.Bookmarks) == domain.MaxSites {
				out.Skipped = append(out.Skipped, fmt.Sprintf("bookmarks[%d]: %v", i, sites.ErrCapacity))
				continue
			}
			entry, err := sites.NewBookmark(b.Name, b.Href)
			if err != nil {
				out.Skipped = append(out.Skipped, fmt.Sprintf("bookmarks[%d]: %v", i, err))
				continue
			}
			if icon := strings.TrimSpace(b.Icon); icon != "" {
				entry.Icon = icon
			}
			out.Bookmarks = append(out.Bookmarks, entry)
		}
	}

	if len(cfg.Recent) > 0 {
		out.Recent = make([]domain.SiteEntry, 0, domain.MaxSites)
		seen := make(map[string]bool, len(cfg.Recent))
		for i, q := range cfg.Recent {
			q = strings.TrimSpace(q)
			if q == "" {
				out.Skipped = append(out.Skipped, fmt.Sprintf("recent[%d]: empty search", i))
				continue
			}
			entry := sites.RecentEntry(q)
			if seen[entry.URL] {
				continue
			}
			if len(out.Recent) == domain.MaxSites {
				out.Skipped = append(out.Skipped, fmt.Sprintf("recent[%d]: list is full", i))
				continue
			}
			seen[entry.URL] = true
			out.Recent = append(out.Recent, entry)
		}
	}

	if len(out.Theme) == 0 {
		out.Theme = nil
	}
	if len(out.Bookmarks) == 0 {
		out.Bookmarks = nil
	}
	if len(out.Recent) == 0 {
		out.Recent = nil
	}
	return out
}
