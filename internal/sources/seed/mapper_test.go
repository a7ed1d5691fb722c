package seed

import (
	"fmt"
	"testing"

	"github.com/MrSnakeDoc/termtab/internal/domain"
)

func TestMap(t *testing.T) {
	cfg := Config{
		Theme: map[string]string{"Accent": " #ff8800 ", "shadow": "#000", "fg": ""},
		Bookmarks: []SiteProps{
			{Name: "Go", Href: "go.dev"},
			{Name: "", Href: "broken.example"},
			{Name: "Custom", Href: "https://example.com", Icon: "https://example.com/i.png"},
		},
		Recent: []string{"first", "  ", "second", "first"},
	}

	got := Map(cfg)

	if got.Theme[domain.SlotAccent] != "#ff8800" || len(got.Theme) != 1 {
		t.Errorf("Theme = %v", got.Theme)
	}

	if len(got.Bookmarks) != 2 {
		t.Fatalf("Bookmarks = %+v", got.Bookmarks)
	}
	if got.Bookmarks[0].URL != "https://go.dev" {
		t.Errorf("Bookmarks[0].URL = %q", got.Bookmarks[0].URL)
	}
	if got.Bookmarks[1].Icon != "https://example.com/i.png" {
		t.Errorf("explicit icon should be kept, got %q", got.Bookmarks[1].Icon)
	}

	if len(got.Recent) != 2 || got.Recent[0].Name != "first" || got.Recent[1].Name != "second" {
		t.Errorf("Recent = %+v", got.Recent)
	}

	// shadow, fg, the blank bookmark and the blank search
	if len(got.Skipped) != 4 {
		t.Errorf("Skipped = %q, want 4 entries", got.Skipped)
	}
}

func TestMapCapsBookmarks(t *testing.T) {
	var cfg Config
	for i := 0; i < 8; i++ {
		cfg.Bookmarks = append(cfg.Bookmarks, SiteProps{Name: fmt.Sprintf("b%d", i), Href: fmt.Sprintf("b%d.example.com", i)})
	}

	got := Map(cfg)

	if len(got.Bookmarks) != domain.MaxSites {
		t.Errorf("kept %d bookmarks, want %d", len(got.Bookmarks), domain.MaxSites)
	}
	if len(got.Skipped) != 2 {
		t.Errorf("Skipped = %q", got.Skipped)
	}
}

func TestMapEmpty(t *testing.T) {
	if got := Map(Config{}); !got.Empty() {
		t.Errorf("Map(empty) = %+v, want Empty()", got)
	}

	onlyInvalid := Config{Theme: map[string]string{"nope": "#fff"}}
	if got := Map(onlyInvalid); !got.Empty() {
		t.Errorf("Map(only invalid) = %+v, want Empty()", got)
	}
}
