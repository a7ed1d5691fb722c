// Package web holds the dashboard page template and its static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/MrSnakeDoc/termtab/internal/console"
	"github.com/MrSnakeDoc/termtab/internal/sites"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// Page is everything the dashboard template renders.
type Page struct {
	Title          string
	ThemeCSS       template.CSS
	Clock          string
	WeatherEnabled bool
	Mode           sites.Mode
	Tiles          []sites.Tile
	Console        []console.Line
	Alert          string
	Modal          *BookmarkForm
}

// BookmarkForm is the add/edit bookmark dialog.
type BookmarkForm struct {
	Title        string
	Action       string
	DeleteAction string // empty when adding
	Name         string
	URL          string
}

// Renderer executes the page template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the dashboard for p.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "New Tab"
	}
	return r.tmpl.ExecuteTemplate(w, "index.html", p)
}

// Static serves the embedded stylesheet and script. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Errorf("static assets missing: %w", err))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
