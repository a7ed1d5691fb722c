package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

type sitesResponse struct {
	Mode  sites.Mode         `json:"mode"`
	Sites []domain.SiteEntry `json:"sites"`
}

// NewBookmarkForm opens the empty add dialog.
func NewBookmarkForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, d, view{modal: addForm("", "")})
	}
}

// EditBookmarkForm opens the dialog pre-filled with bookmark {index}.
func EditBookmarkForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := bookmarkIndex(r)
		if !ok {
			bookmarkFailed(w, r, d, sites.ErrIndexOutOfRange, nil)
			return
		}

		entry, err := d.Bookmarks.Get(r.Context(), index)
		if err != nil {
			bookmarkFailed(w, r, d, err, nil)
			return
		}
		renderPage(w, r, d, view{modal: editForm(index, entry.Name, entry.URL)})
	}
}

// CreateBookmark appends a bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveBookmark(w, r, d, sites.NewIndex)
	}
}

// UpdateBookmark replaces bookmark {index}.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := bookmarkIndex(r)
		if !ok {
			bookmarkFailed(w, r, d, sites.ErrIndexOutOfRange, nil)
			return
		}
		saveBookmark(w, r, d, index)
	}
}

// DeleteBookmark removes bookmark {index}. The form must carry confirm=yes.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := bookmarkIndex(r)
		if !ok {
			bookmarkFailed(w, r, d, sites.ErrIndexOutOfRange, nil)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if r.PostFormValue("confirm") != "yes" {
			d.Logger.Debug("bookmark deletion not confirmed", logger.Int("index", index))
			http.Redirect(w, r, fmt.Sprintf("/bookmarks/%d/edit", index), http.StatusSeeOther)
			return
		}

		list, err := d.Bookmarks.Delete(r.Context(), index)
		if err != nil {
			bookmarkFailed(w, r, d, err, nil)
			return
		}
		bookmarkSaved(w, r, d, list)
	}
}

func saveBookmark(w http.ResponseWriter, r *http.Request, d deps.Deps, index int) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name, rawURL := r.PostFormValue("name"), r.PostFormValue("url")

	list, err := d.Bookmarks.Save(r.Context(), index, name, rawURL)
	if err != nil {
		form := addForm(name, rawURL)
		if index != sites.NewIndex {
			form = editForm(index, name, rawURL)
		}
		bookmarkFailed(w, r, d, err, form)
		return
	}
	bookmarkSaved(w, r, d, list)
}

func bookmarkSaved(w http.ResponseWriter, r *http.Request, d deps.Deps, list []domain.SiteEntry) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, sitesResponse{Mode: d.Mode, Sites: list})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// bookmarkFailed answers a rejected bookmark change. Validation errors keep
// the dialog open with what the user typed; the stored list is unchanged.
func bookmarkFailed(w http.ResponseWriter, r *http.Request, d deps.Deps, err error, form *web.BookmarkForm) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, sites.ErrIndexOutOfRange):
		status = http.StatusNotFound
		form = nil
	case errors.Is(err, sites.ErrBlankField), errors.Is(err, sites.ErrInvalidURL), errors.Is(err, sites.ErrCapacity):
	default:
		d.Logger.Error("bookmark store failure", logger.Error(err))
		status = http.StatusInternalServerError
	}

	message := alertMessage(err)
	if wantsJSON(r) {
		writeJSON(w, status, errorResponse{Error: message})
		return
	}
	renderPage(w, r, d, view{status: status, alert: message, modal: form})
}

var alerts = []struct {
	err  error
	text string
}{
	{sites.ErrBlankField, "Please fill in both name and URL"},
	{sites.ErrInvalidURL, "Please enter a valid URL"},
	{sites.ErrCapacity, "Maximum 6 bookmarks allowed"},
	{sites.ErrIndexOutOfRange, "Bookmark no longer exists"},
}

func alertMessage(err error) string {
	for _, a := range alerts {
		if errors.Is(err, a.err) {
			return a.text
		}
	}
	return "Could not save bookmark, try again."
}

func bookmarkIndex(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index >= domain.MaxSites {
		return 0, false
	}
	return index, true
}

func addForm(name, rawURL string) *web.BookmarkForm {
	return &web.BookmarkForm{Title: "Add Bookmark", Action: "/bookmarks", Name: name, URL: rawURL}
}

func editForm(index int, name, rawURL string) *web.BookmarkForm {
	return &web.BookmarkForm{
		Title:        "Edit Bookmark",
		Action:       fmt.Sprintf("/bookmarks/%d", index),
		DeleteAction: fmt.Sprintf("/bookmarks/%d/delete", index),
		Name:         name,
		URL:          rawURL,
	}
}
