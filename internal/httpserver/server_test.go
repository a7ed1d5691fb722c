package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/store"
	"github.com/MrSnakeDoc/termtab/internal/store/memory"
	"github.com/MrSnakeDoc/termtab/internal/theme"
	"github.com/MrSnakeDoc/termtab/internal/weather"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

var fixedNow = time.Date(2024, 5, 4, 7, 9, 0, 0, time.UTC)

type testEnv struct {
	handler http.Handler
	store   *memory.Store
	deps    deps.Deps
}

func newTestEnv(t *testing.T, mode sites.Mode, configure ...func(*deps.Deps)) *testEnv {
	t.Helper()

	log := logger.New("error", false)
	s := memory.New()
	pages, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	loader := theme.NewLoader(s, log)
	d := deps.Deps{
		Logger:        log,
		StartTime:     fixedNow,
		Version:       "test",
		TimeNow:       func() time.Time { return fixedNow },
		RateLimit:     1000,
		Mode:          mode,
		Store:         s,
		Theme:         loader,
		Pages:         pages,
		ClockInterval: 5 * time.Millisecond,
	}

	opts := command.Options{Mode: mode, Theme: loader, Logger: log, Now: d.TimeNow}
	if mode == sites.ModeBookmarks {
		b := sites.NewBookmarks(s, log)
		d.Bookmarks = b
		d.Sites = b
		opts.Sites = b
	} else {
		r := sites.NewRecent(s, log)
		d.Sites = r
		opts.Sites = r
		opts.Recorder = r
	}
	d.Dispatcher = command.NewDispatcher(opts)

	for _, fn := range configure {
		fn(&d)
	}

	return &testEnv{handler: NewRouter(log, d), store: s, deps: d}
}

func (e *testEnv) do(t *testing.T, method, target string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	rec := env.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}

	doc := parse(t, rec)
	if got := doc.Find("#clock").Text(); got != "07:09" {
		t.Errorf("clock = %q, want 07:09", got)
	}
	if got := doc.Find("style#theme").Text(); !strings.Contains(got, "--bg:#141414") {
		t.Errorf("theme = %q", got)
	}
	if doc.Find("#recent .site").Length() != 0 {
		t.Error("recent grid should start empty")
	}
	if doc.Find("#output .output-line").Length() != 0 {
		t.Error("console should start empty")
	}

	var cookie bool
	for _, c := range rec.Result().Cookies() {
		cookie = cookie || c.Name == command.CookieName
	}
	if !cookie {
		t.Error("dashboard should set the cookie probe")
	}
}

func TestCommandSearchRedirectsAndRecords(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	rec := env.do(t, http.MethodPost, "/command", url.Values{"q": {"!gl openai"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("POST /command = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://www.google.com/search?q=openai" {
		t.Errorf("Location = %q", loc)
	}

	list, _ := store.GetSites(context.Background(), env.store, store.KeyRecentSites)
	if len(list) != 1 || list[0].Name != "!gl openai" {
		t.Errorf("recent = %+v", list)
	}

	doc := parse(t, env.do(t, http.MethodGet, "/", nil))
	if href, _ := doc.Find("#recent a.site").Attr("href"); href != "https://duckduckgo.com/?q=!gl%20openai" {
		t.Errorf("tile href = %q", href)
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	tests := []struct {
		q        string
		status   int
		location string
	}{
		{q: "example.com", status: http.StatusFound, location: "https://example.com"},
		{q: "!zzz hello", status: http.StatusFound, location: "https://duckduckgo.com/?q=!zzz%20hello"},
		{q: "", status: http.StatusSeeOther, location: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/search?q="+url.QueryEscape(tt.q), nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
		})
	}
}

func TestCommandLocalRendersConsole(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	rec := env.do(t, http.MethodPost, "/command", url.Values{"q": {"!help"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /command = %d", rec.Code)
	}

	doc := parse(t, rec)
	if got := doc.Find("#output .output-header").First().Text(); got != "AVAILABLE COMMANDS:" {
		t.Errorf("first header = %q", got)
	}
	if v, _ := doc.Find("#search").Attr("value"); v != "" {
		t.Errorf("input should be cleared, got %q", v)
	}
}

func TestCommandNeofetchUsesRequest(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)
	form := url.Values{
		"q":                   {"!neofetch"},
		command.FieldScreen:   {"1280x800"},
		command.FieldLoadedAt: {"1714806480000"}, // 07:08:00 UTC
		command.FieldPlatform: {"MacIntel"},
		command.FieldCores:    {"10"},
	}

	rec := env.do(t, http.MethodPost, "/command", form,
		"User-Agent", "Mozilla/5.0 Version/17.4 Safari/605.1.15",
		"Accept-Language", "de-DE,de;q=0.9")

	text := parse(t, rec).Find("#output").Text()
	for _, want := range []string{"Browser: Safari/605.1.15", "Language: de-DE", "Screen: 1280x800", "Tab Uptime: 1m 0s", "Cookies: Disabled"} {
		if !strings.Contains(text, want) {
			t.Errorf("neofetch output missing %q:\n%s", want, text)
		}
	}
}

func TestThemeApplyAndReset(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	rec := env.do(t, http.MethodPost, "/theme/apply", url.Values{"bg": {" #000000 "}, "fg": {""}, "evil": {"red"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("apply = %d", rec.Code)
	}
	doc := parse(t, rec)
	if got := doc.Find("style#theme").Text(); !strings.Contains(got, "--bg:#000000;--fg:#feffd3;") {
		t.Errorf("theme after apply = %q", got)
	}
	if !strings.Contains(doc.Find("#output").Text(), "✓ Colors applied successfully!") {
		t.Error("apply confirmation missing")
	}

	rec = env.do(t, http.MethodGet, "/api/theme", nil)
	var body struct {
		Colors map[string]string `json:"colors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Colors["bg"] != "#000000" || body.Colors["fg"] != "#feffd3" {
		t.Errorf("api theme = %v", body.Colors)
	}

	rec = env.do(t, http.MethodPost, "/theme/reset", url.Values{})
	doc = parse(t, rec)
	if got := doc.Find("style#theme").Text(); !strings.Contains(got, "--bg:#141414") {
		t.Errorf("theme after reset = %q", got)
	}
	if !strings.Contains(doc.Find("#output").Text(), "✓ Colors reset to default!") {
		t.Error("reset confirmation missing")
	}
}

func TestBookmarkRoutesOnlyInBookmarkMode(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{"name": {"Go"}, "url": {"go.dev"}})
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /bookmarks in recent mode = %d", rec.Code)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sites.ModeBookmarks)

	doc := parse(t, env.do(t, http.MethodGet, "/", nil))
	if got := doc.Find("#recent .site.add").Length(); got != 6 {
		t.Fatalf("placeholders = %d, want 6", got)
	}

	rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{"name": {"Go"}, "url": {"go.dev"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/bookmarks/0/edit", nil)
	modal := parse(t, rec).Find("#bookmarkModal form")
	if v, _ := modal.Find("input[name=url]").Attr("value"); v != "https://go.dev" {
		t.Errorf("edit form url = %q", v)
	}

	rec = env.do(t, http.MethodPost, "/bookmarks/0", url.Values{"name": {"Golang"}, "url": {"https://go.dev/doc"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update = %d", rec.Code)
	}
	list, _ := store.GetSites(ctx, env.store, store.KeyBookmarks)
	if len(list) != 1 || list[0].Name != "Golang" {
		t.Errorf("after update = %+v", list)
	}

	rec = env.do(t, http.MethodPost, "/bookmarks/0/delete", url.Values{})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/bookmarks/0/edit" {
		t.Errorf("unconfirmed delete = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	list, _ = store.GetSites(ctx, env.store, store.KeyBookmarks)
	if len(list) != 1 {
		t.Fatal("unconfirmed delete removed the bookmark")
	}

	rec = env.do(t, http.MethodPost, "/bookmarks/0/delete", url.Values{"confirm": {"yes"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d", rec.Code)
	}
	list, _ = store.GetSites(ctx, env.store, store.KeyBookmarks)
	if len(list) != 0 {
		t.Errorf("after delete = %+v", list)
	}
}

func TestBookmarkWithURLInQuery(t *testing.T) {
	env := newTestEnv(t, sites.ModeBookmarks)

	rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{
		"name": {"Login"},
		"url":  {"example.com/login?next=https://example.com/home"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d, want 303", rec.Code)
	}

	list, _ := store.GetSites(context.Background(), env.store, store.KeyBookmarks)
	if len(list) != 1 || list[0].URL != "https://example.com/login?next=https://example.com/home" {
		t.Errorf("bookmarks = %+v", list)
	}
}

func TestBookmarkValidationKeepsDialog(t *testing.T) {
	env := newTestEnv(t, sites.ModeBookmarks)

	rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{"name": {"Broken"}, "url": {"not a url"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	doc := parse(t, rec)
	if got := doc.Find(".alert").Text(); got != "Please enter a valid URL" {
		t.Errorf("alert = %q", got)
	}
	if v, _ := doc.Find("#bookmarkModal input[name=name]").Attr("value"); v != "Broken" {
		t.Errorf("dialog should keep the typed name, got %q", v)
	}
}

func TestBookmarkCapacityJSON(t *testing.T) {
	env := newTestEnv(t, sites.ModeBookmarks)
	for i := 0; i < 6; i++ {
		rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{"name": {"b"}, "url": {"b.example.com"}})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("bookmark %d = %d", i, rec.Code)
		}
	}

	rec := env.do(t, http.MethodPost, "/bookmarks", url.Values{"name": {"seventh"}, "url": {"s.example.com"}}, "Accept", "application/json")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "Maximum 6 bookmarks allowed" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestEditUnknownBookmark(t *testing.T) {
	env := newTestEnv(t, sites.ModeBookmarks)

	for _, path := range []string{"/bookmarks/3/edit", "/bookmarks/abc/edit", "/bookmarks/99/edit"} {
		if rec := env.do(t, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestAPISites(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)
	env.do(t, http.MethodGet, "/search?q=first", nil)

	rec := env.do(t, http.MethodGet, "/api/sites", nil)
	var body struct {
		Mode  string       `json:"mode"`
		Tiles []sites.Tile `json:"tiles"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Mode != "recent" || len(body.Tiles) != 1 || body.Tiles[0].Name != "first" {
		t.Errorf("api sites = %+v", body)
	}
}

func TestAPIWeather(t *testing.T) {
	var (
		mu       sync.Mutex
		geoPaths []string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/geo") {
			mu.Lock()
			geoPaths = append(geoPaths, r.URL.Path)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"city":"Nantes","latitude":47.2,"longitude":-1.55}`))
			return
		}
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":12.2,"weather_code":61}}`))
	}))
	defer upstream.Close()

	env := newTestEnv(t, sites.ModeRecent, func(d *deps.Deps) {
		d.TrustProxy = true
		d.Weather = weather.NewClient(weather.Endpoints{
			Geo:      upstream.URL + "/geo",
			GeoByIP:  upstream.URL + "/geo/%s",
			Forecast: upstream.URL + "/forecast",
		}, upstream.Client(), d.Logger)
	})

	tests := []struct {
		name     string
		xff      string
		wantPath string
	}{
		{name: "visitor behind proxy", xff: "203.0.113.9", wantPath: "/geo/203.0.113.9"},
		{name: "lan visitor", xff: "192.168.1.20", wantPath: "/geo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mu.Lock()
			geoPaths = nil
			mu.Unlock()

			rec := env.do(t, http.MethodGet, "/api/weather", nil, "X-Forwarded-For", tt.xff)
			var body struct {
				Text string `json:"text"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Text != "Nantes / 12°C / rainy" {
				t.Errorf("weather = %q", body.Text)
			}

			mu.Lock()
			defer mu.Unlock()
			if len(geoPaths) != 1 || geoPaths[0] != tt.wantPath {
				t.Errorf("geo requests = %v, want [%s]", geoPaths, tt.wantPath)
			}
		})
	}

	disabled := newTestEnv(t, sites.ModeRecent)
	rec := disabled.do(t, http.MethodGet, "/api/weather", nil)
	if !strings.Contains(rec.Body.String(), weather.Offline) {
		t.Errorf("disabled weather = %s", rec.Body.String())
	}
}

func TestAPIClockStreamsUntilCancelled(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/clock", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("GET /api/clock: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	events := 0
	for events < 2 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			if got := strings.TrimSpace(strings.TrimPrefix(line, "data: ")); got != "07:09" {
				t.Errorf("event = %q", got)
			}
			events++
		}
	}
	cancel()
}

func TestProbes(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	for _, path := range []string{"/healthz", "/readyz", "/infra"} {
		rec := env.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET %s Content-Type = %q", path, ct)
		}
	}

	rec := env.do(t, http.MethodGet, "/infra", nil)
	var body struct {
		Status     string `json:"status"`
		Components map[string]struct {
			OK      bool     `json:"ok"`
			Backend string   `json:"backend"`
			Records []string `json:"records"`
		} `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Components["store"].Backend != "memory" {
		t.Errorf("infra = %+v", body)
	}
	if records := body.Components["store"].Records; len(records) != 0 {
		t.Errorf("fresh store records = %v", records)
	}
}

func TestHealthzReportsMode(t *testing.T) {
	env := newTestEnv(t, sites.ModeBookmarks)

	var body struct {
		Status   string `json:"status"`
		SiteMode string `json:"site_mode"`
		Version  string `json:"version"`
	}
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.SiteMode != "bookmarks" || body.Version != "test" {
		t.Errorf("healthz = %+v", body)
	}
}

func TestReseedWithoutSeedFile(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent)

	if rec := env.do(t, http.MethodPost, "/reseed", nil); rec.Code != http.StatusNotFound {
		t.Errorf("POST /reseed = %d, want 404", rec.Code)
	}
}

func TestReseedTriggers(t *testing.T) {
	trigger := make(chan struct{}, 1)
	env := newTestEnv(t, sites.ModeRecent, func(d *deps.Deps) {
		d.SeedFile = "seed.yaml"
		d.SeedTrigger = trigger
	})

	if rec := env.do(t, http.MethodPost, "/reseed", nil); rec.Code != http.StatusAccepted {
		t.Errorf("first POST /reseed = %d, want 202", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/reseed", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST /reseed = %d, want 429", rec.Code)
	}
}

func TestAccessRestrictions(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent, func(d *deps.Deps) {
		d.AllowedHosts = []string{"tab.home.lan"}
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})

	// httptest requests come from 192.0.2.1 with Host example.com
	if rec := env.do(t, http.MethodGet, "/", nil); rec.Code != http.StatusForbidden {
		t.Errorf("GET / from outside = %d, want 403", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, sites.ModeRecent, func(d *deps.Deps) { d.RateLimit = 2 })

	for i := 0; i < 2; i++ {
		if rec := env.do(t, http.MethodGet, "/search?q=example.com", nil); rec.Code != http.StatusFound {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	if rec := env.do(t, http.MethodGet, "/search?q=example.com", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", rec.Code)
	}
}
