package command

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// CookieName is set by the dashboard so the next request can report whether
// cookies are enabled.
const CookieName = "termtab"

// Hidden fields filled in by the page script before the form is submitted.
const (
	FieldPlatform = "platform"
	FieldScreen   = "screen"
	FieldCores    = "cores"
	FieldLoadedAt = "loaded_at" // unix milliseconds of page load
)

const unknown = "Unknown"

// ClientInfo is what the browser tells us about itself with a request.
type ClientInfo struct {
	Browser  string
	Platform string
	Language string
	Screen   string
	Cores    string
	LoadedAt time.Time
	Online   bool
	Cookies  bool
}

// ClientInfoFromRequest collects ClientInfo from headers and the page's
// hidden form fields. The form must already be parsed.
func ClientInfoFromRequest(r *http.Request) ClientInfo {
	info := ClientInfo{
		Browser:  browserToken(r.UserAgent()),
		Platform: firstNonEmpty(strings.Trim(r.Header.Get("Sec-CH-UA-Platform"), `"`), r.FormValue(FieldPlatform)),
		Language: preferredLanguage(r.Header.Get("Accept-Language")),
		Screen:   firstNonEmpty(r.FormValue(FieldScreen)),
		Cores:    firstNonEmpty(r.FormValue(FieldCores)),
		Online:   true,
	}

	if ms, err := strconv.ParseInt(r.FormValue(FieldLoadedAt), 10, 64); err == nil && ms > 0 {
		info.LoadedAt = time.UnixMilli(ms)
	}
	if _, err := r.Cookie(CookieName); err == nil {
		info.Cookies = true
	}
	return info
}

// Uptime is how long the tab has been open at now.
func (c ClientInfo) Uptime(now time.Time) time.Duration {
	if c.LoadedAt.IsZero() || now.Before(c.LoadedAt) {
		return 0
	}
	return now.Sub(c.LoadedAt)
}

// FormatUptime renders d as "Xm Ys".
func FormatUptime(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

// browserToken is the last space separated word of the user agent,
// typically "Firefox/128.0" or "Safari/537.36".
func browserToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return unknown
	}
	return fields[len(fields)-1]
}

func preferredLanguage(header string) string {
	if header == "" {
		return unknown
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return unknown
	}
	return tags[0].String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return unknown
}
