package command

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/termtab/internal/console"
	"github.com/MrSnakeDoc/termtab/internal/domain"
)

const rule = "──────────────────────────"

// Theme form targets.
const (
	ApplyColorsPath = "/theme/apply"
	ResetColorsPath = "/theme/reset"
)

var localHelp = []struct{ key, desc string }{
	{string(LocalHelp), "Show this help menu"},
	{string(LocalConfig), "Open color configuration"},
	{string(LocalNeofetch), "Display system info"},
	{string(LocalHist), "Show search history"},
}

// Help writes the command and engine reference.
func Help(out *console.Console, bookmarkMode bool) {
	out.Add(console.Header("AVAILABLE COMMANDS:"))
	out.Add()
	for _, c := range localHelp {
		out.Add(console.Key(c.key), console.Sep(" ........... "), console.Text(c.desc))
	}

	out.Add()
	out.Add(console.Header("SEARCH ENGINES:"))
	out.Add()
	for _, e := range Engines(bookmarkMode) {
		out.Add(console.Key(e.Token+" [query]"), console.Sep(" ...... "), console.Text(e.Name+" search"))
	}

	out.Add()
	out.Add(console.Sep("Type anything else to search DuckDuckGo"))
}

// Neofetch writes the browser facts between two rules.
func Neofetch(out *console.Console, info ClientInfo, now time.Time) {
	online, cookies := "No", "Disabled"
	if info.Online {
		online = "Yes"
	}
	if info.Cookies {
		cookies = "Enabled"
	}

	rows := []struct{ key, value string }{
		{"Browser:", info.Browser},
		{"Platform:", info.Platform},
		{"Language:", info.Language},
		{"Screen:", info.Screen},
		{"Tab Uptime:", FormatUptime(info.Uptime(now))},
		{"Cores:", info.Cores},
		{"Online:", online},
		{"Cookies:", cookies},
	}

	out.Add(console.Header(rule))
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = unknown
		}
		out.Add(console.Key(row.key), console.Text(" "+value))
	}
	out.Add(console.Header(rule))
}

// Hist writes the grid's list, numbered from 1.
func Hist(out *console.Console, list []domain.SiteEntry, bookmarkMode bool) {
	empty, header := "No search history yet", "SEARCH HISTORY:"
	if bookmarkMode {
		empty, header = "No bookmarks yet", "BOOKMARKS:"
	}

	if len(list) == 0 {
		out.Add(console.Sep(empty))
		return
	}

	out.Add(console.Header(header))
	out.Add()
	for i, site := range list {
		nodes := []console.Node{console.Key(fmt.Sprintf("%d.", i+1)), console.Text(" " + site.Name)}
		if bookmarkMode {
			nodes = append(nodes, console.Sep("  "+site.URL))
		}
		out.Add(nodes...)
	}
}

// Config writes the color form, each field showing the color in effect.
func Config(out *console.Console, colors domain.ColorTheme) {
	out.Add(console.Header("COLOR CONFIGURATION:"))
	out.Add()

	form := console.Form{Action: ApplyColorsPath, ResetAction: ResetColorsPath}
	for _, slot := range domain.Slots {
		form.Fields = append(form.Fields, console.Field{
			Name:        string(slot),
			Label:       slot.Label(),
			Placeholder: colors[slot],
		})
	}
	out.Add(console.FormNode(form))
}

// ColorsApplied and ColorsReset write the confirmation line of the config
// panel buttons.
func ColorsApplied(out *console.Console) {
	out.Add(console.Key("✓"), console.Text(" Colors applied successfully!"))
}

func ColorsReset(out *console.Console) {
	out.Add(console.Key("✓"), console.Text(" Colors reset to default!"))
}
