package command

import (
	"strings"
	"unicode"
)

// ActionKind tags an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionNavigate
	ActionLocal
	ActionSearch
)

func (k ActionKind) String() string {
	switch k {
	case ActionNavigate:
		return "navigate"
	case ActionLocal:
		return "local"
	case ActionSearch:
		return "search"
	default:
		return "none"
	}
}

// LocalKind names a command answered in the console.
type LocalKind string

const (
	LocalHelp     LocalKind = "!help"
	LocalConfig   LocalKind = "!config"
	LocalNeofetch LocalKind = "!neofetch"
	LocalHist     LocalKind = "!hist"
)

func localKind(token string) (LocalKind, bool) {
	switch k := LocalKind(token); k {
	case LocalHelp, LocalConfig, LocalNeofetch, LocalHist:
		return k, true
	}
	return "", false
}

// Action is the outcome of classifying one submitted line.
//
//	None      nothing to do
//	Navigate  URL is the destination
//	Local     Local names the command to run
//	Search    Engine served the query, URL is the destination
type Action struct {
	Kind   ActionKind
	Local  LocalKind
	Engine *Engine
	URL    string
	// Query is the trimmed line as typed. Searches record it.
	Query string
}

// Classify turns a raw line into an Action. It never fails: anything that is
// not a URL or a known command becomes a fallback search.
func Classify(input string, bookmarkMode bool) Action {
	q := strings.TrimSpace(input)
	if q == "" {
		return Action{Kind: ActionNone}
	}

	if strings.HasPrefix(q, "http://") || strings.HasPrefix(q, "https://") {
		return Action{Kind: ActionNavigate, URL: q, Query: q}
	}

	if looksLikeDomain(q) {
		return Action{Kind: ActionNavigate, URL: "https://" + q, Query: q}
	}

	token, rest := splitToken(q)
	token = strings.ToLower(token)

	if kind, ok := localKind(token); ok {
		return Action{Kind: ActionLocal, Local: kind, Query: q}
	}

	if e, ok := LookupEngine(token, bookmarkMode); ok {
		return Action{Kind: ActionSearch, Engine: e, URL: e.URL(rest), Query: q}
	}

	return Action{Kind: ActionSearch, Engine: &Fallback, URL: Fallback.URL(q), Query: q}
}

func looksLikeDomain(q string) bool {
	return strings.Contains(q, ".") &&
		!strings.ContainsFunc(q, unicode.IsSpace) &&
		!strings.HasPrefix(q, "!")
}

// splitToken splits on the first run of whitespace.
func splitToken(q string) (token, rest string) {
	i := strings.IndexFunc(q, unicode.IsSpace)
	if i < 0 {
		return q, ""
	}
	return q[:i], strings.TrimLeftFunc(q[i:], unicode.IsSpace)
}
