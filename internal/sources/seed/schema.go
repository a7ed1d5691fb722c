package seed

// Config is the top-level structure of the seed file:
//
//	theme:
//	  accent: "#ff8800"
//	bookmarks:
//	  - name: Go
//	    href: go.dev
//	recent:
//	  - "!gh chi router"
type Config struct {
	Theme     map[string]string `yaml:"theme,omitempty"`
	Bookmarks []SiteProps       `yaml:"bookmarks,omitempty"`
	Recent    []string          `yaml:"recent,omitempty"`
}

// SiteProps is one bookmark of the seed file.
type SiteProps struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
	Icon string `yaml:"icon,omitempty"`
}
