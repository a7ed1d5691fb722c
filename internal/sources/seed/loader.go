// Package seed reads the optional YAML file that gives a fresh store its
// first theme, bookmarks and recent searches.
package seed

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads a seed file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the seed file. {{TERMTAB_VAR_NAME}} placeholders are
// replaced with the NAME environment variable before parsing.
func (l *Loader) Load() (Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandTemplateVariables(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return cfg, nil
}

var templateVar = regexp.MustCompile(`\{\{\s*TERMTAB_VAR_([A-Za-z0-9_]+)\s*\}\}`)

// expandTemplateVariables substitutes {{TERMTAB_VAR_X}} with $X, empty when
// unset.
func expandTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := templateVar.FindSubmatch(m)[1]
		return []byte(strings.TrimSpace(os.Getenv(string(name))))
	})
}
