// Package render turns a company profile into markdown business documents
// by substituting profile-derived variables into framework templates.
// Pure consumer: rendering never feeds back into the answer store.
package render

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/groundworkhq/groundwork/internal/config"
)

//go:embed templates/*.md
var builtinTemplates embed.FS

// ErrUnknownFramework is returned when no template exists for a name.
var ErrUnknownFramework = errors.New("unknown framework")

// Template is a framework document template with frontmatter metadata.
type Template struct {
	// Metadata from frontmatter
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Output      string `yaml:"output,omitempty"`

	// Template content (after frontmatter)
	Content string `yaml:"-"`

	// Source location for display: "built-in", "global", or "workspace"
	Source string `yaml:"-"`
}

// Info provides template metadata for listing.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// OutputFile returns the file name a rendered document is written to.
func (t *Template) OutputFile() string {
	if t.Output != "" {
		return t.Output
	}
	return t.Name + ".md"
}

// LoadTemplate finds and loads a framework template by name.
// Resolution order: workspace templates dir → user global → built-in.
func LoadTemplate(name, workspaceTemplatesDir string) (*Template, error) {
	if workspaceTemplatesDir != "" {
		if tmpl, err := loadFromDir(workspaceTemplatesDir, name); err == nil {
			tmpl.Source = "workspace"
			return tmpl, nil
		}
	}

	if dir := config.TemplatesDir(); dir != "" {
		if tmpl, err := loadFromDir(dir, name); err == nil {
			tmpl.Source = "global"
			return tmpl, nil
		}
	}

	data, err := builtinTemplates.ReadFile("templates/" + name + ".md")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFramework, name)
	}
	tmpl, err := parseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("built-in template %s: %w", name, err)
	}
	tmpl.Source = "built-in"
	return tmpl, nil
}

// List returns all available frameworks: built-ins plus overrides, with
// overrides replacing same-named built-ins. Sorted by name.
func List(workspaceTemplatesDir string) ([]Info, error) {
	byName := make(map[string]Info)

	entries, err := builtinTemplates.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("reading built-in templates: %w", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".md")
		tmpl, loadErr := LoadTemplate(name, workspaceTemplatesDir)
		if loadErr != nil {
			continue
		}
		byName[name] = Info{Name: name, Description: tmpl.Description, Source: tmpl.Source}
	}

	// Override dirs may add frameworks that have no built-in counterpart.
	for _, dir := range []string{config.TemplatesDir(), workspaceTemplatesDir} {
		if dir == "" {
			continue
		}
		files, globErr := filepath.Glob(filepath.Join(dir, "*.md"))
		if globErr != nil {
			continue
		}
		for _, file := range files {
			name := strings.TrimSuffix(filepath.Base(file), ".md")
			if _, seen := byName[name]; seen {
				continue
			}
			tmpl, loadErr := LoadTemplate(name, workspaceTemplatesDir)
			if loadErr != nil {
				continue
			}
			byName[name] = Info{Name: name, Description: tmpl.Description, Source: tmpl.Source}
		}
	}

	infos := make([]Info, 0, len(byName))
	for _, info := range byName {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// loadFromDir reads <dir>/<name>.md and parses its frontmatter.
func loadFromDir(dir, name string) (*Template, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".md"))
	if err != nil {
		return nil, err
	}
	tmpl, err := parseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = name
	}
	return tmpl, nil
}

// parseTemplate splits YAML frontmatter from markdown content.
// Frontmatter is delimited by "---" lines at the top of the file.
func parseTemplate(data []byte) (*Template, error) {
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		return &Template{Content: text}, nil
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return nil, errors.New("unterminated frontmatter")
	}

	var tmpl Template
	if err := yaml.Unmarshal([]byte(rest[:end]), &tmpl); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	tmpl.Content = strings.TrimPrefix(rest[end+len("\n---\n"):], "\n")
	return &tmpl, nil
}
