package profile

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/groundworkhq/groundwork/internal/answers"
)

// Patch sets a profile field directly at a dotted path, bypassing the
// answer store entirely. This is the custom-data escape hatch: merge by
// override, last write wins, no provenance beyond the free-text source
// tag recorded in meta.sources.
func (p *Profile) Patch(path, value, source string) error {
	if source == "" {
		return fmt.Errorf("patching %s: a source tag is required", path)
	}

	switch path {
	case "compliance.regulated":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("patching %s: %q is not a boolean", path, value)
		}
		p.Compliance.Regulated = parsed
	default:
		apply, ok := bindings[path]
		if !ok {
			return fmt.Errorf("no profile field at path %q", path)
		}
		apply(p, answers.TextValue(value))
	}

	p.Meta.Sources = append(p.Meta.Sources, PatchSource{Path: path, Source: source})
	return nil
}

// PatchablePaths lists every dotted path Patch accepts, sorted.
func PatchablePaths() []string {
	paths := make([]string, 0, len(bindings))
	for path := range bindings {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
