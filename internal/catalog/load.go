package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/groundworkhq/groundwork/internal/config"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

//go:embed builtin.yaml
var builtinCatalog []byte

// LoadFile reads and parses a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedError{Reason: fmt.Sprintf("reading %s", path), Cause: err}
	}
	return Parse(data)
}

// LoadBuiltin parses the embedded default catalog.
func LoadBuiltin() (*Catalog, error) {
	return Parse(builtinCatalog)
}

// Resolve loads the catalog for a workspace root.
//
// Resolution order: workspace catalog.yaml override, then the global
// config-dir catalog, then the built-in catalog.
func Resolve(root string) (*Catalog, error) {
	if path := workspace.CatalogPath(root); fileExists(path) {
		return LoadFile(path)
	}
	if path := config.CatalogPath(); path != "" && fileExists(path) {
		return LoadFile(path)
	}
	return LoadBuiltin()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
