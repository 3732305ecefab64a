// Package workspace locates and scaffolds the .groundwork/ directory that
// holds the answer store, the company profile, and generated documents.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the workspace directory created next to the founder's files.
const DirName = ".groundwork"

// Well-known file and directory names inside the workspace.
const (
	AnswersFile  = "answers.yaml"
	ProfileFile  = "profile.yaml"
	CatalogFile  = "catalog.yaml"
	DocsDir      = "docs"
	TemplatesDir = "templates"
)

// ErrNotInitialized is returned when no workspace exists at or above the
// working directory.
var ErrNotInitialized = errors.New("no " + DirName + " workspace found (run 'groundwork init')")

// Root returns the directory containing the .groundwork/ workspace.
//
// Resolution:
//   - $GROUNDWORK_DIR if set (explicit override; must contain .groundwork/)
//   - nearest ancestor of the working directory containing .groundwork/
func Root() (string, error) {
	if dir := os.Getenv("GROUNDWORK_DIR"); dir != "" {
		if !exists(filepath.Join(dir, DirName)) {
			return "", fmt.Errorf("GROUNDWORK_DIR=%s: %w", dir, ErrNotInitialized)
		}
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return RootFrom(cwd)
}

// RootFrom walks up from dir looking for a .groundwork/ directory.
func RootFrom(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		if exists(filepath.Join(current, DirName)) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInitialized
		}
		current = parent
	}
}

// Dir returns the workspace directory under root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// AnswersPath returns the answer store path under root.
func AnswersPath(root string) string {
	return filepath.Join(root, DirName, AnswersFile)
}

// ProfilePath returns the company profile path under root.
func ProfilePath(root string) string {
	return filepath.Join(root, DirName, ProfileFile)
}

// CatalogPath returns the per-workspace catalog override path under root.
func CatalogPath(root string) string {
	return filepath.Join(root, DirName, CatalogFile)
}

// DocsPath returns the generated-documents directory under root.
func DocsPath(root string) string {
	return filepath.Join(root, DirName, DocsDir)
}

// TemplatesPath returns the per-workspace template override directory under root.
func TemplatesPath(root string) string {
	return filepath.Join(root, DirName, TemplatesDir)
}

// Step records the outcome of one scaffolding step.
type Step struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "created", "exists", "failed", "dry_run"
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// Scaffold creates the workspace layout under root. It is idempotent:
// existing pieces are reported as "exists" and left alone.
// With dryRun, nothing is written and every step reports "dry_run".
func Scaffold(root string, dryRun bool) []Step {
	dirs := []string{
		Dir(root),
		DocsPath(root),
		TemplatesPath(root),
	}

	steps := make([]Step, 0, len(dirs))
	for _, dir := range dirs {
		steps = append(steps, scaffoldDir(dir, dryRun))
	}
	return steps
}

func scaffoldDir(dir string, dryRun bool) Step {
	step := Step{Name: filepath.Base(dir), Path: dir}

	if exists(dir) {
		step.Status = "exists"
		return step
	}
	if dryRun {
		step.Status = "dry_run"
		step.Message = "would create directory"
		return step
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		step.Status = "failed"
		step.Message = err.Error()
		return step
	}
	step.Status = "created"
	return step
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
