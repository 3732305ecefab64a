package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/groundworkhq/groundwork/internal/workspace"
)

// setupWorkspace scaffolds a workspace in a temp dir and points
// GROUNDWORK_DIR at it so commands resolve it regardless of cwd.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, step := range workspace.Scaffold(root, false) {
		if step.Status == "failed" {
			t.Fatalf("scaffold %s: %s", step.Name, step.Message)
		}
	}
	t.Setenv("GROUNDWORK_DIR", root)
	return root
}

// execute runs the CLI with the given stdin and args, returning combined
// stdout/stderr output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// executeJSON runs the CLI and parses its output as a JSON object.
func executeJSON(t *testing.T, stdin string, args ...string) map[string]any {
	t.Helper()
	out, err := execute(t, stdin, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, out)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parsing JSON output: %v\noutput: %s", err, out)
	}
	return result
}

// coreReplay is a replay script answering every unguarded core question
// for a new company, in catalog order.
const coreReplay = `Vertex Labs
Infrastructure without the ops team
NEW
Idea
Developer tooling
Small businesses, Consumers
Reach first paying customers
`

func TestRootCommand_NoArgsShowsHelp(t *testing.T) {
	out, err := execute(t, "")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "groundwork") {
		t.Errorf("help output missing program name:\n%s", out)
	}
}

func TestRootCommand_JSONWithoutSubcommandFails(t *testing.T) {
	out, err := execute(t, "", "--json")
	if err == nil {
		t.Fatal("expected error for --json without subcommand")
	}
	if !strings.Contains(out, "no command specified") {
		t.Errorf("output = %s", out)
	}
}

func TestBuildVersion(t *testing.T) {
	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion = %q with default ldflags", got)
	}
}
