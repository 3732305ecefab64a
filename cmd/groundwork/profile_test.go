package main

import (
	"strings"
	"testing"
)

func TestProfileShow_Defaults(t *testing.T) {
	setupWorkspace(t)

	result := executeJSON(t, "", "profile", "show", "--json")
	identity, ok := result["identity"].(map[string]any)
	if !ok {
		t.Fatalf("identity = %v", result["identity"])
	}
	if identity["stage"] != "EARLY" {
		t.Errorf("default stage = %v, want EARLY", identity["stage"])
	}
}

func TestProfileShow_ReflectsAnswers(t *testing.T) {
	setupWorkspace(t)
	replay := writeReplayFile(t, coreReplay)
	executeJSON(t, "", "intake", "--replay", replay, "--json")

	result := executeJSON(t, "", "profile", "show", "--json")
	identity := result["identity"].(map[string]any)
	if identity["name"] != "Vertex Labs" {
		t.Errorf("name = %v", identity["name"])
	}
	if identity["stage"] != "IDEA" {
		t.Errorf("stage = %v, want IDEA", identity["stage"])
	}
	meta := result["meta"].(map[string]any)
	if meta["lifecycle"] != "NEW" {
		t.Errorf("lifecycle = %v, want NEW", meta["lifecycle"])
	}
}

func TestProfileSet_RequiresSource(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "", "profile", "set", "revenue.pricing_model", "usage-based")
	if err == nil {
		t.Fatalf("expected error without --source, output: %s", out)
	}
	if !strings.Contains(out, "--source") {
		t.Errorf("output = %s", out)
	}
}

func TestProfileSet_WritesFieldAndProvenance(t *testing.T) {
	setupWorkspace(t)

	executeJSON(t, "", "profile", "set", "revenue.pricing_model", "usage-based",
		"--source", "pricing workshop", "--json")

	result := executeJSON(t, "", "profile", "show", "--json")
	revenue := result["revenue"].(map[string]any)
	if revenue["pricing_model"] != "usage-based" {
		t.Errorf("pricing_model = %v", revenue["pricing_model"])
	}
	meta := result["meta"].(map[string]any)
	sources, ok := meta["sources"].([]any)
	if !ok || len(sources) != 1 {
		t.Fatalf("sources = %v, want one record", meta["sources"])
	}
	record := sources[0].(map[string]any)
	if record["source"] != "pricing workshop" {
		t.Errorf("source = %v", record["source"])
	}
}

func TestProfileSet_UnknownPath(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t, "", "profile", "set", "nope.nothing", "x", "--source", "test")
	if err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func TestCatalog_ShowsActiveCatalog(t *testing.T) {
	setupWorkspace(t)

	result := executeJSON(t, "", "catalog", "--json")
	if result["catalog"] != "groundwork.founder" {
		t.Errorf("catalog = %v", result["catalog"])
	}
	sections, ok := result["sections"].([]any)
	if !ok || len(sections) == 0 {
		t.Errorf("sections = %v", result["sections"])
	}
}

func TestRestart_DiscardsAnswers(t *testing.T) {
	setupWorkspace(t)
	replay := writeReplayFile(t, coreReplay)
	executeJSON(t, "", "intake", "--replay", replay, "--json")

	result := executeJSON(t, "", "restart", "--yes", "--json")
	if result["restarted"] != true {
		t.Errorf("restarted = %v", result["restarted"])
	}
	if result["discarded"] != float64(7) {
		t.Errorf("discarded = %v, want 7", result["discarded"])
	}

	status := executeJSON(t, "", "status", "--json")
	if status["answered"] != float64(0) {
		t.Errorf("answered after restart = %v, want 0", status["answered"])
	}
}

func TestRestart_AbortsWithoutConfirmation(t *testing.T) {
	setupWorkspace(t)
	replay := writeReplayFile(t, "Vertex Labs\n")
	executeJSON(t, "", "intake", "--replay", replay, "--json")

	out, err := execute(t, "n\n", "restart")
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if !strings.Contains(out, "Aborted") {
		t.Errorf("output = %s", out)
	}

	status := executeJSON(t, "", "status", "--json")
	if status["answered"] != float64(1) {
		t.Errorf("answered = %v, want answer kept after abort", status["answered"])
	}
}
