package main

import (
	"testing"
)

func TestStatus_FreshWorkspace(t *testing.T) {
	setupWorkspace(t)

	result := executeJSON(t, "", "status", "--json")
	if result["answered"] != float64(0) {
		t.Errorf("answered = %v, want 0", result["answered"])
	}
	if result["core_complete"] != false {
		t.Errorf("core_complete = %v, want false", result["core_complete"])
	}
	missing, ok := result["missing_core"].([]any)
	if !ok || len(missing) == 0 {
		t.Errorf("missing_core = %v, want required question IDs", result["missing_core"])
	}
}

func TestStatus_AfterCoreAnswers(t *testing.T) {
	setupWorkspace(t)
	replay := writeReplayFile(t, coreReplay)
	executeJSON(t, "", "intake", "--replay", replay, "--json")

	result := executeJSON(t, "", "status", "--json")
	if result["answered"] != float64(7) {
		t.Errorf("answered = %v, want 7", result["answered"])
	}
	if result["core_complete"] != true {
		t.Errorf("core_complete = %v, want true", result["core_complete"])
	}
	if result["stage"] != "core" {
		t.Errorf("stage = %v, want core", result["stage"])
	}
	if missing, ok := result["missing_core"].([]any); ok && len(missing) > 0 {
		t.Errorf("missing_core = %v, want empty", missing)
	}
}

func TestStatus_ListsPatchedFields(t *testing.T) {
	setupWorkspace(t)
	executeJSON(t, "", "profile", "set", "revenue.pricing_model", "usage-based",
		"--source", "workshop", "--json")

	result := executeJSON(t, "", "status", "--json")
	patched, ok := result["patched"].([]any)
	if !ok || len(patched) != 1 || patched[0] != "revenue.pricing_model" {
		t.Errorf("patched = %v, want [revenue.pricing_model]", result["patched"])
	}
}

func TestStatus_VerboseListsAsked(t *testing.T) {
	setupWorkspace(t)
	replay := writeReplayFile(t, "Vertex Labs\n")
	executeJSON(t, "", "intake", "--replay", replay, "--json")

	result := executeJSON(t, "", "status", "--verbose", "--json")
	asked, ok := result["asked"].([]any)
	if !ok || len(asked) != 1 || asked[0] != "company_name" {
		t.Errorf("asked = %v, want [company_name]", result["asked"])
	}
}
