package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/groundworkhq/groundwork/internal/session"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// --- Test helpers ---

func makeTestSession(t *testing.T) *session.Session {
	t.Helper()
	root := t.TempDir()
	for _, step := range workspace.Scaffold(root, false) {
		if step.Status == "failed" {
			t.Fatalf("scaffold %s: %s", step.Name, step.Message)
		}
	}
	sess, err := session.OpenAt(root)
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	return sess
}

func answerThrough(t *testing.T, sess *session.Session, answers map[string]string) {
	t.Helper()
	handler := handleIntakeAnswer(sess)
	next := handleIntakeNext(sess)
	for {
		_, out, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{})
		if err != nil {
			t.Fatalf("intake_next: %v", err)
		}
		if out.Done {
			return
		}
		input, ok := answers[out.Question.ID]
		if !ok {
			t.Fatalf("no scripted answer for question %s", out.Question.ID)
		}
		if _, _, err := handler(context.Background(), &mcp.CallToolRequest{},IntakeAnswerInput{Input: input}); err != nil {
			t.Fatalf("answering %s: %v", out.Question.ID, err)
		}
	}
}

var coreAnswers = map[string]string{
	"company_name":      "Vertex Labs",
	"tagline":           "Infrastructure without the ops team",
	"lifecycle_mode":    "NEW",
	"stage":             "Idea",
	"industry":          "Developer tooling",
	"customer_segments": "Small businesses, Consumers",
	"main_goal":         "Reach first paying customers",
}

// --- intake_next handler tests ---

func TestIntakeNext_FreshWorkspaceStartsAtCore(t *testing.T) {
	sess := makeTestSession(t)
	handler := handleIntakeNext(sess)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Done {
		t.Fatal("fresh workspace reported done")
	}
	if out.Stage != "core" {
		t.Errorf("stage = %q, want core", out.Stage)
	}
	if out.Question == nil || out.Question.ID != "company_name" {
		t.Errorf("question = %+v, want company_name first", out.Question)
	}
	if out.Question.Prompt == "" {
		t.Error("question has empty prompt")
	}
}

func TestIntakeNext_InvalidStage(t *testing.T) {
	sess := makeTestSession(t)
	handler := handleIntakeNext(sess)

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{Stage: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestIntakeNext_StageSwitch(t *testing.T) {
	sess := makeTestSession(t)
	handler := handleIntakeNext(sess)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{Stage: "deep"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Stage != "deep" {
		t.Errorf("stage = %q, want deep", out.Stage)
	}
	if out.Question == nil {
		t.Fatal("deep stage has no questions")
	}
}

// --- intake_answer handler tests ---

func TestIntakeAnswer_RecordsAndAdvances(t *testing.T) {
	sess := makeTestSession(t)
	next := handleIntakeNext(sess)
	answer := handleIntakeAnswer(sess)

	if _, _, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{}); err != nil {
		t.Fatalf("intake_next: %v", err)
	}

	_, out, err := answer(context.Background(), &mcp.CallToolRequest{},IntakeAnswerInput{Input: "Vertex Labs"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.QuestionID != "company_name" {
		t.Errorf("QuestionID = %q", out.QuestionID)
	}
	if out.Recorded != "Vertex Labs" {
		t.Errorf("Recorded = %q", out.Recorded)
	}
	if out.Next == nil || out.Done {
		t.Error("expected a next question after the first answer")
	}
}

func TestIntakeAnswer_ValidationErrorLeavesQueue(t *testing.T) {
	sess := makeTestSession(t)
	next := handleIntakeNext(sess)
	answer := handleIntakeAnswer(sess)

	if _, _, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{}); err != nil {
		t.Fatalf("intake_next: %v", err)
	}

	// company_name is required, empty input must be rejected
	if _, _, err := answer(context.Background(), &mcp.CallToolRequest{},IntakeAnswerInput{Input: "  "}); err == nil {
		t.Fatal("expected validation error for empty required answer")
	}

	_, out, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{})
	if err != nil {
		t.Fatalf("intake_next after failure: %v", err)
	}
	if out.Question == nil || out.Question.ID != "company_name" {
		t.Errorf("question after failed answer = %+v, want company_name still pending", out.Question)
	}
}

func TestIntakeAnswer_RebuildsProfile(t *testing.T) {
	sess := makeTestSession(t)
	next := handleIntakeNext(sess)
	answer := handleIntakeAnswer(sess)

	if _, _, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{}); err != nil {
		t.Fatalf("intake_next: %v", err)
	}
	if _, _, err := answer(context.Background(), &mcp.CallToolRequest{},IntakeAnswerInput{Input: "Vertex Labs"}); err != nil {
		t.Fatalf("intake_answer: %v", err)
	}

	_, out, err := handleProfileGet(sess)(context.Background(), &mcp.CallToolRequest{},ProfileGetInput{})
	if err != nil {
		t.Fatalf("profile_get: %v", err)
	}
	if out.Profile.Identity.Name != "Vertex Labs" {
		t.Errorf("Identity.Name = %q, want projection after answer", out.Profile.Identity.Name)
	}
}

func TestIntakeAnswer_SurfacesGuardUnlockedSection(t *testing.T) {
	sess := makeTestSession(t)

	existingAnswers := map[string]string{
		"company_name":      "Vertex Labs",
		"tagline":           "Infrastructure without the ops team",
		"lifecycle_mode":    "EXISTING",
		"stage":             "Early",
		"industry":          "Developer tooling",
		"customer_segments": "Small businesses",
		"main_goal":         "Grow recurring revenue",
		"founded_year":      "2019",
		"headcount":         "2_5",
		"monthly_revenue":   "$12k",
	}
	answerThrough(t, sess, existingAnswers)

	for _, id := range []string{"founded_year", "headcount", "monthly_revenue"} {
		if !sess.Orch.State().Asked(id) {
			t.Errorf("question %s never surfaced after lifecycle_mode=EXISTING", id)
		}
	}

	_, out, err := handleIntakeStatus(sess)(context.Background(), &mcp.CallToolRequest{}, IntakeStatusInput{})
	if err != nil {
		t.Fatalf("intake_status: %v", err)
	}
	if out.Answered != len(existingAnswers) {
		t.Errorf("Answered = %d, want %d", out.Answered, len(existingAnswers))
	}
}

// --- intake_back handler tests ---

func TestIntakeBack_RemovesLastAnswer(t *testing.T) {
	sess := makeTestSession(t)
	next := handleIntakeNext(sess)
	answer := handleIntakeAnswer(sess)

	if _, _, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{}); err != nil {
		t.Fatalf("intake_next: %v", err)
	}
	if _, _, err := answer(context.Background(), &mcp.CallToolRequest{},IntakeAnswerInput{Input: "Vertex Labs"}); err != nil {
		t.Fatalf("intake_answer: %v", err)
	}

	_, out, err := handleIntakeBack(sess)(context.Background(), &mcp.CallToolRequest{},IntakeBackInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Removed != "company_name" {
		t.Errorf("Removed = %q", out.Removed)
	}
	if sess.Orch.State().Asked("company_name") {
		t.Error("company_name still marked asked after back")
	}
}

func TestIntakeBack_NothingAnswered(t *testing.T) {
	sess := makeTestSession(t)

	_, _, err := handleIntakeBack(sess)(context.Background(), &mcp.CallToolRequest{},IntakeBackInput{})
	if err == nil {
		t.Fatal("expected error with no answered questions")
	}
}

// --- intake_skip handler tests ---

func TestIntakeSkip_DefersQuestion(t *testing.T) {
	sess := makeTestSession(t)
	next := handleIntakeNext(sess)

	_, before, err := next(context.Background(), &mcp.CallToolRequest{},IntakeNextInput{})
	if err != nil {
		t.Fatalf("intake_next: %v", err)
	}

	_, out, err := handleIntakeSkip(sess)(context.Background(), &mcp.CallToolRequest{},IntakeSkipInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Next == nil {
		t.Fatal("skip returned no next question")
	}
	if out.Next.ID == before.Question.ID {
		t.Errorf("skip did not advance past %s", before.Question.ID)
	}
}

// --- intake_restart handler tests ---

func TestIntakeRestart_RequiresConfirm(t *testing.T) {
	sess := makeTestSession(t)

	_, _, err := handleIntakeRestart(sess)(context.Background(), &mcp.CallToolRequest{},IntakeRestartInput{})
	if err == nil {
		t.Fatal("expected error without confirm")
	}
}

func TestIntakeRestart_DiscardsAnswers(t *testing.T) {
	sess := makeTestSession(t)
	answerThrough(t, sess, coreAnswers)

	_, out, err := handleIntakeRestart(sess)(context.Background(), &mcp.CallToolRequest{},IntakeRestartInput{Confirm: true})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !out.Restarted {
		t.Error("Restarted = false")
	}
	if n := len(sess.Orch.State().Answers); n != 0 {
		t.Errorf("answers after restart = %d, want 0", n)
	}
}

// --- intake_status handler tests ---

func TestIntakeStatus_TracksProgress(t *testing.T) {
	sess := makeTestSession(t)
	answerThrough(t, sess, coreAnswers)

	_, out, err := handleIntakeStatus(sess)(context.Background(), &mcp.CallToolRequest{},IntakeStatusInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Stage != "core" {
		t.Errorf("Stage = %q", out.Stage)
	}
	if out.Phase != "exhausted" {
		t.Errorf("Phase = %q, want exhausted after answering through core", out.Phase)
	}
	if !out.CoreComplete {
		t.Error("CoreComplete = false after answering all core questions")
	}
	if out.Answered != len(coreAnswers) {
		t.Errorf("Answered = %d, want %d", out.Answered, len(coreAnswers))
	}
}

// --- profile_patch handler tests ---

func TestProfilePatch_RequiresSource(t *testing.T) {
	sess := makeTestSession(t)

	_, _, err := handleProfilePatch(sess)(context.Background(), &mcp.CallToolRequest{},ProfilePatchInput{
		Path:  "revenue.pricing_model",
		Value: "usage-based",
	})
	if err == nil {
		t.Fatal("expected error without source")
	}
}

func TestProfilePatch_SetsFieldWithProvenance(t *testing.T) {
	sess := makeTestSession(t)

	_, out, err := handleProfilePatch(sess)(context.Background(), &mcp.CallToolRequest{},ProfilePatchInput{
		Path:   "revenue.pricing_model",
		Value:  "usage-based",
		Source: "pricing workshop notes",
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Profile.Revenue.PricingModel != "usage-based" {
		t.Errorf("PricingModel = %q", out.Profile.Revenue.PricingModel)
	}
	if len(out.Profile.Meta.Sources) != 1 {
		t.Fatalf("Sources = %+v, want one provenance record", out.Profile.Meta.Sources)
	}
	if out.Profile.Meta.Sources[0].Source != "pricing workshop notes" {
		t.Errorf("Source = %q", out.Profile.Meta.Sources[0].Source)
	}
}

// --- generate_doc handler tests ---

func TestGenerateDoc_WritesDocument(t *testing.T) {
	sess := makeTestSession(t)
	answerThrough(t, sess, coreAnswers)

	_, out, err := handleGenerateDoc(sess)(context.Background(), &mcp.CallToolRequest{},GenerateDocInput{Framework: "swot"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Warning != "" {
		t.Errorf("Warning = %q, want none with core complete", out.Warning)
	}
	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("reading generated doc: %v", err)
	}
	if !strings.Contains(string(data), "Vertex Labs") {
		t.Error("generated doc missing company name")
	}
	if filepath.Base(out.Path) != "swot.md" {
		t.Errorf("path = %q, want swot.md", out.Path)
	}
}

func TestGenerateDoc_UnknownFramework(t *testing.T) {
	sess := makeTestSession(t)

	_, _, err := handleGenerateDoc(sess)(context.Background(), &mcp.CallToolRequest{},GenerateDocInput{Framework: "nope"})
	if err == nil {
		t.Fatal("expected error for unknown framework")
	}
}

func TestGenerateDoc_WarnsWhenCoreIncomplete(t *testing.T) {
	sess := makeTestSession(t)

	_, out, err := handleGenerateDoc(sess)(context.Background(), &mcp.CallToolRequest{},GenerateDocInput{Framework: "swot"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Warning == "" {
		t.Error("expected placeholder warning with no answers recorded")
	}
}

// --- list_frameworks handler tests ---

func TestListFrameworks_ReturnsBuiltins(t *testing.T) {
	sess := makeTestSession(t)

	_, out, err := handleListFrameworks(sess)(context.Background(), &mcp.CallToolRequest{},ListFrameworksInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(out.Frameworks) != 8 {
		t.Fatalf("frameworks = %d, want 8 built-ins", len(out.Frameworks))
	}
	names := make(map[string]bool)
	for _, fw := range out.Frameworks {
		names[fw.Name] = true
		if fw.Source != "built-in" {
			t.Errorf("%s source = %q, want built-in", fw.Name, fw.Source)
		}
	}
	for _, want := range []string{"swot", "okr", "canvas", "pestle"} {
		if !names[want] {
			t.Errorf("missing framework %s", want)
		}
	}
}
