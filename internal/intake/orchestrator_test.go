package intake

import (
	"errors"
	"reflect"
	"testing"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
)

// --- Test Helpers ---

// memorySaver records saves and can be told to fail.
type memorySaver struct {
	saves   int
	failErr error
}

func (s *memorySaver) Save(_ *answers.State) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.saves++
	return nil
}

const testCatalogSource = `
catalog: test.intake
version: 1
sections:
  - id: basics
    stage: core
    questions:
      - id: company_name
        type: text
        required: true
        prompt: { en: "Name?" }
      - id: lifecycle_mode
        type: single_choice
        required: true
        prompt: { en: "New or existing?" }
        options:
          - value: NEW
          - value: EXISTING
          - value: UNKNOWN
  - id: existing_only
    stage: core
    when:
      lifecycle_mode: EXISTING
    questions:
      - id: founded_year
        type: text
        prompt: { en: "Founded?" }
      - id: monthly_revenue
        type: text
        prompt: { en: "Revenue?" }
  - id: colors
    stage: deep
    questions:
      - id: palette
        type: multi_choice
        required: true
        prompt: { en: "Colors?" }
        options:
          - value: red
          - value: green
          - value: blue
      - id: confirm_palette
        type: confirm
        prompt: { en: "Happy? [Y/n]" }
`

func newTestOrchestrator(t *testing.T) (*Orchestrator, *memorySaver) {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogSource))
	if err != nil {
		t.Fatalf("parsing test catalog: %v", err)
	}
	saver := &memorySaver{}
	return New(cat, saver, answers.NewState(cat.ID, cat.Version)), saver
}

// assertDisjoint checks the core invariant: asked and queue contain
// disjoint id sets and no id repeats within either.
func assertDisjoint(t *testing.T, o *Orchestrator) {
	t.Helper()
	seen := make(map[string]string)
	for _, id := range o.Asked() {
		if where, dup := seen[id]; dup {
			t.Fatalf("id %s appears in asked and %s", id, where)
		}
		seen[id] = "asked"
	}
	for _, id := range o.QueueIDs() {
		if where, dup := seen[id]; dup {
			t.Fatalf("id %s appears in queue and %s", id, where)
		}
		seen[id] = "queue"
	}
}

func mustAdvance(t *testing.T, o *Orchestrator, input string) *Result {
	t.Helper()
	result, err := o.Advance(input)
	if err != nil {
		t.Fatalf("Advance(%q) = %v", input, err)
	}
	assertDisjoint(t, o)
	return result
}

// --- Phase transitions ---

func TestPhases(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	if got := o.Phase(); got != PhaseEmpty {
		t.Errorf("fresh orchestrator phase = %v, want empty", got)
	}

	o.Refresh(catalog.StageCore)
	if got := o.Phase(); got != PhaseInProgress {
		t.Errorf("after refresh phase = %v, want in_progress", got)
	}

	mustAdvance(t, o, "Acme")
	mustAdvance(t, o, "NEW")
	if got := o.Phase(); got != PhaseExhausted {
		t.Errorf("after draining queue phase = %v, want exhausted", got)
	}
}

// --- Refresh ---

func TestRefresh_Idempotent(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	o.Refresh(catalog.StageCore)
	first := o.QueueIDs()
	o.Refresh(catalog.StageCore)
	second := o.QueueIDs()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Refresh not idempotent: %v then %v", first, second)
	}
}

func TestRefresh_NeverReaddsAsked(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")

	o.Refresh(catalog.StageCore)

	for _, id := range o.QueueIDs() {
		if id == "company_name" {
			t.Error("asked question re-entered queue on refresh")
		}
	}
	assertDisjoint(t, o)
}

func TestRefresh_GuardedSection(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")

	// Answer NEW: guarded section stays out entirely.
	mustAdvance(t, o, "NEW")
	o.Refresh(catalog.StageCore)
	if got := o.QueueIDs(); len(got) != 0 {
		t.Errorf("guard false: queue = %v, want empty", got)
	}

	// Rewind and answer EXISTING: guarded section fully included.
	if _, err := o.GoBack(); err != nil {
		t.Fatalf("GoBack() = %v", err)
	}
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "EXISTING")
	o.Refresh(catalog.StageCore)
	want := []string{"founded_year", "monthly_revenue"}
	if got := o.QueueIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("guard true: queue = %v, want %v", got, want)
	}
}

// --- Advance ---

func TestAdvance_ValidationFailureLeavesStateUnchanged(t *testing.T) {
	o, saver := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	queueBefore := o.QueueIDs()
	savesBefore := saver.saves

	_, err := o.Advance("   ")

	validationErr := &ValidationError{}
	if !errors.As(err, &validationErr) {
		t.Fatalf("Advance(blank required) error = %T, want *ValidationError", err)
	}
	if validationErr.Code != CodeRequiredMissing {
		t.Errorf("code = %v, want required_field_missing", validationErr.Code)
	}
	if !reflect.DeepEqual(o.QueueIDs(), queueBefore) {
		t.Error("queue changed on validation failure")
	}
	if len(o.Asked()) != 0 {
		t.Error("asked changed on validation failure")
	}
	if saver.saves != savesBefore {
		t.Error("validation failure should not persist")
	}
}

func TestAdvance_PersistFailureRollsBack(t *testing.T) {
	o, saver := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	queueBefore := o.QueueIDs()

	saver.failErr = errors.New("disk full")
	_, err := o.Advance("Acme")

	if err == nil || err.Error() != "disk full" {
		t.Fatalf("Advance() = %v, want save failure surfaced", err)
	}
	if !reflect.DeepEqual(o.QueueIDs(), queueBefore) {
		t.Error("queue changed despite failed save")
	}
	if len(o.Asked()) != 0 {
		t.Error("asked changed despite failed save")
	}
	if _, ok := o.State().Get("company_name"); ok {
		t.Error("answer record kept despite failed save")
	}

	// Retry after the fault clears loses nothing.
	saver.failErr = nil
	result := mustAdvance(t, o, "Acme")
	if result.Question.ID != "company_name" {
		t.Errorf("retry advanced %s, want company_name", result.Question.ID)
	}
}

func TestAdvance_Exhausted(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	if _, err := o.Advance("x"); !errors.Is(err, ErrExhausted) {
		t.Errorf("Advance() on empty queue = %v, want ErrExhausted", err)
	}
	if _, err := o.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Next() on empty queue = %v, want ErrExhausted", err)
	}
}

// --- GoBack ---

func TestGoBack_AsymmetryWithAdvance(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")

	id, err := o.GoBack()
	if err != nil {
		t.Fatalf("GoBack() = %v", err)
	}
	if id != "company_name" {
		t.Errorf("GoBack() popped %s, want company_name", id)
	}

	// Record gone, id off the asked stack...
	if _, ok := o.State().Get("company_name"); ok {
		t.Error("answer record still exists after GoBack")
	}
	if o.State().Asked("company_name") {
		t.Error("id still on asked stack after GoBack")
	}

	// ...but NOT back in the queue until a Refresh regenerates it.
	for _, queued := range o.QueueIDs() {
		if queued == "company_name" {
			t.Error("GoBack must not reinsert the popped question")
		}
	}
	o.Refresh(catalog.StageCore)
	if got := o.QueueIDs(); len(got) == 0 || got[0] != "company_name" {
		t.Errorf("Refresh after GoBack: queue = %v, want company_name at head", got)
	}
}

func TestGoBack_EmptyAskedFails(t *testing.T) {
	o, saver := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	queueBefore := o.QueueIDs()

	_, err := o.GoBack()

	if !errors.Is(err, ErrNoPreviousQuestion) {
		t.Fatalf("GoBack() = %v, want ErrNoPreviousQuestion", err)
	}
	if !reflect.DeepEqual(o.QueueIDs(), queueBefore) || len(o.Asked()) != 0 {
		t.Error("state changed on failed GoBack")
	}
	if saver.saves != 0 {
		t.Error("failed GoBack should not persist")
	}
}

func TestGoBack_PersistFailureRestoresRecord(t *testing.T) {
	o, saver := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")

	saver.failErr = errors.New("disk full")
	_, err := o.GoBack()

	if err == nil {
		t.Fatal("GoBack() should surface save failure")
	}
	if !o.State().Asked("company_name") {
		t.Error("asked stack not restored after failed save")
	}
	if _, ok := o.State().Get("company_name"); !ok {
		t.Error("answer record not restored after failed save")
	}
}

// --- Skip ---

func TestSkip_RoundRobin(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)

	if err := o.Skip(); err != nil {
		t.Fatalf("Skip() = %v", err)
	}

	want := []string{"lifecycle_mode", "company_name"}
	if got := o.QueueIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("queue after skip = %v, want %v", got, want)
	}
	if len(o.Asked()) != 0 {
		t.Error("skip must not mark anything asked")
	}
	assertDisjoint(t, o)
}

func TestSkip_EmptyQueueFails(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	if err := o.Skip(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Skip() on empty queue = %v, want ErrEmptyQueue", err)
	}
}

// --- Restart ---

func TestRestart_ClearsEverything(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")
	mustAdvance(t, o, "EXISTING")

	if err := o.Restart(); err != nil {
		t.Fatalf("Restart() = %v", err)
	}

	if len(o.Asked()) != 0 || len(o.QueueIDs()) != 0 {
		t.Errorf("after restart asked=%v queue=%v, want both empty", o.Asked(), o.QueueIDs())
	}
	if len(o.State().Answers) != 0 {
		t.Errorf("after restart answers = %v, want empty mapping", o.State().Answers)
	}

	// A fresh refresh reproduces the full unfiltered core list.
	o.Refresh(catalog.StageCore)
	want := []string{"company_name", "lifecycle_mode"}
	if got := o.QueueIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("refresh after restart: queue = %v, want %v", got, want)
	}
}

func TestRestart_PersistFailureRestoresState(t *testing.T) {
	o, saver := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")

	saver.failErr = errors.New("disk full")
	if err := o.Restart(); err == nil {
		t.Fatal("Restart() should surface save failure")
	}

	if !o.State().Asked("company_name") {
		t.Error("asked stack lost after failed restart save")
	}
	if _, ok := o.State().Get("company_name"); !ok {
		t.Error("answers lost after failed restart save")
	}
}

// --- Completion predicates ---

func TestCompletionPredicates(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)

	if o.CoreComplete() {
		t.Error("core complete before answering required questions")
	}

	mustAdvance(t, o, "Acme")
	mustAdvance(t, o, "NEW")
	if !o.CoreComplete() {
		t.Error("core incomplete after answering all required core ids")
	}

	if o.DeepComplete() {
		t.Error("deep complete before touching deep stage")
	}
	o.Refresh(catalog.StageDeep)
	mustAdvance(t, o, "red, blue")
	mustAdvance(t, o, "yes")
	if !o.DeepComplete() {
		t.Error("deep incomplete after draining deep queue")
	}
}

func TestDeepComplete_AllSectionsGuardedOff(t *testing.T) {
	const src = `
catalog: test.guarded
version: 1
sections:
  - id: basics
    stage: core
    questions:
      - id: lifecycle_mode
        type: single_choice
        required: true
        prompt: { en: "New or existing?" }
        options:
          - value: NEW
          - value: EXISTING
  - id: finance
    stage: deep
    when:
      lifecycle_mode: EXISTING
    questions:
      - id: monthly_costs
        type: text
        prompt: { en: "Costs?" }
`
	cat, err := catalog.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing catalog: %v", err)
	}
	o := New(cat, &memorySaver{}, answers.NewState(cat.ID, cat.Version))

	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "NEW")

	o.Refresh(catalog.StageDeep)
	if got := o.QueueIDs(); len(got) != 0 {
		t.Fatalf("deep queue = %v, want empty with the only deep section guarded off", got)
	}
	if !o.DeepComplete() {
		t.Error("deep incomplete with an empty deep queue on the deep stage")
	}
}

// --- Validation scenarios through Advance ---

func TestAdvance_SingleChoiceResolution(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "numeric index", input: "2", want: "EXISTING"},
		{name: "case-insensitive value", input: "existing", want: "EXISTING"},
		{name: "out-of-range index", input: "5", wantErr: true},
		{name: "unknown literal", input: "foo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOrchestrator(t)
			o.Refresh(catalog.StageCore)
			mustAdvance(t, o, "Acme")

			result, err := o.Advance(tt.input)
			if tt.wantErr {
				validationErr := &ValidationError{}
				if !errors.As(err, &validationErr) || validationErr.Code != CodeInvalidOption {
					t.Fatalf("Advance(%q) error = %v, want InvalidOption", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Advance(%q) = %v", tt.input, err)
			}
			if result.Value.Text != tt.want {
				t.Errorf("resolved %q, want %q", result.Value.Text, tt.want)
			}
		})
	}
}

func TestAdvance_MultiChoiceDropsUnmatched(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Refresh(catalog.StageCore)
	mustAdvance(t, o, "Acme")
	mustAdvance(t, o, "NEW")
	o.Refresh(catalog.StageDeep)

	result := mustAdvance(t, o, "red, green, bogus")

	if !reflect.DeepEqual(result.Value.List, []string{"red", "green"}) {
		t.Errorf("value = %v, want [red green]", result.Value.List)
	}
	if result.Warning == "" {
		t.Error("dropped token should surface a warning")
	}

	// All-bogus input on a required question still records an empty list.
	o.Refresh(catalog.StageDeep)
	if _, err := o.GoBack(); err != nil {
		t.Fatal(err)
	}
	o.Refresh(catalog.StageDeep)
	result = mustAdvance(t, o, "cyan, magenta")
	if len(result.Value.List) != 0 {
		t.Errorf("value = %v, want empty list", result.Value.List)
	}
	if _, ok := o.State().Get("palette"); !ok {
		t.Error("empty-but-answered list should still be recorded")
	}
}
