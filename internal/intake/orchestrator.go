// Package intake implements the question-queue state machine that drives
// the founder questionnaire: which questions have been asked, which remain
// queued, and how navigation (advance, back, skip, restart) mutates and
// persists that state.
package intake

import (
	"errors"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
)

// Navigation errors. Both are recoverable no-ops: state is unchanged and
// the user is informed.
var (
	ErrNoPreviousQuestion = errors.New("no previous question to go back to")
	ErrEmptyQueue         = errors.New("question queue is empty")
	ErrExhausted          = errors.New("no more questions")
)

// Phase is the coarse state of the machine.
type Phase string

// Phases: empty (nothing asked, nothing queued), in progress (queue
// non-empty), exhausted (queue drained, something asked).
const (
	PhaseEmpty      Phase = "empty"
	PhaseInProgress Phase = "in_progress"
	PhaseExhausted  Phase = "exhausted"
)

// Saver persists the answer state after each mutation.
type Saver interface {
	Save(*answers.State) error
}

// Result reports what a successful Advance recorded.
type Result struct {
	Question *catalog.Question
	Value    answers.Value
	// Warning carries non-fatal notes, e.g. multi-choice tokens that
	// matched no option and were dropped.
	Warning string
}

// Orchestrator owns the wizard progress state for one session. It is an
// explicit handle: every operation mutates through it and persists via
// the injected Saver, with no ambient state.
type Orchestrator struct {
	catalog *catalog.Catalog
	saver   Saver
	state   *answers.State
	queue   []*catalog.Question
}

// New creates an orchestrator over an already-loaded answer state.
func New(cat *catalog.Catalog, saver Saver, state *answers.State) *Orchestrator {
	if state.Meta.Catalog == "" {
		state.Meta.Catalog = cat.ID
		state.Meta.Version = cat.Version
	}
	return &Orchestrator{catalog: cat, saver: saver, state: state}
}

// State exposes the underlying answer state (read-mostly; mutate through
// orchestrator operations).
func (o *Orchestrator) State() *answers.State {
	return o.state
}

// Stage returns the active intake stage, or empty if none was set.
func (o *Orchestrator) Stage() catalog.Stage {
	return catalog.Stage(o.state.Meta.Stage)
}

// Phase returns the coarse machine state.
func (o *Orchestrator) Phase() Phase {
	switch {
	case len(o.queue) > 0:
		return PhaseInProgress
	case len(o.state.Meta.Asked) > 0:
		return PhaseExhausted
	default:
		return PhaseEmpty
	}
}

// Refresh recomputes the queue for a stage: the ordered subsequence of
// the stage's catalog questions whose ids are not already asked and whose
// owning section's guard evaluates true against prior answers. Sections
// with a false guard are skipped entirely. Idempotent: re-running with no
// intervening Advance yields the same queue.
func (o *Orchestrator) Refresh(stage catalog.Stage) {
	o.state.Meta.Stage = string(stage)
	o.queue = o.queue[:0]

	for _, sec := range o.catalog.SectionsForStage(stage) {
		if !o.guardPasses(sec) {
			continue
		}
		for i := range sec.Questions {
			q := &sec.Questions[i]
			if o.state.Asked(q.ID) {
				continue
			}
			o.queue = append(o.queue, q)
		}
	}
}

// guardPasses evaluates a section's guard condition: every referenced
// prior answer must exist and equal the expected value.
func (o *Orchestrator) guardPasses(sec *catalog.Section) bool {
	for id, expected := range sec.When {
		answer, ok := o.state.Get(id)
		if !ok || !answer.Equals(expected) {
			return false
		}
	}
	return true
}

// Next returns the head of the queue without mutating state, or
// ErrExhausted when the queue is empty.
func (o *Orchestrator) Next() (*catalog.Question, error) {
	if len(o.queue) == 0 {
		return nil, ErrExhausted
	}
	return o.queue[0], nil
}

// Advance validates input against the head question, records the answer,
// moves the id from queue to asked, and persists. On a validation error
// neither queue nor asked change; the caller may retry. On a save failure
// the in-memory mutation is rolled back so a retry loses nothing.
func (o *Orchestrator) Advance(input string) (*Result, error) {
	if len(o.queue) == 0 {
		return nil, ErrExhausted
	}
	q := o.queue[0]

	value, warning, err := Validate(q, input)
	if err != nil {
		return nil, err
	}

	prev, hadPrev := o.state.Get(q.ID)
	o.state.Set(q.ID, value)
	o.state.PushAsked(q.ID)

	if err := o.saver.Save(o.state); err != nil {
		o.state.PopAsked()
		if hadPrev {
			o.state.Set(q.ID, prev)
		} else {
			o.state.Delete(q.ID)
		}
		return nil, err
	}

	o.queue = o.queue[1:]
	return &Result{Question: q, Value: value, Warning: warning}, nil
}

// GoBack pops the most recently asked id and deletes its answer record.
// The popped question is NOT reinserted into the queue; callers re-run
// Refresh to regenerate it from the catalog. That asymmetry is part of
// the contract, not an oversight.
func (o *Orchestrator) GoBack() (string, error) {
	id, ok := o.state.PopAsked()
	if !ok {
		return "", ErrNoPreviousQuestion
	}

	prev, hadPrev := o.state.Get(id)
	o.state.Delete(id)

	if err := o.saver.Save(o.state); err != nil {
		if hadPrev {
			o.state.Set(id, prev)
		}
		o.state.PushAsked(id)
		return "", err
	}
	return id, nil
}

// Skip defers the head question: it moves to the tail of the queue,
// unanswered and not marked asked. Fails with ErrEmptyQueue when there is
// nothing to skip. Purely in-memory; nothing is persisted.
func (o *Orchestrator) Skip() error {
	if len(o.queue) == 0 {
		return ErrEmptyQueue
	}
	head := o.queue[0]
	o.queue = append(o.queue[1:], head)
	return nil
}

// Restart unconditionally clears asked, queue, and all answer records,
// then persists the empty state. Irreversible; confirmation is the UI
// layer's responsibility.
func (o *Orchestrator) Restart() error {
	snapshot := o.state.Clone()
	o.state.Reset()

	if err := o.saver.Save(o.state); err != nil {
		*o.state = *snapshot
		return err
	}
	o.queue = nil
	return nil
}

// Asked returns a copy of the asked stack, oldest first.
func (o *Orchestrator) Asked() []string {
	return append([]string(nil), o.state.Meta.Asked...)
}

// QueueIDs returns the ids currently queued, head first.
func (o *Orchestrator) QueueIDs() []string {
	ids := make([]string, len(o.queue))
	for i, q := range o.queue {
		ids[i] = q.ID
	}
	return ids
}

// CoreComplete reports whether every required core id has been asked.
func (o *Orchestrator) CoreComplete() bool {
	for _, id := range o.catalog.RequiredCoreIDs() {
		if !o.state.Asked(id) {
			return false
		}
	}
	return true
}

// DeepComplete reports whether deep intake is done: either the active
// stage is deep and the queue is drained, or every deep section has at
// least one representative on the asked stack.
func (o *Orchestrator) DeepComplete() bool {
	if o.Stage() == catalog.StageDeep && len(o.queue) == 0 {
		return true
	}

	sections := o.catalog.SectionsForStage(catalog.StageDeep)
	if len(sections) == 0 {
		return false
	}
	for _, sec := range sections {
		if !o.sectionRepresented(sec) {
			return false
		}
	}
	return true
}

func (o *Orchestrator) sectionRepresented(sec *catalog.Section) bool {
	for i := range sec.Questions {
		if o.state.Asked(sec.Questions[i].ID) {
			return true
		}
	}
	return false
}

// Language returns the session language: state override, then catalog
// default. Used by callers to pick prompt and label text.
func (o *Orchestrator) Language() string {
	if o.state.Meta.Language != "" {
		return o.state.Meta.Language
	}
	return o.catalog.Language()
}
