package mcp

import (
	"errors"

	"github.com/groundworkhq/groundwork/internal/catalog"
	"github.com/groundworkhq/groundwork/internal/intake"
	"github.com/groundworkhq/groundwork/internal/session"
)

// --- Shared types ---

// OptionView is a choice option presented to the agent.
type OptionView struct {
	Value string `json:"value" jsonschema:"canonical option value"`
	Label string `json:"label" jsonschema:"display label in the active language"`
}

// QuestionView is a catalog question presented to the agent.
type QuestionView struct {
	ID       string       `json:"id"                jsonschema:"question ID"`
	Type     string       `json:"type"              jsonschema:"question type: text, single_choice, multi_choice, or confirm"`
	Prompt   string       `json:"prompt"            jsonschema:"question text in the active language"`
	Options  []OptionView `json:"options,omitempty" jsonschema:"choice options for single_choice and multi_choice questions"`
	Required bool         `json:"required"          jsonschema:"whether an empty answer is rejected"`
}

// toQuestionView converts a catalog question for output, resolving prompts
// and labels in the session language.
func toQuestionView(q *catalog.Question, lang, fallback string) *QuestionView {
	view := &QuestionView{
		ID:       q.ID,
		Type:     string(q.Type),
		Prompt:   q.Prompt(lang, fallback),
		Required: q.Required,
	}
	for _, opt := range q.Options {
		view.Options = append(view.Options, OptionView{
			Value: opt.Value,
			Label: opt.Label(lang),
		})
	}
	return view
}

// peekNext returns the head of the queue as a view, or nil when the active
// stage is exhausted. A drained queue triggers one more guard evaluation
// first, so sections unlocked by answers given earlier in the session are
// surfaced instead of being reported done.
func peekNext(sess *session.Session) (*QuestionView, error) {
	q, err := sess.Orch.Next()
	if errors.Is(err, intake.ErrExhausted) {
		sess.Orch.Refresh(sess.Orch.Stage())
		q, err = sess.Orch.Next()
	}
	if errors.Is(err, intake.ErrExhausted) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lang := sess.Orch.Language()
	return toQuestionView(q, lang, sess.Catalog.Language()), nil
}

// ensureQueue primes the orchestrator from the persisted stage unless a
// queue walk is already in progress. Refresh is idempotent, so re-priming
// an exhausted or never-primed session is safe; an in-progress queue is
// left alone to preserve skip ordering.
func ensureQueue(sess *session.Session) {
	if sess.Orch.Phase() != intake.PhaseInProgress {
		sess.Orch.Refresh(sess.ResumeStage())
	}
}
