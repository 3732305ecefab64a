package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/groundworkhq/groundwork/internal/catalog"
	"github.com/groundworkhq/groundwork/internal/intake"
	"github.com/groundworkhq/groundwork/internal/session"
)

// --- intake_next tool ---

// IntakeNextInput is the input for the intake_next tool.
type IntakeNextInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"switch to this stage before fetching: core, deep, or specialist"`
}

// IntakeNextOutput is the output for the intake_next tool.
type IntakeNextOutput struct {
	Question  *QuestionView `json:"question,omitempty" jsonschema:"the next unanswered question, absent when the stage is exhausted"`
	Done      bool          `json:"done"               jsonschema:"true when the active stage has no remaining questions"`
	Stage     string        `json:"stage"              jsonschema:"the active stage"`
	Remaining int           `json:"remaining"          jsonschema:"questions left in the queue including this one"`
}

func handleIntakeNext(sess *session.Session) mcp.ToolHandlerFor[IntakeNextInput, IntakeNextOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IntakeNextInput) (*mcp.CallToolResult, IntakeNextOutput, error) {
		if input.Stage != "" {
			stage, err := catalog.ParseStage(input.Stage)
			if err != nil {
				return nil, IntakeNextOutput{}, err
			}
			sess.Orch.Refresh(stage)
		} else {
			ensureQueue(sess)
		}

		view, err := peekNext(sess)
		if err != nil {
			return nil, IntakeNextOutput{}, fmt.Errorf("fetching next question: %w", err)
		}

		out := IntakeNextOutput{
			Question:  view,
			Done:      view == nil,
			Stage:     string(sess.Orch.Stage()),
			Remaining: len(sess.Orch.QueueIDs()),
		}
		return nil, out, nil
	}
}

// --- intake_answer tool ---

// IntakeAnswerInput is the input for the intake_answer tool.
type IntakeAnswerInput struct {
	Input string `json:"input" jsonschema:"the founder's answer as typed: free text, an option value or label, a comma-separated list, or yes/no"`
}

// IntakeAnswerOutput is the output for the intake_answer tool.
type IntakeAnswerOutput struct {
	QuestionID string        `json:"question_id"        jsonschema:"ID of the question that was answered"`
	Recorded   string        `json:"recorded"           jsonschema:"the normalized value that was persisted"`
	Warning    string        `json:"warning,omitempty"  jsonschema:"non-fatal note, e.g. unrecognized multi-choice values that were dropped"`
	Next       *QuestionView `json:"next,omitempty"     jsonschema:"the next unanswered question, absent when the stage is exhausted"`
	Done       bool          `json:"done"               jsonschema:"true when the active stage has no remaining questions"`
}

func handleIntakeAnswer(sess *session.Session) mcp.ToolHandlerFor[IntakeAnswerInput, IntakeAnswerOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IntakeAnswerInput) (*mcp.CallToolResult, IntakeAnswerOutput, error) {
		ensureQueue(sess)

		result, err := sess.Orch.Advance(input.Input)
		if errors.Is(err, intake.ErrExhausted) {
			return nil, IntakeAnswerOutput{}, errors.New("no question is pending; call intake_next first")
		}
		if err != nil {
			return nil, IntakeAnswerOutput{}, err
		}

		if _, err := sess.RebuildProfile(); err != nil {
			return nil, IntakeAnswerOutput{}, fmt.Errorf("rebuilding profile: %w", err)
		}

		next, err := peekNext(sess)
		if err != nil {
			return nil, IntakeAnswerOutput{}, fmt.Errorf("fetching next question: %w", err)
		}

		out := IntakeAnswerOutput{
			QuestionID: result.Question.ID,
			Recorded:   result.Value.String(),
			Warning:    result.Warning,
			Next:       next,
			Done:       next == nil,
		}
		return nil, out, nil
	}
}

// --- intake_back tool ---

// IntakeBackInput is the input for the intake_back tool (no parameters needed).
type IntakeBackInput struct{}

// IntakeBackOutput is the output for the intake_back tool.
type IntakeBackOutput struct {
	Removed string `json:"removed" jsonschema:"ID of the question whose answer was removed"`
}

func handleIntakeBack(sess *session.Session) mcp.ToolHandlerFor[IntakeBackInput, IntakeBackOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ IntakeBackInput) (*mcp.CallToolResult, IntakeBackOutput, error) {
		id, err := sess.Orch.GoBack()
		if errors.Is(err, intake.ErrNoPreviousQuestion) {
			return nil, IntakeBackOutput{}, errors.New("nothing to go back to; no questions have been answered")
		}
		if err != nil {
			return nil, IntakeBackOutput{}, err
		}

		if _, err := sess.RebuildProfile(); err != nil {
			return nil, IntakeBackOutput{}, fmt.Errorf("rebuilding profile: %w", err)
		}

		return nil, IntakeBackOutput{Removed: id}, nil
	}
}

// --- intake_skip tool ---

// IntakeSkipInput is the input for the intake_skip tool (no parameters needed).
type IntakeSkipInput struct{}

// IntakeSkipOutput is the output for the intake_skip tool.
type IntakeSkipOutput struct {
	Next *QuestionView `json:"next,omitempty" jsonschema:"the question now at the head of the queue"`
}

func handleIntakeSkip(sess *session.Session) mcp.ToolHandlerFor[IntakeSkipInput, IntakeSkipOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ IntakeSkipInput) (*mcp.CallToolResult, IntakeSkipOutput, error) {
		ensureQueue(sess)

		if err := sess.Orch.Skip(); err != nil {
			if errors.Is(err, intake.ErrEmptyQueue) {
				return nil, IntakeSkipOutput{}, errors.New("no question is pending; call intake_next first")
			}
			return nil, IntakeSkipOutput{}, err
		}

		next, err := peekNext(sess)
		if err != nil {
			return nil, IntakeSkipOutput{}, fmt.Errorf("fetching next question: %w", err)
		}
		return nil, IntakeSkipOutput{Next: next}, nil
	}
}

// --- intake_restart tool ---

// IntakeRestartInput is the input for the intake_restart tool.
type IntakeRestartInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true; guards against accidental answer loss"`
}

// IntakeRestartOutput is the output for the intake_restart tool.
type IntakeRestartOutput struct {
	Restarted bool `json:"restarted" jsonschema:"true when all answers were discarded"`
}

func handleIntakeRestart(sess *session.Session) mcp.ToolHandlerFor[IntakeRestartInput, IntakeRestartOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IntakeRestartInput) (*mcp.CallToolResult, IntakeRestartOutput, error) {
		if !input.Confirm {
			return nil, IntakeRestartOutput{}, errors.New("restart discards all recorded answers; set confirm=true to proceed")
		}

		if err := sess.Orch.Restart(); err != nil {
			return nil, IntakeRestartOutput{}, fmt.Errorf("restarting: %w", err)
		}

		if _, err := sess.RebuildProfile(); err != nil {
			return nil, IntakeRestartOutput{}, fmt.Errorf("rebuilding profile: %w", err)
		}

		return nil, IntakeRestartOutput{Restarted: true}, nil
	}
}

// --- intake_status tool ---

// IntakeStatusInput is the input for the intake_status tool (no parameters needed).
type IntakeStatusInput struct{}

// IntakeStatusOutput is the output for the intake_status tool.
type IntakeStatusOutput struct {
	Stage        string   `json:"stage"         jsonschema:"the active stage, empty before the first question"`
	Phase        string   `json:"phase"         jsonschema:"queue phase: empty, in_progress, or exhausted"`
	Language     string   `json:"language"      jsonschema:"active prompt language"`
	Answered     int      `json:"answered"      jsonschema:"number of recorded answers"`
	Remaining    int      `json:"remaining"     jsonschema:"questions left in the active stage queue"`
	Asked        []string `json:"asked,omitempty" jsonschema:"question IDs in the order they were answered"`
	CoreComplete bool     `json:"core_complete" jsonschema:"whether every required core question is answered"`
	DeepComplete bool     `json:"deep_complete" jsonschema:"whether the deep stage is finished"`
}

func handleIntakeStatus(sess *session.Session) mcp.ToolHandlerFor[IntakeStatusInput, IntakeStatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ IntakeStatusInput) (*mcp.CallToolResult, IntakeStatusOutput, error) {
		ensureQueue(sess)

		out := IntakeStatusOutput{
			Stage:        string(sess.Orch.Stage()),
			Phase:        string(sess.Orch.Phase()),
			Language:     sess.Orch.Language(),
			Answered:     len(sess.Orch.State().Answers),
			Remaining:    len(sess.Orch.QueueIDs()),
			Asked:        sess.Orch.Asked(),
			CoreComplete: sess.Orch.CoreComplete(),
			DeepComplete: sess.Orch.DeepComplete(),
		}
		return nil, out, nil
	}
}
