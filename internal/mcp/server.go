// Package mcp provides a Model Context Protocol server for groundwork.
// It exposes the intake wizard, profile, and document generation as MCP
// tools that any MCP-capable agent can drive from a chat surface.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/groundworkhq/groundwork/internal/session"
)

// NewServer creates an MCP server with all groundwork tools registered.
func NewServer(version string, sess *session.Session) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "groundwork",
		Version: version,
	}, nil)
	registerTools(server, sess)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// destructiveAnnotations returns annotations for tools that discard state.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all groundwork tools to the server.
func registerTools(server *mcp.Server, sess *session.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_next",
		Description: "Get the next unanswered intake question. Optionally switch the active stage (core, deep, specialist) before fetching.",
		Annotations: readOnlyAnnotations(),
	}, handleIntakeNext(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_answer",
		Description: "Answer the current intake question. Validates the input against the question type, persists the answer, and returns the next question.",
		Annotations: writeAnnotations(),
	}, handleIntakeAnswer(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_back",
		Description: "Undo the most recently answered question. The answer is removed from the store; call intake_next to re-ask it.",
		Annotations: writeAnnotations(),
	}, handleIntakeBack(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_skip",
		Description: "Defer the current question to the end of the queue and return the next one. Nothing is persisted.",
		Annotations: writeAnnotations(),
	}, handleIntakeSkip(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_restart",
		Description: "Discard all recorded answers and start the questionnaire over. Requires confirm=true.",
		Annotations: destructiveAnnotations(),
	}, handleIntakeRestart(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intake_status",
		Description: "Show questionnaire progress: active stage, answered and remaining counts, and stage completion.",
		Annotations: readOnlyAnnotations(),
	}, handleIntakeStatus(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_get",
		Description: "Return the current company profile derived from recorded answers, including custom-patch provenance.",
		Annotations: readOnlyAnnotations(),
	}, handleProfileGet(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_patch",
		Description: "Set a profile field directly, outside the questionnaire. Requires a source note recording where the value came from.",
		Annotations: writeAnnotations(),
	}, handleProfilePatch(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_doc",
		Description: "Render a business framework document (swot, okr, canvas, pestle, bcg, income-statement, cashflow, five-forces) from the profile into the docs directory.",
		Annotations: writeAnnotations(),
	}, handleGenerateDoc(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_frameworks",
		Description: "List available framework templates with their descriptions and sources (built-in, global, or workspace override).",
		Annotations: readOnlyAnnotations(),
	}, handleListFrameworks(sess))
}
