package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/groundworkhq/groundwork/internal/profile"
	"github.com/groundworkhq/groundwork/internal/render"
	"github.com/groundworkhq/groundwork/internal/session"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// --- profile_get tool ---

// ProfileGetInput is the input for the profile_get tool (no parameters needed).
type ProfileGetInput struct{}

// ProfileGetOutput is the output for the profile_get tool.
type ProfileGetOutput struct {
	Profile *profile.Profile `json:"profile" jsonschema:"the company profile"`
}

func handleProfileGet(sess *session.Session) mcp.ToolHandlerFor[ProfileGetInput, ProfileGetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ProfileGetInput) (*mcp.CallToolResult, ProfileGetOutput, error) {
		p, err := profile.Load(workspace.ProfilePath(sess.Root))
		if err != nil {
			return nil, ProfileGetOutput{}, fmt.Errorf("loading profile: %w", err)
		}
		return nil, ProfileGetOutput{Profile: p}, nil
	}
}

// --- profile_patch tool ---

// ProfilePatchInput is the input for the profile_patch tool.
type ProfilePatchInput struct {
	Path   string `json:"path"   jsonschema:"profile field path, e.g. revenue.pricing_model"`
	Value  string `json:"value"  jsonschema:"the value to set"`
	Source string `json:"source" jsonschema:"where this value came from, e.g. a meeting note or document (required)"`
}

// ProfilePatchOutput is the output for the profile_patch tool.
type ProfilePatchOutput struct {
	Profile *profile.Profile `json:"profile" jsonschema:"the updated company profile"`
}

func handleProfilePatch(sess *session.Session) mcp.ToolHandlerFor[ProfilePatchInput, ProfilePatchOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ProfilePatchInput) (*mcp.CallToolResult, ProfilePatchOutput, error) {
		if input.Path == "" {
			return nil, ProfilePatchOutput{}, errors.New("path is required; see profile paths like identity.name or revenue.pricing_model")
		}

		path := workspace.ProfilePath(sess.Root)
		p, err := profile.Load(path)
		if err != nil {
			return nil, ProfilePatchOutput{}, fmt.Errorf("loading profile: %w", err)
		}

		if err := p.Patch(input.Path, input.Value, input.Source); err != nil {
			return nil, ProfilePatchOutput{}, err
		}

		if err := profile.Save(path, p); err != nil {
			return nil, ProfilePatchOutput{}, fmt.Errorf("saving profile: %w", err)
		}

		return nil, ProfilePatchOutput{Profile: p}, nil
	}
}

// --- generate_doc tool ---

// GenerateDocInput is the input for the generate_doc tool.
type GenerateDocInput struct {
	Framework string `json:"framework" jsonschema:"framework template name, e.g. swot or canvas"`
}

// GenerateDocOutput is the output for the generate_doc tool.
type GenerateDocOutput struct {
	Framework string `json:"framework"         jsonschema:"the framework that was rendered"`
	Path      string `json:"path"              jsonschema:"path of the written markdown document"`
	Warning   string `json:"warning,omitempty" jsonschema:"non-fatal note, e.g. required core questions still unanswered"`
}

func handleGenerateDoc(sess *session.Session) mcp.ToolHandlerFor[GenerateDocInput, GenerateDocOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GenerateDocInput) (*mcp.CallToolResult, GenerateDocOutput, error) {
		if input.Framework == "" {
			return nil, GenerateDocOutput{}, errors.New("framework is required; call list_frameworks to see what is available")
		}

		tmpl, err := render.LoadTemplate(input.Framework, workspace.TemplatesPath(sess.Root))
		if err != nil {
			return nil, GenerateDocOutput{}, err
		}

		p, err := profile.Load(workspace.ProfilePath(sess.Root))
		if err != nil {
			return nil, GenerateDocOutput{}, fmt.Errorf("loading profile: %w", err)
		}

		path, err := render.WriteDoc(tmpl, p, workspace.DocsPath(sess.Root), time.Now())
		if err != nil {
			return nil, GenerateDocOutput{}, fmt.Errorf("writing document: %w", err)
		}

		warning := ""
		if !sess.Orch.CoreComplete() {
			warning = "required core questions are still unanswered; the document contains placeholders"
		}

		out := GenerateDocOutput{
			Framework: tmpl.Name,
			Path:      path,
			Warning:   warning,
		}
		return nil, out, nil
	}
}

// --- list_frameworks tool ---

// ListFrameworksInput is the input for the list_frameworks tool (no parameters needed).
type ListFrameworksInput struct{}

// FrameworkInfo describes one available framework template.
type FrameworkInfo struct {
	Name        string `json:"name"        jsonschema:"framework template name"`
	Description string `json:"description" jsonschema:"what the framework documents"`
	Source      string `json:"source"      jsonschema:"where the template resolves from: built-in, global, or workspace"`
}

// ListFrameworksOutput is the output for the list_frameworks tool.
type ListFrameworksOutput struct {
	Frameworks []FrameworkInfo `json:"frameworks" jsonschema:"available framework templates"`
}

func handleListFrameworks(sess *session.Session) mcp.ToolHandlerFor[ListFrameworksInput, ListFrameworksOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListFrameworksInput) (*mcp.CallToolResult, ListFrameworksOutput, error) {
		infos, err := render.List(workspace.TemplatesPath(sess.Root))
		if err != nil {
			return nil, ListFrameworksOutput{}, fmt.Errorf("listing templates: %w", err)
		}

		out := ListFrameworksOutput{Frameworks: make([]FrameworkInfo, 0, len(infos))}
		for _, info := range infos {
			out.Frameworks = append(out.Frameworks, FrameworkInfo{
				Name:        info.Name,
				Description: info.Description,
				Source:      info.Source,
			})
		}
		return nil, out, nil
	}
}
