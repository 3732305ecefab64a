// Package main provides the entry point for the groundwork CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/internal/catalog"
	"github.com/groundworkhq/groundwork/internal/output"
	"github.com/groundworkhq/groundwork/internal/profile"
	"github.com/groundworkhq/groundwork/internal/session"
)

// statusResult holds the data for status output.
type statusResult struct {
	Root         string   `json:"root"`
	Catalog      string   `json:"catalog"`
	Stage        string   `json:"stage,omitempty"`
	Answered     int      `json:"answered"`
	Asked        []string `json:"asked,omitempty"`
	CoreComplete bool     `json:"core_complete"`
	DeepComplete bool     `json:"deep_complete"`
	MissingCore  []string `json:"missing_core,omitempty"`
	Patched      []string `json:"patched,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var verboseFlag bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show questionnaire and workspace state",
		Long: `Show the current state of the workspace and questionnaire.

Displays the active catalog, the stage you were last working on, how
many questions are answered, and which required core questions are
still missing.

Examples:
  groundwork status            # Show human-readable status
  groundwork status --verbose  # Also list answered question IDs
  groundwork status --json     # Output status as JSON for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, verboseFlag)
		},
	}
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "List answered question IDs")
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string, verbose bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	p, err := loadProfile(printer, sess)
	if err != nil {
		return err
	}
	result := gatherStatus(sess, p)

	if printer.IsJSON() {
		data := map[string]any{
			"root":          result.Root,
			"catalog":       result.Catalog,
			"stage":         result.Stage,
			"answered":      result.Answered,
			"core_complete": result.CoreComplete,
			"deep_complete": result.DeepComplete,
			"missing_core":  result.MissingCore,
			"patched":       result.Patched,
		}
		if verbose {
			data["asked"] = result.Asked
		}
		return printer.Success(data)
	}

	printHumanStatus(printer, result, verbose)
	return nil
}

// gatherStatus collects questionnaire progress. The queue is primed from
// the persisted stage so completion predicates see current reality.
func gatherStatus(sess *session.Session, p *profile.Profile) *statusResult {
	sess.Orch.Refresh(sess.ResumeStage())
	state := sess.Orch.State()

	var missing []string
	for _, id := range sess.Catalog.RequiredCoreIDs() {
		if !state.Asked(id) {
			missing = append(missing, id)
		}
	}

	var patched []string
	for _, src := range p.Meta.Sources {
		patched = append(patched, src.Path)
	}

	return &statusResult{
		Root:         sess.Root,
		Catalog:      sess.Catalog.ID,
		Stage:        string(sess.Orch.Stage()),
		Answered:     len(state.Answers),
		Asked:        sess.Orch.Asked(),
		CoreComplete: sess.Orch.CoreComplete(),
		DeepComplete: sess.Orch.DeepComplete(),
		MissingCore:  missing,
		Patched:      patched,
	}
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult, verbose bool) {
	printer.Section("Workspace")
	printer.KeyValue("Root", status.Root)
	printer.KeyValue("Catalog", status.Catalog)

	printer.Section("Questionnaire")
	printer.KeyValue("Stage", status.Stage)
	printer.KeyValue("Answered", strconv.Itoa(status.Answered))
	printer.KeyValue("Core complete", formatBool(status.CoreComplete))
	printer.KeyValue("Deep complete", formatBool(status.DeepComplete))

	if len(status.MissingCore) > 0 {
		printer.Section("Missing required core answers")
		for _, id := range status.MissingCore {
			printer.Println("  " + id)
		}
	}

	if len(status.Patched) > 0 {
		printer.Section("Directly patched fields")
		for _, path := range status.Patched {
			printer.Println("  " + path)
		}
	}

	if verbose && len(status.Asked) > 0 {
		printer.Section("Answered")
		for _, id := range status.Asked {
			printer.Println("  " + id)
		}
	}

	if !status.CoreComplete {
		printer.Println()
		printer.Print("Run '%s' to continue.\n", printer.Style().Bold.Render("groundwork intake"))
	} else if status.Stage != string(catalog.StageSpecialist) && !status.DeepComplete {
		printer.Println()
		printer.Print("Go deeper with '%s'.\n", printer.Style().Bold.Render("groundwork intake --stage deep"))
	}
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
