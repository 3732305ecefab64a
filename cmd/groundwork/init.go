// Package main provides the entry point for the groundwork CLI.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/internal/output"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// initStyleSet holds lipgloss styles for init output.
type initStyleSet struct {
	heading lipgloss.Style
	pass    lipgloss.Style
	skip    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

// initStyles returns a TTY-aware style set.
func initStyles(isTTY bool) initStyleSet {
	if !isTTY {
		return initStyleSet{}
	}
	return initStyleSet{
		heading: lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "10", Dark: "10"}),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "12", Dark: "12"}),
	}
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize groundwork in the current directory",
		Long: `Initialize groundwork in the current directory.

This command sets up everything needed to use groundwork:
  - Creates the .groundwork/ directory for answers and the profile
  - Creates .groundwork/docs/ for generated documents
  - Creates .groundwork/templates/ for framework template overrides

The command is idempotent - safe to run multiple times.

Examples:
  groundwork init            # Set up the workspace
  groundwork init --dry-run  # Show what would be done
  groundwork init --json     # Output steps as JSON for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
	styles := initStyles(printer.IsTTY())

	cwd, err := os.Getwd()
	if err != nil {
		ioErr := output.NewIOErrorWithCause("getting working directory", err)
		printer.Error(ioErr)
		return ioErr
	}

	steps := workspace.Scaffold(cwd, dryRun)

	failed := false
	created := false
	for _, step := range steps {
		switch step.Status {
		case "failed":
			failed = true
		case "created":
			created = true
		}
	}

	if printer.IsJSON() {
		status := "ok"
		if dryRun {
			status = "dry_run"
		}
		if failed {
			status = "failed"
		}
		result := map[string]any{
			"status": status,
			"root":   cwd,
			"steps":  steps,
		}
		if err := printer.Success(result); err != nil {
			return err
		}
		if failed {
			return output.NewIOError("workspace setup failed")
		}
		return nil
	}

	printHumanInit(printer, styles, steps, dryRun)

	if failed {
		err := output.NewIOError("workspace setup failed")
		printer.Error(err)
		return err
	}

	if created && !dryRun {
		printer.Println()
		printer.Print("Run '%s' to start the questionnaire.\n", styles.accent.Render("groundwork intake"))
	}
	return nil
}

// printHumanInit outputs scaffold steps in human-readable form.
func printHumanInit(printer *output.Printer, styles initStyleSet, steps []workspace.Step, dryRun bool) {
	printer.Println()
	if dryRun {
		printer.Print("%s\n", styles.heading.Render("Would initialize groundwork:"))
	} else {
		printer.Print("%s\n", styles.heading.Render("Initializing groundwork..."))
	}
	printer.Println()

	for _, step := range steps {
		var marker string
		switch step.Status {
		case "created":
			marker = styles.pass.Render("created")
		case "exists":
			marker = styles.skip.Render("exists ")
		case "dry_run":
			marker = styles.dim.Render("pending")
		case "failed":
			marker = styles.fail.Render("failed ")
		}
		line := marker + "  " + step.Path
		if step.Message != "" {
			line += "  " + styles.dim.Render("("+step.Message+")")
		}
		printer.Println(line)
	}
}
