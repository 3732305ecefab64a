// Package main provides the entry point for the groundwork CLI.
package main

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/internal/output"
)

// newRestartCmd creates the restart command.
func newRestartCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Discard all answers and start over",
		Long: `Discard every recorded answer and reset the questionnaire.

The profile is rebuilt empty (direct-edit provenance is kept) and the
next 'groundwork intake' starts from the first core question. This
cannot be undone.

Examples:
  groundwork restart        # Asks for confirmation
  groundwork restart --yes  # No prompt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestart(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// runRestart executes the restart command.
func runRestart(cmd *cobra.Command, yes bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	answered := len(sess.Orch.State().Answers)

	if !yes && !printer.IsJSON() {
		if !confirmRestart(cmd, printer, answered) {
			printer.Println("Aborted.")
			return nil
		}
	}

	if err := sess.Orch.Restart(); err != nil {
		ioErr := output.NewIOErrorWithCause("restarting", err)
		printer.Error(ioErr)
		return ioErr
	}

	if err := rebuildProfile(printer, sess); err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"restarted": true,
			"discarded": answered,
		})
	}

	printer.Print("%s\n", printer.Style().Success.Render("All answers discarded."))
	printer.Print("Run '%s' to start over.\n", printer.Style().Bold.Render("groundwork intake"))
	return nil
}

// confirmRestart prompts for confirmation before discarding answers.
func confirmRestart(cmd *cobra.Command, printer *output.Printer, answered int) bool {
	printer.Print("This discards %d recorded answers. Continue? [y/N] ", answered)

	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
