// Package main provides the entry point for the groundwork CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/internal/output"
)

// newCatalogCmd creates the catalog command.
func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the active question catalog",
		Long: `Show the active question catalog.

Lists every section with its stage, guard condition, and questions.
A catalog.yaml inside .groundwork/ overrides the built-in catalog;
the output tells you which one is active.

Examples:
  groundwork catalog         # Table of sections and questions
  groundwork catalog --json  # Full catalog structure as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd)
		},
	}
}

// runCatalog executes the catalog command.
func runCatalog(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}
	cat := sess.Catalog

	if printer.IsJSON() {
		return printer.WriteJSON(cat)
	}

	printer.Section("Catalog")
	printer.KeyValue("ID", cat.ID)
	printer.KeyValue("Version", strconv.Itoa(cat.Version))
	printer.KeyValue("Language", cat.Language())
	printer.KeyValue("Sections", strconv.Itoa(len(cat.Sections)))

	lang := sess.Orch.Language()
	state := sess.Orch.State()
	rows := make([][]string, 0, 32)
	for _, sec := range cat.Sections {
		guard := ""
		for key, val := range sec.When {
			guard = key + "=" + val
		}
		for _, q := range sec.Questions {
			required := ""
			if q.Required {
				required = "yes"
			}
			answered := ""
			if state.Asked(q.ID) {
				answered = "yes"
			}
			rows = append(rows, []string{
				q.ID,
				string(sec.Stage),
				string(q.Type),
				required,
				answered,
				guard,
				truncate(q.Prompt(lang, cat.Language()), 48),
			})
		}
	}

	printer.Println()
	printer.Table([]string{"QUESTION", "STAGE", "TYPE", "REQUIRED", "ANSWERED", "WHEN", "PROMPT"}, rows)
	return nil
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
