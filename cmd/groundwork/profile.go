// Package main provides the entry point for the groundwork CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/groundworkhq/groundwork/internal/output"
	"github.com/groundworkhq/groundwork/internal/profile"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// newProfileCmd creates the profile command with its subcommands.
func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or patch the company profile",
		Long: `Inspect or patch the derived company profile.

The profile is rebuilt from your answers after every questionnaire
change. 'profile set' writes a field directly, outside the
questionnaire; direct writes require a --source note recording where
the value came from, and are overwritten if a later answer covers the
same field.`,
	}
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileSetCmd())
	return cmd
}

// newProfileShowCmd creates the profile show subcommand.
func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		Long: `Print the current company profile.

Examples:
  groundwork profile show          # YAML, as stored on disk
  groundwork profile show --json   # JSON for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfileShow(cmd)
		},
	}
}

// runProfileShow executes the profile show subcommand.
func runProfileShow(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	p, err := loadProfile(printer, sess)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(p)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		ioErr := output.NewIOErrorWithCause("encoding profile", err)
		printer.Error(ioErr)
		return ioErr
	}
	printer.Print("%s", string(data))
	return nil
}

// newProfileSetCmd creates the profile set subcommand.
func newProfileSetCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a profile field directly",
		Long: `Set a profile field directly, outside the questionnaire.

Requires --source describing where the value came from. The provenance
is recorded in the profile and shown in generated documents.

Examples:
  groundwork profile set revenue.pricing_model "usage-based" --source "pricing workshop"
  groundwork profile set compliance.regulated true --source "legal review 2026-08"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileSet(cmd, args[0], args[1], source)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Where this value came from (required)")
	return cmd
}

// runProfileSet executes the profile set subcommand.
func runProfileSet(cmd *cobra.Command, path, value, source string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if strings.TrimSpace(source) == "" {
		userErr := output.NewUserError("--source is required for direct profile edits")
		printer.Error(userErr)
		return userErr
	}

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	profilePath := workspace.ProfilePath(sess.Root)
	p, err := loadProfile(printer, sess)
	if err != nil {
		return err
	}

	if err := p.Patch(path, value, source); err != nil {
		userErr := output.NewUserErrorWithCause("patching profile", err)
		printer.Error(userErr)
		return userErr
	}

	if err := profile.Save(profilePath, p); err != nil {
		ioErr := output.NewIOErrorWithCause("saving profile", err)
		printer.Error(ioErr)
		return ioErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"path":   path,
			"value":  value,
			"source": source,
		})
	}

	printer.Print("%s %s = %s\n", printer.Style().Success.Render("Set"), path, value)
	printer.Print("%s\n", printer.Style().Dim.Render("Recorded source: "+source))
	return nil
}
