// Package main provides the entry point for the groundwork CLI.
package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/internal/output"
	"github.com/groundworkhq/groundwork/internal/profile"
	"github.com/groundworkhq/groundwork/internal/render"
	"github.com/groundworkhq/groundwork/internal/session"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	list bool
	all  bool
	out  string
}

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [framework]",
		Short: "Render framework documents from the profile",
		Long: `Render one or more business framework documents as markdown.

Documents are built from the company profile and written to
.groundwork/docs/. Unanswered fields render as placeholders, so you can
generate early and regenerate as the profile fills in. Templates in
.groundwork/templates/ override the built-in ones by name.

Examples:
  groundwork generate swot        # Render the SWOT analysis
  groundwork generate swot okr    # Render several at once
  groundwork generate --all       # Render every available framework
  groundwork generate --list      # List available frameworks
  groundwork generate okr --out report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.list, "list", false, "List available frameworks")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Render every available framework")
	cmd.Flags().StringVar(&flags.out, "out", "", "Write to this file instead of the docs directory")
	return cmd
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string, flags *generateFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	if flags.list {
		return listFrameworks(printer, sess)
	}

	if flags.all {
		return generateAll(printer, sess)
	}

	if len(args) == 0 {
		userErr := output.NewUserError("specify a framework, or use --all or --list")
		printer.Error(userErr)
		return userErr
	}
	if flags.out != "" && len(args) > 1 {
		userErr := output.NewUserError("--out takes a single framework")
		printer.Error(userErr)
		return userErr
	}
	return generateNamed(printer, sess, args, flags.out)
}

// listFrameworks prints the available templates.
func listFrameworks(printer *output.Printer, sess *session.Session) error {
	infos, err := render.List(workspace.TemplatesPath(sess.Root))
	if err != nil {
		ioErr := output.NewIOErrorWithCause("listing templates", err)
		printer.Error(ioErr)
		return ioErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"frameworks": infos})
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Description, info.Source})
	}
	printer.Table([]string{"NAME", "DESCRIPTION", "SOURCE"}, rows)
	return nil
}

// generateNamed renders the named frameworks. With out set there is a
// single framework and it is written to that path instead of docs/.
func generateNamed(printer *output.Printer, sess *session.Session, names []string, out string) error {
	p, err := loadProfile(printer, sess)
	if err != nil {
		return err
	}

	now := time.Now()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		tmpl, loadErr := render.LoadTemplate(name, workspace.TemplatesPath(sess.Root))
		if loadErr != nil {
			if errors.Is(loadErr, render.ErrUnknownFramework) {
				userErr := output.NewUserError("unknown framework " + name + ". Run 'groundwork generate --list'")
				printer.Error(userErr)
				return userErr
			}
			ioErr := output.NewIOErrorWithCause("loading template", loadErr)
			printer.Error(ioErr)
			return ioErr
		}

		var path string
		var writeErr error
		if out != "" {
			path, writeErr = render.WriteDocTo(tmpl, p, out, now)
		} else {
			path, writeErr = render.WriteDoc(tmpl, p, workspace.DocsPath(sess.Root), now)
		}
		if writeErr != nil {
			ioErr := output.NewIOErrorWithCause("writing document", writeErr)
			printer.Error(ioErr)
			return ioErr
		}
		paths = append(paths, path)
	}

	if printer.IsJSON() {
		if len(paths) == 1 {
			return printer.Success(map[string]any{
				"framework": names[0],
				"path":      paths[0],
			})
		}
		return printer.Success(map[string]any{
			"count": len(paths),
			"paths": paths,
		})
	}

	for _, path := range paths {
		printer.Print("%s %s\n", printer.Style().Success.Render("Wrote"), path)
	}
	warnIncomplete(printer, sess)
	return nil
}

// generateAll renders every available framework into the docs directory.
func generateAll(printer *output.Printer, sess *session.Session) error {
	infos, err := render.List(workspace.TemplatesPath(sess.Root))
	if err != nil {
		ioErr := output.NewIOErrorWithCause("listing templates", err)
		printer.Error(ioErr)
		return ioErr
	}

	p, err := loadProfile(printer, sess)
	if err != nil {
		return err
	}

	now := time.Now()
	paths := make([]string, 0, len(infos))
	for _, info := range infos {
		tmpl, loadErr := render.LoadTemplate(info.Name, workspace.TemplatesPath(sess.Root))
		if loadErr != nil {
			ioErr := output.NewIOErrorWithCause("loading template "+info.Name, loadErr)
			printer.Error(ioErr)
			return ioErr
		}
		path, writeErr := render.WriteDoc(tmpl, p, workspace.DocsPath(sess.Root), now)
		if writeErr != nil {
			ioErr := output.NewIOErrorWithCause("writing "+info.Name, writeErr)
			printer.Error(ioErr)
			return ioErr
		}
		paths = append(paths, path)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"count": len(paths),
			"paths": paths,
		})
	}

	for _, path := range paths {
		printer.Print("%s %s\n", printer.Style().Success.Render("Wrote"), path)
	}
	warnIncomplete(printer, sess)
	return nil
}

// loadProfile reads the persisted profile, mapping failures to I/O errors.
func loadProfile(printer *output.Printer, sess *session.Session) (*profile.Profile, error) {
	p, err := profile.Load(workspace.ProfilePath(sess.Root))
	if err != nil {
		ioErr := output.NewIOErrorWithCause("loading profile", err)
		printer.Error(ioErr)
		return nil, ioErr
	}
	return p, nil
}

// warnIncomplete notes when documents were rendered with placeholder fields.
func warnIncomplete(printer *output.Printer, sess *session.Session) {
	if !sess.Orch.CoreComplete() {
		printer.Warn("required core questions are still unanswered; documents contain placeholders")
	}
}
